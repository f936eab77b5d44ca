package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/procura/pkg/errorbank"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBuildSuccessEmitsPayloadAsIs(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).WithData(map[string]int64{"po_id": 7}).Build()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"po_id":7}`, rec.Body.String())
}

func TestBuildSuccessHonorsStatusOverride(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).WithStatus(http.StatusCreated).WithData([]string{}).Build()
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestBuildErrorMapsKindToStatus(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).WithError(errorbank.BadRequest("items must not be empty")).Build()
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"items must not be empty"}`, rec.Body.String())
}

func TestBuildErrorKeepsCauseVerbatim(t *testing.T) {
	ctx, rec := newContext()

	cause := errors.New(`pq: relation "purchaseorders" does not exist`)
	err := New(ctx).WithError(errorbank.Internal("failed to create purchase order", errorbank.WithCause(cause))).Build()
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "purchaseorders")
}

func TestBuildErrorWrapsUnknownErrors(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).WithError(errors.New("boom")).Build()
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
