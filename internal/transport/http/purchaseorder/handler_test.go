package purchaseorder

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"

	"github.com/Additional-Code/procura/internal/cache"
	"github.com/Additional-Code/procura/internal/config"
	"github.com/Additional-Code/procura/internal/database"
	"github.com/Additional-Code/procura/internal/entity"
	"github.com/Additional-Code/procura/internal/messaging"
	repo "github.com/Additional-Code/procura/internal/repository/purchaseorder"
	service "github.com/Additional-Code/procura/internal/service/purchaseorder"
)

func newTestServer(t *testing.T) (*echo.Echo, *database.Connections) {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for _, model := range []any{
		(*entity.PurchaseOrder)(nil),
		(*entity.PurchaseOrderItem)(nil),
	} {
		_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		require.NoError(t, err)
	}

	conns := &database.Connections{Writer: db, Reader: db}
	svc := service.NewService(service.Params{
		Repository: repo.NewRepository(conns),
		Cache:      cache.NewNoop(),
		Config:     config.Config{Cache: config.Cache{DefaultTTL: time.Minute}},
		Logger:     zap.NewNop(),
		Publisher:  messaging.NewNoop("purchase-orders.events"),
	})

	e := echo.New()
	Register(e, NewHandler(svc))
	return e, conns
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const validBody = `{
	"supplier_id": 1,
	"created_by": 2,
	"po_number": "PO-4001",
	"status": "pending",
	"order_date": "2024-03-01",
	"expected_date": "2024-03-15",
	"total_amount": 30,
	"items": [{"product_id": 5, "quantity": 3, "unit_price": 10}]
}`

func TestCreateReturnsGeneratedID(t *testing.T) {
	e, conns := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/purchase-orders", validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		POID int64 `json:"po_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Greater(t, body.POID, int64(0))

	ctx := context.Background()
	stored := new(entity.PurchaseOrderItem)
	require.NoError(t, conns.Reader.NewSelect().Model(stored).Scan(ctx))
	require.Equal(t, 30.0, stored.TotalPrice)
	require.Equal(t, 0, stored.ReceivedQty)
}

func TestCreateEmptyItemsReturns400AndWritesNothing(t *testing.T) {
	e, conns := newTestServer(t)

	body := strings.Replace(validBody, `[{"product_id": 5, "quantity": 3, "unit_price": 10}]`, `[]`, 1)
	rec := doJSON(e, http.MethodPost, "/api/purchase-orders", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "error")

	count, err := conns.Reader.NewSelect().Model((*entity.PurchaseOrder)(nil)).Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestCreateMissingHeaderFieldReturns400(t *testing.T) {
	e, _ := newTestServer(t)

	body := strings.Replace(validBody, `"po_number": "PO-4001",`, "", 1)
	rec := doJSON(e, http.MethodPost, "/api/purchase-orders", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateInvalidItemRollsBackEverything(t *testing.T) {
	e, conns := newTestServer(t)

	body := strings.Replace(validBody,
		`[{"product_id": 5, "quantity": 3, "unit_price": 10}]`,
		`[{"product_id": 5, "quantity": 3, "unit_price": 10}, {"product_id": 6, "unit_price": 2}]`, 1)
	rec := doJSON(e, http.MethodPost, "/api/purchase-orders", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	ctx := context.Background()
	headers, err := conns.Reader.NewSelect().Model((*entity.PurchaseOrder)(nil)).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, headers)
	items, err := conns.Reader.NewSelect().Model((*entity.PurchaseOrderItem)(nil)).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, items)
}

func TestCreateIgnoresCallerSuppliedTotalPrice(t *testing.T) {
	e, conns := newTestServer(t)

	body := strings.Replace(validBody,
		`"unit_price": 10}`,
		`"unit_price": 10, "total_price": 999}`, 1)
	rec := doJSON(e, http.MethodPost, "/api/purchase-orders", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	stored := new(entity.PurchaseOrderItem)
	require.NoError(t, conns.Reader.NewSelect().Model(stored).Scan(context.Background()))
	require.Equal(t, 30.0, stored.TotalPrice)
}

func TestCreateIsNotIdempotent(t *testing.T) {
	e, _ := newTestServer(t)

	first := doJSON(e, http.MethodPost, "/api/purchase-orders", validBody)
	second := doJSON(e, http.MethodPost, "/api/purchase-orders", validBody)
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)

	var a, b struct {
		POID int64 `json:"po_id"`
	}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	require.NotEqual(t, a.POID, b.POID)
}

func TestListReturnsOrdersWithItemsNewestFirst(t *testing.T) {
	e, _ := newTestServer(t)

	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/api/purchase-orders", validBody).Code)
	second := strings.Replace(validBody, "PO-4001", "PO-4002", 1)
	second = strings.Replace(second,
		`[{"product_id": 5, "quantity": 3, "unit_price": 10}]`,
		`[{"product_id": 5, "quantity": 3, "unit_price": 10}, {"product_id": 6, "quantity": 1, "unit_price": 4}]`, 1)
	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/api/purchase-orders", second).Code)

	rec := doJSON(e, http.MethodGet, "/api/purchase-orders", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []struct {
		POID     int64  `json:"po_id"`
		PONumber string `json:"po_number"`
		Items    []struct {
			TotalPrice  float64 `json:"total_price"`
			ReceivedQty int     `json:"received_qty"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	require.Equal(t, "PO-4002", orders[0].PONumber)
	require.Equal(t, "PO-4001", orders[1].PONumber)
	require.Len(t, orders[0].Items, 2)
	require.Len(t, orders[1].Items, 1)
	require.Greater(t, orders[0].POID, orders[1].POID)
	require.Equal(t, 30.0, orders[1].Items[0].TotalPrice)
	require.Equal(t, 0, orders[1].Items[0].ReceivedQty)
}
