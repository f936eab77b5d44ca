package catalog

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/Additional-Code/procura/internal/presentation/http/response"
	service "github.com/Additional-Code/procura/internal/service/catalog"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/procura/transport/http/catalog")

// Handler exposes the read-only catalog endpoints.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a catalog Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.GET("/api/products", h.products)
	e.GET("/api/suppliers", h.suppliers)
	e.GET("/api/users", h.users)
}

func (h *Handler) products(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "catalog.products")
	defer span.End()

	products, err := h.svc.Products(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(products).Build()
}

func (h *Handler) suppliers(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "catalog.suppliers")
	defer span.End()

	suppliers, err := h.svc.Suppliers(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(suppliers).Build()
}

func (h *Handler) users(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "catalog.users")
	defer span.End()

	users, err := h.svc.Users(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}
	return b.WithData(users).Build()
}
