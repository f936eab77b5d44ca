package purchaseorder

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/procura/internal/dto"
	"github.com/Additional-Code/procura/internal/presentation/http/response"
	service "github.com/Additional-Code/procura/internal/service/purchaseorder"
	"github.com/Additional-Code/procura/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/procura/transport/http/purchaseorder")

// Handler exposes purchase order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a purchase order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/api/purchase-orders")
	g.POST("", h.create)
	g.GET("", h.list)
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload dto.CreatePurchaseOrderRequest
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "purchase-orders.create", trace.WithAttributes(
		attribute.String("po.number", payload.PONumber),
		attribute.Int("po.items", len(payload.Items)),
	))
	defer span.End()

	id, err := h.svc.Create(ctx, payload)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.CreatePurchaseOrderResponse{POID: id}).Build()
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "purchase-orders.list")
	defer span.End()

	orders, err := h.svc.List(ctx)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(orders).Build()
}
