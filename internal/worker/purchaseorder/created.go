package purchaseorder

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/procura/internal/config"
	"github.com/Additional-Code/procura/internal/messaging"
	posvc "github.com/Additional-Code/procura/internal/service/purchaseorder"
	"github.com/Additional-Code/procura/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Additional-Code/procura/worker/purchaseorder")

// Module registers purchase order worker handlers.
var Module = fx.Module("worker_purchaseorder",
	fx.Provide(
		fx.Annotate(
			NewCreatedHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewCreatedHandler sets up a worker handler that processes purchase
// order creation events. It currently logs the event; downstream
// notification hooks attach here.
func NewCreatedHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.purchase-orders.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event posvc.PurchaseOrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode purchase order created", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}
		logger.Info("purchase order created event processed",
			zap.Int64("po_id", event.POID),
			zap.String("po_number", event.PONumber),
			zap.Int64("supplier_id", event.SupplierID),
			zap.Float64("total_amount", event.TotalAmount),
			zap.Int("item_count", event.ItemCount),
		)

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
