package purchaseorder

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/procura/internal/database"
	"github.com/Additional-Code/procura/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/procura/repository/purchaseorder")

// Repository encapsulates read/write access for purchase orders.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists a purchase order header together with its items in a
// single transaction. Item totals are recomputed from quantity and unit
// price and received quantities start at zero. Either the header and
// every item commit, or nothing does; the generated header id is set on
// po and returned.
func (r *Repository) Create(ctx context.Context, po *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) (int64, error) {
	if po == nil {
		return 0, errors.New("nil purchase order")
	}
	if len(items) == 0 {
		return 0, errors.New("purchase order requires at least one item")
	}
	ctx, span := repoTracer.Start(ctx, "PurchaseOrderRepository.Create", trace.WithAttributes(
		attribute.String("po.number", po.PONumber),
		attribute.Int("po.items", len(items)),
	))
	defer span.End()

	err := r.writer.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(po).Exec(ctx); err != nil {
			return err
		}
		for _, item := range items {
			item.POID = po.ID
			item.TotalPrice = float64(item.Quantity) * item.UnitPrice
			item.ReceivedQty = 0
			if _, err := tx.NewInsert().Model(item).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction failed")
		return 0, err
	}
	return po.ID, nil
}

// ListWithItems fetches all headers in descending id order and attaches
// each header's items before returning. The per-header item fetch is one
// query each; callers see a single logical operation so a joined query
// can replace it without an interface change.
func (r *Repository) ListWithItems(ctx context.Context) ([]*entity.PurchaseOrder, error) {
	ctx, span := repoTracer.Start(ctx, "PurchaseOrderRepository.ListWithItems")
	defer span.End()

	var orders []*entity.PurchaseOrder
	if err := r.reader.NewSelect().Model(&orders).Order("po_id DESC").Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select headers failed")
		return nil, err
	}

	for _, po := range orders {
		items := make([]*entity.PurchaseOrderItem, 0)
		err := r.reader.NewSelect().
			Model(&items).
			Where("po_id = ?", po.ID).
			Order("item_id ASC").
			Scan(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "select items failed")
			return nil, err
		}
		po.Items = items
	}

	return orders, nil
}
