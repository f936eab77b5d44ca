package catalog

import (
	"context"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/Additional-Code/procura/internal/database"
	"github.com/Additional-Code/procura/internal/entity"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/procura/repository/catalog")

// Repository serves the read-only catalog collections backing the
// pass-through list endpoints. Reads run as unscoped pool queries.
type Repository struct {
	reader *bun.DB
}

// NewRepository wires a catalog repository on the read connection.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{reader: conns.Reader}
}

// Products returns all product rows.
func (r *Repository) Products(ctx context.Context) ([]*entity.Product, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.Products")
	defer span.End()

	var products []*entity.Product
	if err := r.reader.NewSelect().Model(&products).Order("product_id ASC").Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return products, nil
}

// Suppliers returns all supplier rows.
func (r *Repository) Suppliers(ctx context.Context) ([]*entity.Supplier, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.Suppliers")
	defer span.End()

	var suppliers []*entity.Supplier
	if err := r.reader.NewSelect().Model(&suppliers).Order("supplier_id ASC").Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return suppliers, nil
}

// Users returns all user rows.
func (r *Repository) Users(ctx context.Context) ([]*entity.User, error) {
	ctx, span := repoTracer.Start(ctx, "CatalogRepository.Users")
	defer span.End()

	var users []*entity.User
	if err := r.reader.NewSelect().Model(&users).Order("user_id ASC").Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return users, nil
}
