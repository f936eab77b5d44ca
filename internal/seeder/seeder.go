package seeder

import (
	"context"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/Additional-Code/procura/internal/database"
	"github.com/Additional-Code/procura/internal/entity"
)

// Seeder performs database seeding for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the primary database connection.
func New(conns *database.Connections, logger *zap.Logger) *Seeder {
	return &Seeder{db: conns.Writer, logger: logger}
}

// Catalog seeds example suppliers, products, and users if missing so the
// purchase order screens have references to point at.
func (s *Seeder) Catalog(ctx context.Context) error {
	suppliers := []entity.Supplier{
		{Name: "Acme Industrial Supply", Email: "sales@acme-industrial.example", Phone: "+1-555-0101", PaymentTerms: 30, Status: "active"},
		{Name: "Globex Office Wholesale", Email: "orders@globex.example", Phone: "+1-555-0102", PaymentTerms: 45, Status: "active"},
	}
	for i := range suppliers {
		_, err := s.db.NewInsert().Model(&suppliers[i]).
			On("CONFLICT (email) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	products := []entity.Product{
		{Name: "A4 Copy Paper", SKU: "PPR-A4-500", Category: "office", Unit: "ream", Price: 4.50, Currency: "USD", SupplierID: 2, Status: "active"},
		{Name: "Nitrile Gloves", SKU: "GLV-NTR-100", Category: "safety", Unit: "box", Price: 12.00, Currency: "USD", SupplierID: 1, Status: "active"},
		{Name: "Packing Tape", SKU: "TPE-PCK-48", Category: "warehouse", Unit: "roll", Price: 2.25, Currency: "USD", SupplierID: 1, Status: "active"},
	}
	for i := range products {
		_, err := s.db.NewInsert().Model(&products[i]).
			On("CONFLICT (sku) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	users := []entity.User{
		{Email: "admin@procura.example", Name: "Site Admin", Role: "admin", Department: "operations"},
		{Email: "buyer@procura.example", Name: "Default Buyer", Role: "user", Department: "purchasing"},
	}
	for i := range users {
		_, err := s.db.NewInsert().Model(&users[i]).
			On("CONFLICT (email) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("seeded catalog",
			zap.Int("suppliers", len(suppliers)),
			zap.Int("products", len(products)),
			zap.Int("users", len(users)),
		)
	}
	return nil
}
