package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Product is a purchasable catalog item offered by a supplier.
type Product struct {
	bun.BaseModel `bun:"table:products"`

	ID          int64     `bun:"product_id,pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	Description string    `bun:"description,nullzero"`
	SKU         string    `bun:"sku,notnull"`
	Category    string    `bun:"category,nullzero"`
	Unit        string    `bun:"unit,nullzero"`
	Price       float64   `bun:"price,notnull"`
	Currency    string    `bun:"currency,notnull,default:'USD'"`
	SupplierID  int64     `bun:"supplier_id,notnull"`
	Status      string    `bun:"status,notnull,default:'active'"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}

// Supplier is a vendor purchase orders are placed against.
type Supplier struct {
	bun.BaseModel `bun:"table:suppliers"`

	ID           int64     `bun:"supplier_id,pk,autoincrement"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull"`
	Phone        string    `bun:"phone,nullzero"`
	Address      string    `bun:"address,nullzero"`
	TaxID        string    `bun:"tax_id,nullzero"`
	PaymentTerms int       `bun:"payment_terms,notnull,default:30"`
	Status       string    `bun:"status,notnull,default:'active'"`
	Rating       float64   `bun:"rating,nullzero"`
	Notes        string    `bun:"notes,nullzero"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}

// User is an internal account referenced by purchase orders via
// created_by. Identity resolution happens upstream; this service only
// stores and lists the rows.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID         int64     `bun:"user_id,pk,autoincrement"`
	Email      string    `bun:"email,notnull"`
	Name       string    `bun:"name,notnull"`
	Role       string    `bun:"role,notnull,default:'user'"`
	Department string    `bun:"department,nullzero"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`
}
