package dto

import (
	"time"

	"github.com/Additional-Code/procura/internal/entity"
)

// ProductResponse represents a catalog product row.
type ProductResponse struct {
	ProductID   int64     `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	SupplierID  int64     `json:"supplier_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// SupplierResponse represents a supplier row.
type SupplierResponse struct {
	SupplierID   int64     `json:"supplier_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	TaxID        string    `json:"tax_id,omitempty"`
	PaymentTerms int       `json:"payment_terms"`
	Status       string    `json:"status"`
	Rating       float64   `json:"rating,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserResponse represents an internal user row.
type UserResponse struct {
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewProductResponse maps a product entity onto the wire shape.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		Category:    p.Category,
		Unit:        p.Unit,
		Price:       p.Price,
		Currency:    p.Currency,
		SupplierID:  p.SupplierID,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
	}
}

// NewSupplierResponse maps a supplier entity onto the wire shape.
func NewSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		SupplierID:   s.ID,
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		Address:      s.Address,
		TaxID:        s.TaxID,
		PaymentTerms: s.PaymentTerms,
		Status:       s.Status,
		Rating:       s.Rating,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
	}
}

// NewUserResponse maps a user entity onto the wire shape.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
	}
}
