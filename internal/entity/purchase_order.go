package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Purchase order statuses as used by the procurement workflow.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusOrdered   = "ordered"
	StatusReceived  = "received"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]struct{}{
	StatusDraft:     {},
	StatusPending:   {},
	StatusApproved:  {},
	StatusRejected:  {},
	StatusOrdered:   {},
	StatusReceived:  {},
	StatusCancelled: {},
}

// ValidStatus reports whether s is a known purchase order status.
func ValidStatus(s string) bool {
	_, ok := validStatuses[s]
	return ok
}

// PurchaseOrder is the header row summarizing a supplier order. It is
// created together with its items in a single transaction and never
// exists without at least one item.
type PurchaseOrder struct {
	bun.BaseModel `bun:"table:purchaseorders"`

	ID           int64     `bun:"po_id,pk,autoincrement"`
	SupplierID   int64     `bun:"supplier_id,notnull"`
	CreatedBy    int64     `bun:"created_by,notnull"`
	PONumber     string    `bun:"po_number,notnull"`
	Status       string    `bun:"status,notnull"`
	OrderDate    time.Time `bun:"order_date,notnull"`
	ExpectedDate time.Time `bun:"expected_date,notnull"`
	TotalAmount  float64   `bun:"total_amount,notnull"`
	Notes        string    `bun:"notes,nullzero"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:CURRENT_TIMESTAMP"`

	Items []*PurchaseOrderItem `bun:"rel:has-many,join:po_id=po_id"`
}

// PurchaseOrderItem is one line within a purchase order. The stored
// total price is always recomputed server-side as quantity * unit price;
// received quantity starts at zero and is advanced by the receiving
// workflow.
type PurchaseOrderItem struct {
	bun.BaseModel `bun:"table:purchaseorderitems"`

	ID          int64   `bun:"item_id,pk,autoincrement"`
	POID        int64   `bun:"po_id,notnull"`
	ProductID   int64   `bun:"product_id,notnull"`
	Quantity    int     `bun:"quantity,notnull"`
	UnitPrice   float64 `bun:"unit_price,notnull"`
	TotalPrice  float64 `bun:"total_price,notnull"`
	ReceivedQty int     `bun:"received_qty,notnull,default:0"`
}
