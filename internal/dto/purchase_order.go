package dto

import (
	"time"

	"github.com/Additional-Code/procura/internal/entity"
)

// DateLayout is the wire format for order and expected dates.
const DateLayout = "2006-01-02"

// CreatePurchaseOrderItem is one requested line item. Numeric fields are
// pointers so a missing field can be told apart from an explicit zero;
// TotalPrice is accepted for wire compatibility but always recomputed.
type CreatePurchaseOrderItem struct {
	ProductID  *int64   `json:"product_id"`
	Quantity   *int     `json:"quantity"`
	UnitPrice  *float64 `json:"unit_price"`
	TotalPrice *float64 `json:"total_price"`
}

// CreatePurchaseOrderRequest is the POST /api/purchase-orders payload.
type CreatePurchaseOrderRequest struct {
	SupplierID   *int64                    `json:"supplier_id"`
	CreatedBy    *int64                    `json:"created_by"`
	PONumber     string                    `json:"po_number"`
	Status       string                    `json:"status"`
	OrderDate    string                    `json:"order_date"`
	ExpectedDate string                    `json:"expected_date"`
	TotalAmount  *float64                  `json:"total_amount"`
	Notes        string                    `json:"notes"`
	Items        []CreatePurchaseOrderItem `json:"items"`
}

// CreatePurchaseOrderResponse carries the generated header identifier.
type CreatePurchaseOrderResponse struct {
	POID int64 `json:"po_id"`
}

// PurchaseOrderItemResponse mirrors a stored line item.
type PurchaseOrderItemResponse struct {
	ItemID      int64   `json:"item_id"`
	POID        int64   `json:"po_id"`
	ProductID   int64   `json:"product_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	ReceivedQty int     `json:"received_qty"`
}

// PurchaseOrderResponse is a header annotated with its full item list.
type PurchaseOrderResponse struct {
	POID         int64                       `json:"po_id"`
	SupplierID   int64                       `json:"supplier_id"`
	CreatedBy    int64                       `json:"created_by"`
	PONumber     string                      `json:"po_number"`
	Status       string                      `json:"status"`
	OrderDate    string                      `json:"order_date"`
	ExpectedDate string                      `json:"expected_date"`
	TotalAmount  float64                     `json:"total_amount"`
	Notes        string                      `json:"notes,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	Items        []PurchaseOrderItemResponse `json:"items"`
}

// NewPurchaseOrderResponse converts a header entity and its items into
// the wire representation. The items slice is never nil so the JSON
// always carries an items array.
func NewPurchaseOrderResponse(po *entity.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(po.Items))
	for _, item := range po.Items {
		items = append(items, PurchaseOrderItemResponse{
			ItemID:      item.ID,
			POID:        item.POID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			ReceivedQty: item.ReceivedQty,
		})
	}
	return PurchaseOrderResponse{
		POID:         po.ID,
		SupplierID:   po.SupplierID,
		CreatedBy:    po.CreatedBy,
		PONumber:     po.PONumber,
		Status:       po.Status,
		OrderDate:    po.OrderDate.Format(DateLayout),
		ExpectedDate: po.ExpectedDate.Format(DateLayout),
		TotalAmount:  po.TotalAmount,
		Notes:        po.Notes,
		CreatedAt:    po.CreatedAt,
		Items:        items,
	}
}
