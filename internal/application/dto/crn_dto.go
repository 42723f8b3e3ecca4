package dto

import "time"

// CrnReceiveLineRequest recepción de una línea de orden de compra vía CRN.
type CrnReceiveLineRequest struct {
	LineID      string `json:"line_id" validate:"required,uuid"`
	ReceivedQty int64  `json:"received_qty" validate:"gte=0,lte=1000000000"`
	RejectedQty int64  `json:"rejected_qty" validate:"gte=0,lte=1000000000"`
	Reason      string `json:"reason" validate:"max=255"`
}

// CrnReceiveProcurementRequest body para POST /api/warehouse/crn/procurement/:order/receive.
type CrnReceiveProcurementRequest struct {
	Lines []CrnReceiveLineRequest `json:"lines" validate:"required,min=1,dive"`
	Note  string                  `json:"note" validate:"max=500"`
}

// CrnItemRequest línea de CRN manual.
type CrnItemRequest struct {
	ItemVariantID   string `json:"item_variant_id" validate:"required,uuid"`
	ExpectedQty     int64  `json:"expected_qty" validate:"gte=0,lte=1000000000"`
	ReceivedQty     int64  `json:"received_qty" validate:"gte=0,lte=1000000000"`
	RejectedQty     int64  `json:"rejected_qty" validate:"gte=0,lte=1000000000"`
	RejectionReason string `json:"rejection_reason" validate:"max=255"`
}

// CreateCrnRequest body para POST /api/warehouse/crn.
type CreateCrnRequest struct {
	ProcurementOrderID string           `json:"procurement_order_id,omitempty" validate:"omitempty,uuid"`
	Items              []CrnItemRequest `json:"items" validate:"required,min=1,dive"`
	Note               string           `json:"note" validate:"max=500"`
}

// CrnItemResponse línea de CRN.
type CrnItemResponse struct {
	ID              string `json:"id"`
	VariantID       string `json:"item_variant_id"`
	ItemID          string `json:"item_id"`
	ExpectedQty     int64  `json:"expected_qty"`
	ReceivedQty     int64  `json:"received_qty"`
	RejectedQty     int64  `json:"rejected_qty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// CrnResponse nota de recepción con sus líneas.
type CrnResponse struct {
	ID                 string            `json:"id"`
	Number             string            `json:"number"`
	Status             string            `json:"status"`
	ProcurementOrderID *string           `json:"procurement_order_id,omitempty"`
	Note               string            `json:"note"`
	CreatedBy          string            `json:"created_by"`
	TransferredAt      *time.Time        `json:"transferred_at,omitempty"`
	Items              []CrnItemResponse `json:"items"`
	CreatedAt          time.Time         `json:"created_at"`
}

// CrnListResponse lista paginada de CRN.
type CrnListResponse struct {
	Items []CrnResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
