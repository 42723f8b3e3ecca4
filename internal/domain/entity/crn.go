package entity

import "time"

// Estados de la nota de recepción (CRN).
const (
	CrnStatusDraft       = "draft"
	CrnStatusTransferred = "transferred"
)

// ContenaReceivingNote nota de recepción física de mercancía, opcionalmente ligada a una orden de compra.
type ContenaReceivingNote struct {
	ID                 string
	Number             string
	Status             string
	ProcurementOrderID *string
	Note               string
	CreatedBy          string
	TransferredAt      *time.Time
	Items              []CrnItem
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CrnItem línea de la CRN fijada a una variante.
type CrnItem struct {
	ID              string
	CrnID           string
	VariantID       string
	ItemID          string
	ExpectedQty     int64
	ReceivedQty     int64
	RejectedQty     int64
	RejectionReason string
}
