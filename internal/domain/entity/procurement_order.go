package entity

import "time"

// Estados de la orden de compra.
const (
	ProcurementStatusDraft    = "draft"
	ProcurementStatusPartial  = "partial"
	ProcurementStatusReceived = "received"
)

// ProcurementOrder orden de compra a proveedor.
type ProcurementOrder struct {
	ID            string
	Code          string
	Status        string
	Note          string
	CreatedBy     string
	Lines         []ProcurementOrderLine
	PackageLines  []ProcurementOrderPackageLine
	SalesOrderIDs []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProcurementOrderLine línea por SKU (única por orden+item).
type ProcurementOrderLine struct {
	ID                string
	OrderID           string
	ItemID            string
	SuggestedQuantity int64
	OrderedQuantity   int64
	ReceivedQuantity  int64
	RejectedQuantity  int64
}

// Remaining cantidad pendiente: ordenado - recibido - rechazado (mínimo 0).
func (l ProcurementOrderLine) Remaining() int64 {
	r := l.OrderedQuantity - l.ReceivedQuantity - l.RejectedQuantity
	if r < 0 {
		return 0
	}
	return r
}

// Complete indica si la línea quedó cubierta (recibido + rechazado >= ordenado).
func (l ProcurementOrderLine) Complete() bool {
	return l.ReceivedQuantity+l.RejectedQuantity >= l.OrderedQuantity
}

// ProcurementOrderPackageLine demanda por paquete que originó la orden (solo trazabilidad).
type ProcurementOrderPackageLine struct {
	ID        string
	OrderID   string
	PackageID string
	Quantity  int64
}
