package entity

import "time"

// Estados de la orden de venta.
const (
	SalesStatusOpen      = "open"
	SalesStatusPartial   = "partial"
	SalesStatusFulfilled = "fulfilled"
)

// SalesOrder orden de venta de un cliente, por paquetes.
type SalesOrder struct {
	ID           string
	Code         string
	CustomerName string
	OrderDate    time.Time
	Status       string
	CreatedBy    string
	Lines        []SalesOrderLine
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SalesOrderLine línea por paquete: cantidad pedida y despachada (monótona, nunca mayor a la pedida).
type SalesOrderLine struct {
	ID              string
	SalesOrderID    string
	PackageID       string
	PackageQuantity int64
	ShippedQuantity int64
}

// Remaining paquetes pendientes de despachar.
func (l SalesOrderLine) Remaining() int64 {
	r := l.PackageQuantity - l.ShippedQuantity
	if r < 0 {
		return 0
	}
	return r
}
