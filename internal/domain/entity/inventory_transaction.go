package entity

import "time"

// Tipos de transacción de inventario.
const (
	TransactionTypeIn  = "in"
	TransactionTypeOut = "out"
)

// Modos de transacción: por paquete o a la carta (SKU sueltos).
const (
	TransactionModePackage  = "package"
	TransactionModeAlacarte = "alacarte"
)

// InventoryTransaction cabecera inmutable de un movimiento de stock (auditoría).
type InventoryTransaction struct {
	ID              string
	Type            string
	Mode            string
	PackageID       *string
	PackageQuantity *int64
	SalesOrderID    *string
	CreatedBy       string
	Note            string
	CreatedAt       time.Time
	Lines           []InventoryTransactionLine
}

// InventoryTransactionLine línea de la transacción: SKU, variante y cantidad (siempre positiva).
type InventoryTransactionLine struct {
	ID            string
	TransactionID string
	ItemID        string
	VariantID     string
	Quantity      int64
}
