package dto

import "time"

// StockLineRequest línea a la carta (SKU + cantidad positiva).
type StockLineRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Quantity int64  `json:"quantity" validate:"gt=0,lte=1000000000"`
}

// StockMovementRequest body para POST /api/items/stock/in y /api/items/stock/out.
// mode=package requiere package_id + package_quantity; mode=alacarte requiere lines.
type StockMovementRequest struct {
	Mode            string             `json:"mode" validate:"required,oneof=package alacarte"`
	PackageID       string             `json:"package_id" validate:"required_if=Mode package,omitempty,uuid"`
	PackageQuantity int64              `json:"package_quantity" validate:"required_if=Mode package,gte=0,lte=1000000000"`
	Lines           []StockLineRequest `json:"lines" validate:"required_if=Mode alacarte,dive"`
	SalesOrderID    string             `json:"sales_order_id,omitempty" validate:"omitempty,uuid"`
	Note            string             `json:"note" validate:"max=500"`
}

// InventoryTransactionLineResponse línea de auditoría.
type InventoryTransactionLineResponse struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id"`
	VariantID string `json:"variant_id"`
	Quantity  int64  `json:"quantity"`
}

// InventoryTransactionResponse transacción creada con sus líneas.
type InventoryTransactionResponse struct {
	ID              string                             `json:"id"`
	Type            string                             `json:"type"`
	Mode            string                             `json:"mode"`
	PackageID       *string                            `json:"package_id,omitempty"`
	PackageQuantity *int64                             `json:"package_quantity,omitempty"`
	SalesOrderID    *string                            `json:"sales_order_id,omitempty"`
	CreatedBy       string                             `json:"created_by"`
	Note            string                             `json:"note"`
	CreatedAt       time.Time                          `json:"created_at"`
	Lines           []InventoryTransactionLineResponse `json:"lines"`
}

// InventoryTransactionListResponse lista paginada de transacciones.
type InventoryTransactionListResponse struct {
	Items []InventoryTransactionResponse `json:"items"`
	Page  PageResponse                   `json:"page"`
}
