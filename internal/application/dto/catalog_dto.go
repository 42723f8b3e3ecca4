package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un SKU.
type CreateItemRequest struct {
	Code        string           `json:"code" validate:"required,min=1,max=64"`
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	UnitMeasure string           `json:"unit_measure" validate:"omitempty,max=20"`
	Length      *decimal.Decimal `json:"length,omitempty"`
}

// ItemResponse salida de un SKU.
type ItemResponse struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	UnitMeasure string           `json:"unit_measure"`
	Length      *decimal.Decimal `json:"length,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ItemListResponse lista paginada de SKUs.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// VariantResponse balde de stock de un SKU.
type VariantResponse struct {
	ID           string `json:"id"`
	ItemID       string `json:"item_id"`
	Color        string `json:"color,omitempty"`
	IsDefault    bool   `json:"is_default"`
	StockInitial int64  `json:"stock_initial"`
	StockCurrent int64  `json:"stock_current"`
}

// ItemStockResponse stock de un SKU por variante.
type ItemStockResponse struct {
	Item         ItemResponse      `json:"item"`
	Variants     []VariantResponse `json:"variants"`
	StockCurrent int64             `json:"stock_current"`
}

// PackageLineRequest línea de la lista de materiales.
type PackageLineRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Quantity int64  `json:"quantity" validate:"gt=0,lte=1000000000"`
}

// CreatePackageRequest entrada para crear un paquete.
type CreatePackageRequest struct {
	Code   string               `json:"code" validate:"required,min=1,max=64"`
	Name   string               `json:"name" validate:"required,min=1,max=200"`
	Active *bool                `json:"active,omitempty"`
	Lines  []PackageLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// PackageLineResponse línea de paquete.
type PackageLineResponse struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// PackageResponse salida de un paquete.
type PackageResponse struct {
	ID        string                `json:"id"`
	Code      string                `json:"code"`
	Name      string                `json:"name"`
	Active    bool                  `json:"active"`
	Lines     []PackageLineResponse `json:"lines"`
	CreatedAt time.Time             `json:"created_at"`
}
