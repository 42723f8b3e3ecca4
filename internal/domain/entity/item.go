package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un SKU del catálogo. Code es único.
// El stock no vive aquí sino en sus variantes (Variant).
type Item struct {
	ID          string
	Code        string
	Name        string
	UnitMeasure string
	Length      *decimal.Decimal // largo físico opcional (NUMERIC)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ShortCode devuelve el código corto del SKU usado en mensajes de error.
func (i *Item) ShortCode() string {
	if i == nil {
		return ""
	}
	if i.Code != "" {
		return i.Code
	}
	return i.ID
}

// VariantKind distingue la variante por defecto (sin color) de una variante con color.
type VariantKind struct {
	color string
}

// DefaultVariant es la variante usada cuando el stock se lleva a nivel de SKU.
func DefaultVariant() VariantKind { return VariantKind{} }

// ColoredVariant crea una variante por color. Un nombre vacío equivale a DefaultVariant.
func ColoredVariant(color string) VariantKind {
	return VariantKind{color: strings.TrimSpace(color)}
}

// IsDefault indica si es la variante por defecto.
func (k VariantKind) IsDefault() bool { return k.color == "" }

// Color devuelve el color ("" para la variante por defecto).
func (k VariantKind) Color() string { return k.color }

// Variant es un balde de stock bajo un Item.
// StockInitial acumula entradas históricas; StockCurrent es el disponible (nunca negativo).
type Variant struct {
	ID           string
	ItemID       string
	Kind         VariantKind
	StockInitial int64
	StockCurrent int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
