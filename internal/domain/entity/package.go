package entity

import "time"

// Package es un paquete (bundle) de SKUs con cantidades fijas.
type Package struct {
	ID        string
	Code      string
	Name      string
	Active    bool
	Lines     []PackageItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PackageItem línea de la lista de materiales del paquete.
type PackageItem struct {
	ID        string
	PackageID string
	ItemID    string
	Quantity  int64
}
