package dto

import "time"

// ProcurementPackageLineRequest demanda por paquete (trazabilidad).
type ProcurementPackageLineRequest struct {
	PackageID string `json:"package_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"gt=0,lte=1000000000"`
}

// ProcurementSkuLineRequest línea por SKU a pedir.
type ProcurementSkuLineRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Quantity int64  `json:"quantity" validate:"gt=0,lte=1000000000"`
}

// CreateProcurementDraftRequest body para POST /api/procurement/orders.
type CreateProcurementDraftRequest struct {
	PackageLines   []ProcurementPackageLineRequest `json:"package_lines" validate:"dive"`
	SkuLines       []ProcurementSkuLineRequest     `json:"sku_lines" validate:"required,min=1,dive"`
	SourceOrderIDs []string                        `json:"source_order_ids" validate:"required,min=1,dive,required,uuid"`
	Note           string                          `json:"note" validate:"max=500"`
}

// AddProcurementLineRequest body para POST /api/procurement/orders/:order/lines.
type AddProcurementLineRequest struct {
	ItemID   string `json:"item_id" validate:"required,uuid"`
	Quantity int64  `json:"quantity" validate:"gt=0,lte=1000000000"`
}

// ReceiveProcurementLineRequest recepción directa de una línea (cantidad total recibida).
type ReceiveProcurementLineRequest struct {
	LineID           string `json:"line_id" validate:"required,uuid"`
	ReceivedQuantity int64  `json:"received_quantity" validate:"gte=0,lte=1000000000"`
}

// ReceiveProcurementRequest body para PUT /api/procurement/orders/:order/receive.
type ReceiveProcurementRequest struct {
	Lines []ReceiveProcurementLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// ProcurementOrderLineResponse línea de orden de compra.
type ProcurementOrderLineResponse struct {
	ID                string `json:"id"`
	ItemID            string `json:"item_id"`
	SuggestedQuantity int64  `json:"suggested_quantity"`
	OrderedQuantity   int64  `json:"ordered_quantity"`
	ReceivedQuantity  int64  `json:"received_quantity"`
	RejectedQuantity  int64  `json:"rejected_quantity"`
}

// ProcurementPackageLineResponse demanda por paquete registrada.
type ProcurementPackageLineResponse struct {
	PackageID string `json:"package_id"`
	Quantity  int64  `json:"quantity"`
}

// ProcurementOrderResponse orden con sus relaciones.
type ProcurementOrderResponse struct {
	ID             string                           `json:"id"`
	Code           string                           `json:"code"`
	Status         string                           `json:"status"`
	Note           string                           `json:"note"`
	CreatedBy      string                           `json:"created_by"`
	Lines          []ProcurementOrderLineResponse   `json:"lines"`
	PackageLines   []ProcurementPackageLineResponse `json:"package_lines"`
	SourceOrderIDs []string                         `json:"source_order_ids"`
	CreatedAt      time.Time                        `json:"created_at"`
	UpdatedAt      time.Time                        `json:"updated_at"`
}

// ProcurementOrderListResponse lista paginada de órdenes de compra.
type ProcurementOrderListResponse struct {
	Items []ProcurementOrderResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}

// ShortageSkuLine faltante por SKU.
type ShortageSkuLine struct {
	ItemID   string `json:"item_id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Demand   int64  `json:"demand"`
	Stock    int64  `json:"stock"`
	Shortage int64  `json:"shortage"`
}

// ShortagePackageLine demanda pendiente por paquete.
type ShortagePackageLine struct {
	PackageID string `json:"package_id"`
	Code      string `json:"code"`
	Quantity  int64  `json:"quantity"`
}

// ShortageSourceOrder orden de venta que aporta demanda.
type ShortageSourceOrder struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Status string `json:"status"`
}

// ShortageSuggestionResponse propuesta de borrador de compra (misma forma que consume CreateDraft).
type ShortageSuggestionResponse struct {
	PackageLines []ShortagePackageLine `json:"package_lines"`
	SkuLines     []ShortageSkuLine     `json:"sku_lines"`
	SourceOrders []ShortageSourceOrder `json:"source_orders"`
}
