package dto

import "time"

// SalesOrderLineRequest línea por paquete.
type SalesOrderLineRequest struct {
	PackageID       string `json:"package_id" validate:"required,uuid"`
	PackageQuantity int64  `json:"package_quantity" validate:"gt=0,lte=1000000000"`
}

// SubmitSalesOrderRequest body para POST /api/orders. order_date en formato YYYY-MM-DD.
type SubmitSalesOrderRequest struct {
	CustomerName string                  `json:"customer_name" validate:"required,min=1,max=200"`
	OrderDate    string                  `json:"order_date" validate:"required,datetime=2006-01-02"`
	Lines        []SalesOrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SalesOrderLineResponse línea de venta.
type SalesOrderLineResponse struct {
	ID              string `json:"id"`
	PackageID       string `json:"package_id"`
	PackageQuantity int64  `json:"package_quantity"`
	ShippedQuantity int64  `json:"shipped_quantity"`
}

// SalesOrderResponse orden de venta con líneas.
type SalesOrderResponse struct {
	ID           string                   `json:"id"`
	Code         string                   `json:"code"`
	CustomerName string                   `json:"customer_name"`
	OrderDate    string                   `json:"order_date"`
	Status       string                   `json:"status"`
	CreatedBy    string                   `json:"created_by"`
	Lines        []SalesOrderLineResponse `json:"lines"`
	CreatedAt    time.Time                `json:"created_at"`
}

// SalesOrderListResponse lista paginada de órdenes de venta.
type SalesOrderListResponse struct {
	Items []SalesOrderResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
