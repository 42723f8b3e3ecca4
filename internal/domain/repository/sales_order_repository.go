package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// SalesOrderRepository define el puerto de persistencia para órdenes de venta.
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	// GetForUpdate bloquea la fila de la orden para serializar despachos concurrentes.
	GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.SalesOrder, error)
	UpdateLineShipped(ctx context.Context, lineID string, shipped int64) error
	UpdateStatus(ctx context.Context, id, status string) error
	// ListOpenDemandLines devuelve las líneas de órdenes open/partial sin orden de compra vinculada.
	ListOpenDemandLines(ctx context.Context) ([]entity.SalesOrderLine, error)
}
