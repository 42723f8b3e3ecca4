package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// ProcurementOrderRepository define el puerto de persistencia para órdenes de compra.
type ProcurementOrderRepository interface {
	// Create persiste cabecera, líneas, líneas de paquete y vínculos con órdenes de venta.
	Create(ctx context.Context, order *entity.ProcurementOrder) error
	GetByID(ctx context.Context, id string) (*entity.ProcurementOrder, error)
	// GetForUpdate bloquea la cabecera y carga las líneas.
	GetForUpdate(ctx context.Context, id string) (*entity.ProcurementOrder, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.ProcurementOrder, error)
	CreateLine(ctx context.Context, line *entity.ProcurementOrderLine) error
	UpdateLine(ctx context.Context, line *entity.ProcurementOrderLine) error
	UpdateStatus(ctx context.Context, id, status string) error
	// Delete elimina la orden; las líneas se borran en cascada.
	Delete(ctx context.Context, id string) error
}
