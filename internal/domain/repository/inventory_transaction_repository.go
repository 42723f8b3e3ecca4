package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// InventoryTransactionRepository define el puerto de auditoría de movimientos (solo inserción).
type InventoryTransactionRepository interface {
	// Create persiste la cabecera y todas sus líneas.
	Create(ctx context.Context, txn *entity.InventoryTransaction) error
	GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryTransaction, error)
}
