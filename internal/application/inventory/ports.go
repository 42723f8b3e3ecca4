package inventory

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de inventario: si fn retorna error se hace Rollback de todo.
type TxRunner interface {
	Run(ctx context.Context, fn func(store repository.Store) error) error
}

// ShipmentRecorder registra despachos de paquetes contra una orden de venta dentro de la tx del caller.
// Lo implementa *sales.FulfillmentTracker.
type ShipmentRecorder interface {
	RecordShipmentInTx(ctx context.Context, store repository.Store, salesOrderID, packageID string, qty int64) error
}
