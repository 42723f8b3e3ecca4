package sales

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain"
	domaininv "github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// FulfillmentTracker registra paquetes despachados contra una orden de venta.
type FulfillmentTracker struct {
	log zerolog.Logger
}

// NewFulfillmentTracker construye el tracker.
func NewFulfillmentTracker(log zerolog.Logger) *FulfillmentTracker {
	return &FulfillmentTracker{log: log.With().Str("component", "fulfillment").Logger()}
}

// RecordShipmentInTx suma qty a la línea del paquete y recalcula el estado de la orden, dentro de la
// transacción del caller. Bloquea la fila de la orden para serializar despachos concurrentes.
// qty <= 0, orden inexistente o paquete sin línea en la orden: no hace nada.
// Un despacho que supere lo pedido se rechaza.
func (t *FulfillmentTracker) RecordShipmentInTx(ctx context.Context, store repository.Store, salesOrderID, packageID string, qty int64) error {
	if qty <= 0 {
		return nil
	}
	order, err := store.SalesOrders().GetForUpdate(ctx, salesOrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return nil
	}
	idx := -1
	for i, l := range order.Lines {
		if l.PackageID == packageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.log.Debug().Str("sales_order_id", salesOrderID).Str("package_id", packageID).Msg("paquete sin línea en la orden; despacho no registrado")
		return nil
	}
	line := &order.Lines[idx]
	if line.ShippedQuantity+qty > line.PackageQuantity {
		return domain.Invalid("package_quantity", "la orden %s tiene pendientes %d paquetes; se intentó despachar %d",
			order.Code, line.Remaining(), qty)
	}
	line.ShippedQuantity += qty
	if err := store.SalesOrders().UpdateLineShipped(ctx, line.ID, line.ShippedQuantity); err != nil {
		return err
	}
	status := domaininv.DeriveSalesOrderStatus(order.Lines)
	if status != order.Status {
		if err := store.SalesOrders().UpdateStatus(ctx, order.ID, status); err != nil {
			return err
		}
	}
	t.log.Info().
		Str("sales_order_id", order.ID).
		Str("package_id", packageID).
		Int64("shipped", line.ShippedQuantity).
		Str("status", status).
		Msg("despacho registrado")
	return nil
}
