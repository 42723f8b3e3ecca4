package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.ProcurementOrderRepository = (*ProcurementOrderRepo)(nil)

// ProcurementOrderRepo persistencia de órdenes de compra con sus líneas, demanda por paquete y
// vínculos a órdenes de venta.
type ProcurementOrderRepo struct {
	q Querier
}

// NewProcurementOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProcurementOrderRepository(q Querier) *ProcurementOrderRepo {
	return &ProcurementOrderRepo{q: q}
}

// Create persiste la orden completa. Llamar dentro de una tx.
func (r *ProcurementOrderRepo) Create(ctx context.Context, o *entity.ProcurementOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO procurement_orders (id, code, status, note, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.Code, o.Status, o.Note, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert procurement order: %w", err)
	}
	for i := range o.Lines {
		if err := r.CreateLine(ctx, &o.Lines[i]); err != nil {
			return err
		}
	}
	for _, pl := range o.PackageLines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO procurement_order_package_lines (id, order_id, package_id, quantity)
			VALUES ($1, $2, $3, $4)`, pl.ID, o.ID, pl.PackageID, pl.Quantity)
		if err != nil {
			return fmt.Errorf("insert procurement package line: %w", err)
		}
	}
	for _, soID := range o.SalesOrderIDs {
		_, err := r.q.Exec(ctx, `
			INSERT INTO procurement_order_sales_order (procurement_order_id, sales_order_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`, o.ID, soID)
		if err != nil {
			return fmt.Errorf("link sales order: %w", err)
		}
	}
	return nil
}

const procurementColumns = `id, code, status, note, created_by, created_at, updated_at`

func scanProcurementOrder(row pgx.Row) (*entity.ProcurementOrder, error) {
	var o entity.ProcurementOrder
	if err := row.Scan(&o.ID, &o.Code, &o.Status, &o.Note, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID obtiene la orden con todas sus relaciones.
func (r *ProcurementOrderRepo) GetByID(ctx context.Context, id string) (*entity.ProcurementOrder, error) {
	return r.get(ctx, `SELECT `+procurementColumns+` FROM procurement_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) y carga las relaciones.
func (r *ProcurementOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProcurementOrder, error) {
	return r.get(ctx, `SELECT `+procurementColumns+` FROM procurement_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProcurementOrderRepo) get(ctx context.Context, query, id string) (*entity.ProcurementOrder, error) {
	o, err := scanProcurementOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get procurement order: %w", err)
	}
	if err := r.loadRelations(ctx, map[string]*entity.ProcurementOrder{o.ID: o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List lista órdenes, opcionalmente filtradas por estado.
func (r *ProcurementOrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.ProcurementOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+procurementColumns+` FROM procurement_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list procurement orders: %w", err)
	}
	var list []*entity.ProcurementOrder
	byID := make(map[string]*entity.ProcurementOrder)
	for rows.Next() {
		o, err := scanProcurementOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan procurement order: %w", err)
		}
		list = append(list, o)
		byID[o.ID] = o
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, byID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProcurementOrderRepo) loadRelations(ctx context.Context, byID map[string]*entity.ProcurementOrder) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, item_id, suggested_quantity, ordered_quantity, received_quantity, rejected_quantity
		FROM procurement_order_lines WHERE order_id = ANY($1::uuid[]) ORDER BY item_id`, ids)
	if err != nil {
		return fmt.Errorf("get procurement lines: %w", err)
	}
	for rows.Next() {
		var l entity.ProcurementOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ItemID, &l.SuggestedQuantity, &l.OrderedQuantity,
			&l.ReceivedQuantity, &l.RejectedQuantity); err != nil {
			rows.Close()
			return fmt.Errorf("scan procurement line: %w", err)
		}
		byID[l.OrderID].Lines = append(byID[l.OrderID].Lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, order_id, package_id, quantity
		FROM procurement_order_package_lines WHERE order_id = ANY($1::uuid[]) ORDER BY package_id`, ids)
	if err != nil {
		return fmt.Errorf("get procurement package lines: %w", err)
	}
	for rows.Next() {
		var pl entity.ProcurementOrderPackageLine
		if err := rows.Scan(&pl.ID, &pl.OrderID, &pl.PackageID, &pl.Quantity); err != nil {
			rows.Close()
			return fmt.Errorf("scan procurement package line: %w", err)
		}
		byID[pl.OrderID].PackageLines = append(byID[pl.OrderID].PackageLines, pl)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.q.Query(ctx, `
		SELECT procurement_order_id, sales_order_id
		FROM procurement_order_sales_order WHERE procurement_order_id = ANY($1::uuid[]) ORDER BY sales_order_id`, ids)
	if err != nil {
		return fmt.Errorf("get procurement sales orders: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var orderID, soID string
		if err := rows.Scan(&orderID, &soID); err != nil {
			return fmt.Errorf("scan procurement sales order: %w", err)
		}
		byID[orderID].SalesOrderIDs = append(byID[orderID].SalesOrderIDs, soID)
	}
	return rows.Err()
}

// CreateLine inserta una línea nueva en la orden.
func (r *ProcurementOrderRepo) CreateLine(ctx context.Context, l *entity.ProcurementOrderLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO procurement_order_lines (id, order_id, item_id, suggested_quantity, ordered_quantity, received_quantity, rejected_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.OrderID, l.ItemID, l.SuggestedQuantity, l.OrderedQuantity, l.ReceivedQuantity, l.RejectedQuantity,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert procurement line: %w", err)
	}
	return nil
}

// UpdateLine guarda cantidades de una línea. El CHECK de la tabla rechaza recibido + rechazado > ordenado.
func (r *ProcurementOrderRepo) UpdateLine(ctx context.Context, l *entity.ProcurementOrderLine) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE procurement_order_lines
		SET suggested_quantity = $2, ordered_quantity = $3, received_quantity = $4, rejected_quantity = $5
		WHERE id = $1`,
		l.ID, l.SuggestedQuantity, l.OrderedQuantity, l.ReceivedQuantity, l.RejectedQuantity,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.Invalid("lines", "la línea %s supera la cantidad ordenada", l.ID)
		}
		return fmt.Errorf("update procurement line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update procurement line %s: %w", l.ID, domain.ErrNotFound)
	}
	return nil
}

// UpdateStatus cambia el estado de la orden.
func (r *ProcurementOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE procurement_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update procurement status: %w", err)
	}
	return nil
}

// Delete borra la orden; líneas y vínculos caen por ON DELETE CASCADE.
func (r *ProcurementOrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM procurement_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete procurement order: %w", err)
	}
	return nil
}
