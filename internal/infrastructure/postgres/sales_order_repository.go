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

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

// SalesOrderRepo persistencia de órdenes de venta y sus líneas por paquete.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create persiste la orden y sus líneas.
func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_orders (id, code, customer_name, order_date, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.Code, o.CustomerName, o.OrderDate, o.Status, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	for _, l := range o.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sales_order_lines (id, sales_order_id, package_id, package_quantity, shipped_quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			l.ID, o.ID, l.PackageID, l.PackageQuantity, l.ShippedQuantity,
		)
		if err != nil {
			return fmt.Errorf("insert sales order line: %w", err)
		}
	}
	return nil
}

const salesColumns = `id, code, customer_name, order_date, status, created_by, created_at, updated_at`

func scanSalesOrder(row pgx.Row) (*entity.SalesOrder, error) {
	var o entity.SalesOrder
	if err := row.Scan(&o.ID, &o.Code, &o.CustomerName, &o.OrderDate, &o.Status, &o.CreatedBy,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID obtiene la orden con sus líneas.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, `SELECT `+salesColumns+` FROM sales_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) y carga las líneas.
func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.get(ctx, `SELECT `+salesColumns+` FROM sales_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *SalesOrderRepo) get(ctx context.Context, query, id string) (*entity.SalesOrder, error) {
	o, err := scanSalesOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	if err := r.loadLines(ctx, map[string]*entity.SalesOrder{o.ID: o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List lista órdenes de venta, opcionalmente filtradas por estado.
func (r *SalesOrderRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.SalesOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+salesColumns+` FROM sales_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY order_date DESC, code LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	var list []*entity.SalesOrder
	byID := make(map[string]*entity.SalesOrder)
	for rows.Next() {
		o, err := scanSalesOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		list = append(list, o)
		byID[o.ID] = o
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, byID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *SalesOrderRepo) loadLines(ctx context.Context, byID map[string]*entity.SalesOrder) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sales_order_id, package_id, package_quantity, shipped_quantity
		FROM sales_order_lines WHERE sales_order_id = ANY($1::uuid[]) ORDER BY package_id`, ids)
	if err != nil {
		return fmt.Errorf("get sales order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SalesOrderLine
		if err := rows.Scan(&l.ID, &l.SalesOrderID, &l.PackageID, &l.PackageQuantity, &l.ShippedQuantity); err != nil {
			return fmt.Errorf("scan sales order line: %w", err)
		}
		if o, ok := byID[l.SalesOrderID]; ok {
			o.Lines = append(o.Lines, l)
		}
	}
	return rows.Err()
}

// UpdateLineShipped fija la cantidad despachada de una línea.
func (r *SalesOrderRepo) UpdateLineShipped(ctx context.Context, lineID string, shipped int64) error {
	_, err := r.q.Exec(ctx, `UPDATE sales_order_lines SET shipped_quantity = $2 WHERE id = $1`, lineID, shipped)
	if err != nil {
		if isCheckViolation(err) {
			return domain.Invalid("package_quantity", "el despacho supera lo pedido en la línea %s", lineID)
		}
		return fmt.Errorf("update shipped quantity: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado de la orden.
func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE sales_orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	return nil
}

// ListOpenDemandLines líneas de órdenes open/partial que todavía no tienen orden de compra vinculada.
func (r *SalesOrderRepo) ListOpenDemandLines(ctx context.Context) ([]entity.SalesOrderLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT l.id, l.sales_order_id, l.package_id, l.package_quantity, l.shipped_quantity
		FROM sales_order_lines l
		JOIN sales_orders so ON so.id = l.sales_order_id
		WHERE so.status IN ($1, $2)
		  AND NOT EXISTS (
		      SELECT 1 FROM procurement_order_sales_order pos WHERE pos.sales_order_id = so.id
		  )
		ORDER BY so.code, l.package_id`,
		entity.SalesStatusOpen, entity.SalesStatusPartial)
	if err != nil {
		return nil, fmt.Errorf("list open demand: %w", err)
	}
	defer rows.Close()
	var lines []entity.SalesOrderLine
	for rows.Next() {
		var l entity.SalesOrderLine
		if err := rows.Scan(&l.ID, &l.SalesOrderID, &l.PackageID, &l.PackageQuantity, &l.ShippedQuantity); err != nil {
			return nil, fmt.Errorf("scan open demand line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
