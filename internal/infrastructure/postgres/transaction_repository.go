package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo persistencia del libro de auditoría (inventory_transactions + líneas). Solo inserción.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta la cabecera y sus líneas.
func (r *TransactionRepo) Create(ctx context.Context, txn *entity.InventoryTransaction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_transactions (id, type, mode, package_id, package_quantity, sales_order_id, created_by, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		txn.ID, txn.Type, txn.Mode, nullString(txn.PackageID), txn.PackageQuantity,
		nullString(txn.SalesOrderID), txn.CreatedBy, txn.Note, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	for _, l := range txn.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO inventory_transaction_lines (id, transaction_id, item_id, variant_id, quantity)
			VALUES ($1, $2, $3, $4, $5)`,
			l.ID, txn.ID, l.ItemID, l.VariantID, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert inventory transaction line: %w", err)
		}
	}
	return nil
}

const transactionColumns = `id, type, mode, package_id::text, package_quantity, sales_order_id::text, created_by, note, created_at`

func scanTransaction(row pgx.Row) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	if err := row.Scan(&t.ID, &t.Type, &t.Mode, &t.PackageID, &t.PackageQuantity,
		&t.SalesOrderID, &t.CreatedBy, &t.Note, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID obtiene una transacción con sus líneas.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM inventory_transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory transaction: %w", err)
	}
	if err := r.loadLines(ctx, map[string]*entity.InventoryTransaction{t.ID: t}); err != nil {
		return nil, err
	}
	return t, nil
}

// List lista transacciones de la más reciente a la más antigua.
func (r *TransactionRepo) List(ctx context.Context, limit, offset int) ([]*entity.InventoryTransaction, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+transactionColumns+` FROM inventory_transactions ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	var list []*entity.InventoryTransaction
	byID := make(map[string]*entity.InventoryTransaction)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, t)
		byID[t.ID] = t
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

func (r *TransactionRepo) loadLines(ctx context.Context, byID map[string]*entity.InventoryTransaction) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, transaction_id, item_id, variant_id, quantity
		FROM inventory_transaction_lines WHERE transaction_id = ANY($1::uuid[]) ORDER BY item_id`, ids)
	if err != nil {
		return fmt.Errorf("get inventory transaction lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.InventoryTransactionLine
		if err := rows.Scan(&l.ID, &l.TransactionID, &l.ItemID, &l.VariantID, &l.Quantity); err != nil {
			return fmt.Errorf("scan inventory transaction line: %w", err)
		}
		if t, ok := byID[l.TransactionID]; ok {
			t.Lines = append(t.Lines, l)
		}
	}
	return rows.Err()
}
