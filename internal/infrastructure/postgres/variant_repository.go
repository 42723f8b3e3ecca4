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

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de variantes. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, item_id, color, stock_initial, stock_current, created_at, updated_at`

func scanVariant(row pgx.Row) (*entity.Variant, error) {
	var v entity.Variant
	var color string
	if err := row.Scan(&v.ID, &v.ItemID, &color, &v.StockInitial, &v.StockCurrent, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	if color == "" {
		v.Kind = entity.DefaultVariant()
	} else {
		v.Kind = entity.ColoredVariant(color)
	}
	return &v, nil
}

func (r *VariantRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.Variant, error) {
	v, err := scanVariant(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	return r.getOne(ctx, "get variant",
		`SELECT `+variantColumns+` FROM item_variants WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la variante y bloquea la fila (SELECT FOR UPDATE).
func (r *VariantRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	return r.getOne(ctx, "get variant for update",
		`SELECT `+variantColumns+` FROM item_variants WHERE id = $1 FOR UPDATE`, id)
}

// GetDefault obtiene la variante por defecto (color vacío) del SKU.
func (r *VariantRepo) GetDefault(ctx context.Context, itemID string) (*entity.Variant, error) {
	return r.getOne(ctx, "get default variant",
		`SELECT `+variantColumns+` FROM item_variants WHERE item_id = $1 AND color = ''`, itemID)
}

// GetDefaultForUpdate obtiene la variante por defecto y bloquea la fila.
func (r *VariantRepo) GetDefaultForUpdate(ctx context.Context, itemID string) (*entity.Variant, error) {
	return r.getOne(ctx, "get default variant for update",
		`SELECT `+variantColumns+` FROM item_variants WHERE item_id = $1 AND color = '' FOR UPDATE`, itemID)
}

// CreateDefault inserta la variante por defecto con stock cero. ON CONFLICT evita abortar la tx
// cuando otra transacción ya la creó; en ese caso retorna domain.ErrDuplicate.
func (r *VariantRepo) CreateDefault(ctx context.Context, v *entity.Variant) error {
	query := `
		INSERT INTO item_variants (id, item_id, color, stock_initial, stock_current, created_at, updated_at)
		VALUES ($1, $2, '', 0, 0, $3, $4)
		ON CONFLICT (item_id, color) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query, v.ID, v.ItemID, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert default variant: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// ListByItem lista las variantes de un SKU, la por defecto primero.
func (r *VariantRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.Variant, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+variantColumns+` FROM item_variants WHERE item_id = $1 ORDER BY color`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Variant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// IncrementStock suma qty a stock_initial y stock_current.
func (r *VariantRepo) IncrementStock(ctx context.Context, variantID string, qty int64) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE item_variants
		SET stock_initial = stock_initial + $2, stock_current = stock_current + $2, updated_at = now()
		WHERE id = $1`, variantID, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("increment stock: variant %s: %w", variantID, domain.ErrNotFound)
	}
	return nil
}

// DecrementStock resta qty de stock_current solo si alcanza (UPDATE condicional).
func (r *VariantRepo) DecrementStock(ctx context.Context, variantID string, qty int64) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE item_variants
		SET stock_current = stock_current - $2, updated_at = now()
		WHERE id = $1 AND stock_current >= $2`, variantID, qty)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// SumStockByItem suma stock_current de todas las variantes de cada SKU.
func (r *VariantRepo) SumStockByItem(ctx context.Context) (map[string]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT item_id, COALESCE(SUM(stock_current), 0)::bigint FROM item_variants GROUP BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("sum stock: %w", err)
	}
	defer rows.Close()
	out := make(map[string]int64)
	for rows.Next() {
		var itemID string
		var total int64
		if err := rows.Scan(&itemID, &total); err != nil {
			return nil, fmt.Errorf("scan stock sum: %w", err)
		}
		out[itemID] = total
	}
	return out, rows.Err()
}
