package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.CrnRepository = (*CrnRepo)(nil)

// CrnRepo persistencia de notas de recepción (contena_receiving_notes + crn_items).
type CrnRepo struct {
	q Querier
}

// NewCrnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCrnRepository(q Querier) *CrnRepo {
	return &CrnRepo{q: q}
}

// Create persiste la cabecera y sus líneas.
func (r *CrnRepo) Create(ctx context.Context, c *entity.ContenaReceivingNote) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO contena_receiving_notes (id, number, status, procurement_order_id, note, created_by, transferred_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Number, c.Status, nullString(c.ProcurementOrderID), c.Note, c.CreatedBy,
		c.TransferredAt, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert crn: %w", err)
	}
	for _, it := range c.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO crn_items (id, crn_id, item_variant_id, item_id, expected_qty, received_qty, rejected_qty, rejection_reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, c.ID, it.VariantID, it.ItemID, it.ExpectedQty, it.ReceivedQty, it.RejectedQty, it.RejectionReason,
		)
		if err != nil {
			return fmt.Errorf("insert crn item: %w", err)
		}
	}
	return nil
}

const crnColumns = `id, number, status, procurement_order_id::text, note, created_by, transferred_at, created_at, updated_at`

func scanCrn(row pgx.Row) (*entity.ContenaReceivingNote, error) {
	var c entity.ContenaReceivingNote
	if err := row.Scan(&c.ID, &c.Number, &c.Status, &c.ProcurementOrderID, &c.Note, &c.CreatedBy,
		&c.TransferredAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID obtiene la CRN con sus líneas.
func (r *CrnRepo) GetByID(ctx context.Context, id string) (*entity.ContenaReceivingNote, error) {
	return r.get(ctx, `SELECT `+crnColumns+` FROM contena_receiving_notes WHERE id = $1`, id)
}

// GetForUpdate bloquea la CRN para que dos transferencias concurrentes no se apliquen dos veces.
func (r *CrnRepo) GetForUpdate(ctx context.Context, id string) (*entity.ContenaReceivingNote, error) {
	return r.get(ctx, `SELECT `+crnColumns+` FROM contena_receiving_notes WHERE id = $1 FOR UPDATE`, id)
}

func (r *CrnRepo) get(ctx context.Context, query, id string) (*entity.ContenaReceivingNote, error) {
	c, err := scanCrn(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crn: %w", err)
	}
	if err := r.loadItems(ctx, map[string]*entity.ContenaReceivingNote{c.ID: c}); err != nil {
		return nil, err
	}
	return c, nil
}

// List lista CRN de la más reciente a la más antigua.
func (r *CrnRepo) List(ctx context.Context, limit, offset int) ([]*entity.ContenaReceivingNote, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+crnColumns+` FROM contena_receiving_notes ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list crn: %w", err)
	}
	var list []*entity.ContenaReceivingNote
	byID := make(map[string]*entity.ContenaReceivingNote)
	for rows.Next() {
		c, err := scanCrn(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan crn: %w", err)
		}
		list = append(list, c)
		byID[c.ID] = c
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, byID); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CrnRepo) loadItems(ctx context.Context, byID map[string]*entity.ContenaReceivingNote) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, crn_id, item_variant_id, item_id, expected_qty, received_qty, rejected_qty, rejection_reason
		FROM crn_items WHERE crn_id = ANY($1::uuid[]) ORDER BY item_id`, ids)
	if err != nil {
		return fmt.Errorf("get crn items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.CrnItem
		if err := rows.Scan(&it.ID, &it.CrnID, &it.VariantID, &it.ItemID, &it.ExpectedQty,
			&it.ReceivedQty, &it.RejectedQty, &it.RejectionReason); err != nil {
			return fmt.Errorf("scan crn item: %w", err)
		}
		if c, ok := byID[it.CrnID]; ok {
			c.Items = append(c.Items, it)
		}
	}
	return rows.Err()
}

// MarkTransferred pasa la CRN a transferred. Solo actualiza si sigue en draft.
func (r *CrnRepo) MarkTransferred(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE contena_receiving_notes SET status = $2, transferred_at = $3, updated_at = $3
		WHERE id = $1 AND status = $4`,
		id, entity.CrnStatusTransferred, at, entity.CrnStatusDraft)
	if err != nil {
		return fmt.Errorf("mark crn transferred: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Conflict("status", "la CRN %s ya fue transferida", id)
	}
	return nil
}
