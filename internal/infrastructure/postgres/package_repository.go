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

var _ repository.PackageRepository = (*PackageRepo)(nil)

// PackageRepo persistencia de paquetes y su lista de materiales (package_items).
type PackageRepo struct {
	q Querier
}

// NewPackageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPackageRepository(q Querier) *PackageRepo {
	return &PackageRepo{q: q}
}

// Create persiste la cabecera y las líneas. Llamar dentro de una tx para que sea atómico.
func (r *PackageRepo) Create(ctx context.Context, pkg *entity.Package) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO packages (id, code, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		pkg.ID, pkg.Code, pkg.Name, pkg.Active, pkg.CreatedAt, pkg.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert package: %w", err)
	}
	for _, l := range pkg.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO package_items (id, package_id, item_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			l.ID, pkg.ID, l.ItemID, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert package item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un paquete con sus líneas.
func (r *PackageRepo) GetByID(ctx context.Context, id string) (*entity.Package, error) {
	var p entity.Package
	err := r.q.QueryRow(ctx, `
		SELECT id, code, name, active, created_at, updated_at
		FROM packages WHERE id = $1`, id,
	).Scan(&p.ID, &p.Code, &p.Name, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	byID := map[string]*entity.Package{p.ID: &p}
	if err := r.loadLines(ctx, byID); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDs carga varios paquetes con sus líneas.
func (r *PackageRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Package, error) {
	out := make(map[string]*entity.Package, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, code, name, active, created_at, updated_at
		FROM packages WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("get packages: %w", err)
	}
	for rows.Next() {
		var p entity.Package
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan package: %w", err)
		}
		out[p.ID] = &p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// List lista paquetes por código, con sus líneas.
func (r *PackageRepo) List(ctx context.Context, limit, offset int) ([]*entity.Package, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, code, name, active, created_at, updated_at
		FROM packages ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	var list []*entity.Package
	byID := make(map[string]*entity.Package)
	for rows.Next() {
		var p entity.Package
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan package: %w", err)
		}
		list = append(list, &p)
		byID[p.ID] = &p
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

func (r *PackageRepo) loadLines(ctx context.Context, byID map[string]*entity.Package) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, package_id, item_id, quantity
		FROM package_items WHERE package_id = ANY($1::uuid[]) ORDER BY item_id`, ids)
	if err != nil {
		return fmt.Errorf("get package items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PackageItem
		if err := rows.Scan(&l.ID, &l.PackageID, &l.ItemID, &l.Quantity); err != nil {
			return fmt.Errorf("scan package item: %w", err)
		}
		if p, ok := byID[l.PackageID]; ok {
			p.Lines = append(p.Lines, l)
		}
	}
	return rows.Err()
}
