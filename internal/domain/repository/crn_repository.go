package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// CrnRepository define el puerto de persistencia para notas de recepción.
type CrnRepository interface {
	Create(ctx context.Context, crn *entity.ContenaReceivingNote) error
	GetByID(ctx context.Context, id string) (*entity.ContenaReceivingNote, error)
	GetForUpdate(ctx context.Context, id string) (*entity.ContenaReceivingNote, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ContenaReceivingNote, error)
	MarkTransferred(ctx context.Context, id string, at time.Time) error
}
