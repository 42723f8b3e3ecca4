package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

func TestPosting_CantidadNoPositivaFalla(t *testing.T) {
	f := newFixture(t)
	item, err := f.db.Items().GetByID(f.ctx, "A")
	require.NoError(t, err)

	in := inventory.NewPosting(f.db, entity.TransactionTypeIn, entity.TransactionModeAlacarte, keeper, "")
	for _, qty := range []int64{0, -4} {
		require.ErrorIs(t, in.InDefault(f.ctx, item, qty), domain.ErrInvalidInput)
	}
	saved, err := in.Save(f.ctx)
	require.NoError(t, err)
	assert.False(t, saved, "sin líneas no se persiste la cabecera")

	v, err := f.db.Variants().GetDefault(f.ctx, "A")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Zero(t, v.StockCurrent)

	out := inventory.NewPosting(f.db, entity.TransactionTypeOut, entity.TransactionModeAlacarte, keeper, "")
	require.ErrorIs(t, out.Out(f.ctx, v, 0), domain.ErrInvalidInput)
	assert.Empty(t, out.Transaction().Lines)
	assert.Zero(t, f.countTransactions(t))
}
