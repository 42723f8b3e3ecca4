package inventory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/inventory"
)

func kit() *entity.Package {
	return &entity.Package{
		ID: "p1", Code: "KIT", Active: true,
		Lines: []entity.PackageItem{
			{ItemID: "a", Quantity: 1},
			{ItemID: "b", Quantity: 2},
		},
	}
}

func TestExpandPackage_Lineal(t *testing.T) {
	for _, n := range []int64{1, 2, 7, 1000} {
		lines, err := inventory.ExpandPackage(kit(), n)
		require.NoError(t, err)
		assert.Equal(t, []inventory.ItemQuantity{
			{ItemID: "a", Quantity: n},
			{ItemID: "b", Quantity: 2 * n},
		}, lines)
	}
}

func TestExpandPackage_Rechazos(t *testing.T) {
	inactive := kit()
	inactive.Active = false
	empty := kit()
	empty.Lines = nil

	cases := []struct {
		name  string
		pkg   *entity.Package
		n     int64
		field string
	}{
		{"paquete nil", nil, 1, "package_id"},
		{"multiplicador cero", kit(), 0, "package_quantity"},
		{"multiplicador negativo", kit(), -3, "package_quantity"},
		{"inactivo", inactive, 1, "package_id"},
		{"sin líneas", empty, 1, "package_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inventory.ExpandPackage(tc.pkg, tc.n)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			var rule *domain.RuleError
			require.True(t, errors.As(err, &rule))
			assert.Equal(t, tc.field, rule.Field)
		})
	}
}

func TestMergeByItem_SumaYConservaOrden(t *testing.T) {
	merged, err := inventory.MergeByItem([]inventory.ItemQuantity{
		{ItemID: "b", Quantity: 2},
		{ItemID: "a", Quantity: 1},
		{ItemID: "b", Quantity: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, []inventory.ItemQuantity{
		{ItemID: "b", Quantity: 7},
		{ItemID: "a", Quantity: 1},
	}, merged)
}

func TestExpandPackage_Desborde(t *testing.T) {
	for _, n := range []int64{1<<62 + 1, math.MaxInt64, inventory.MaxQuantity/2 + 1} {
		_, err := inventory.ExpandPackage(kit(), n)
		require.ErrorIs(t, err, domain.ErrInvalidInput, "n=%d", n)
		var rule *domain.RuleError
		require.True(t, errors.As(err, &rule))
		assert.Equal(t, "package_quantity", rule.Field)
	}

	lines, err := inventory.ExpandPackage(kit(), inventory.MaxQuantity/2)
	require.NoError(t, err)
	assert.Equal(t, inventory.MaxQuantity/2*2, lines[1].Quantity)
}

func TestScaleLines_DesbordeInt64(t *testing.T) {
	_, err := inventory.ScaleLines(kit().Lines, 1<<62+1)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	lines, err := inventory.ScaleLines(kit().Lines, 1<<61)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<62), lines[1].Quantity)
}

func TestMergeByItem_Tope(t *testing.T) {
	_, err := inventory.MergeByItem([]inventory.ItemQuantity{{ItemID: "a", Quantity: math.MaxInt64}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.MergeByItem([]inventory.ItemQuantity{
		{ItemID: "a", Quantity: inventory.MaxQuantity},
		{ItemID: "a", Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	merged, err := inventory.MergeByItem([]inventory.ItemQuantity{
		{ItemID: "a", Quantity: inventory.MaxQuantity - 1},
		{ItemID: "a", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, inventory.MaxQuantity, merged[0].Quantity)
}
