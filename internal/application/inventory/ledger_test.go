package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/sales"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	domaininv "github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
)

var keeper = entity.Actor{ID: "keeper-1", Role: entity.RoleStoreKeeper}

type fixture struct {
	ctx    context.Context
	db     *memory.DB
	ledger *inventory.LedgerUseCase
}

// newFixture arma un libro sobre la base en memoria con dos SKUs (A, B) y el paquete KIT = 1A + 2B.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	log := zerolog.Nop()
	f := &fixture{
		ctx:    ctx,
		db:     db,
		ledger: inventory.NewLedgerUseCase(db, db, sales.NewFulfillmentTracker(log), log),
	}
	for _, id := range []string{"A", "B"} {
		require.NoError(t, db.Items().Create(ctx, &entity.Item{ID: id, Code: "SKU-" + id, Name: "SKU " + id}))
	}
	require.NoError(t, db.Packages().Create(ctx, &entity.Package{
		ID: "kit", Code: "KIT", Name: "Kit", Active: true,
		Lines: []entity.PackageItem{
			{ID: "kit-a", PackageID: "kit", ItemID: "A", Quantity: 1},
			{ID: "kit-b", PackageID: "kit", ItemID: "B", Quantity: 2},
		},
	}))
	return f
}

func (f *fixture) stock(t *testing.T, itemID string) int64 {
	t.Helper()
	v, err := f.db.Variants().GetDefault(f.ctx, itemID)
	require.NoError(t, err)
	if v == nil {
		return 0
	}
	return v.StockCurrent
}

func (f *fixture) countTransactions(t *testing.T) int {
	t.Helper()
	list, err := f.db.Transactions().List(f.ctx, 100, 0)
	require.NoError(t, err)
	return len(list)
}

func alacarte(lines ...domaininv.ItemQuantity) inventory.StockMovementInput {
	return inventory.StockMovementInput{Actor: keeper, Mode: entity.TransactionModeAlacarte, Lines: lines}
}

func TestRecordStockIn_PaqueteExpandeLineas(t *testing.T) {
	f := newFixture(t)

	out, err := f.ledger.RecordStockIn(f.ctx, inventory.StockMovementInput{
		Actor: keeper, Mode: entity.TransactionModePackage, PackageID: "kit", PackageQuantity: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypeIn, out.Type)
	assert.Equal(t, entity.TransactionModePackage, out.Mode)
	require.NotNil(t, out.PackageID)
	assert.Equal(t, "kit", *out.PackageID)
	assert.Len(t, out.Lines, 2)
	assert.Equal(t, keeper.ID, out.CreatedBy)

	assert.Equal(t, int64(3), f.stock(t, "A"))
	assert.Equal(t, int64(6), f.stock(t, "B"))

	v, err := f.db.Variants().GetDefault(f.ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, v.StockCurrent, v.StockInitial, "una entrada suma a inicial y actual")
}

func TestRecordStockIn_AlacarteFusionaSkusRepetidos(t *testing.T) {
	f := newFixture(t)

	out, err := f.ledger.RecordStockIn(f.ctx, alacarte(
		domaininv.ItemQuantity{ItemID: "A", Quantity: 2},
		domaininv.ItemQuantity{ItemID: "A", Quantity: 3},
	))
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, int64(5), out.Lines[0].Quantity)
	assert.Equal(t, int64(5), f.stock(t, "A"))
}

func TestRecordStockIn_Rechazos(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Packages().Create(f.ctx, &entity.Package{
		ID: "old", Code: "OLD", Active: false,
		Lines: []entity.PackageItem{{ID: "old-a", PackageID: "old", ItemID: "A", Quantity: 1}},
	}))

	cases := []struct {
		name  string
		in    inventory.StockMovementInput
		field string
	}{
		{"modo desconocido", inventory.StockMovementInput{Actor: keeper, Mode: "bulk"}, "mode"},
		{"paquete sin id", inventory.StockMovementInput{Actor: keeper, Mode: entity.TransactionModePackage, PackageQuantity: 1}, "package_id"},
		{"paquete inactivo", inventory.StockMovementInput{Actor: keeper, Mode: entity.TransactionModePackage, PackageID: "old", PackageQuantity: 1}, "package_id"},
		{"cantidad de paquetes cero", inventory.StockMovementInput{Actor: keeper, Mode: entity.TransactionModePackage, PackageID: "kit"}, "package_quantity"},
		{"sin líneas", alacarte(), "lines"},
		{"cantidad negativa", alacarte(domaininv.ItemQuantity{ItemID: "A", Quantity: -1}), "lines"},
		{"SKU inexistente", alacarte(domaininv.ItemQuantity{ItemID: "Z", Quantity: 1}), "lines"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledger.RecordStockIn(f.ctx, tc.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var rule *domain.RuleError
			require.ErrorAs(t, err, &rule)
			assert.Equal(t, tc.field, rule.Field)
		})
	}
	assert.Zero(t, f.countTransactions(t), "ninguna entrada rechazada deja auditoría")
}

func TestMovimientos_CantidadesQueDesbordanSeRechazan(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Packages().Create(f.ctx, &entity.Package{
		ID: "pb", Code: "PB", Active: true,
		Lines: []entity.PackageItem{{ID: "pb-b", PackageID: "pb", ItemID: "B", Quantity: 2}},
	}))
	_, err := f.ledger.RecordStockIn(f.ctx, alacarte(domaininv.ItemQuantity{ItemID: "B", Quantity: 5}))
	require.NoError(t, err)

	_, err = f.ledger.RecordStockOut(f.ctx, inventory.StockMovementInput{
		Actor: keeper, Mode: entity.TransactionModePackage, PackageID: "pb", PackageQuantity: 1<<62 + 1,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var rule *domain.RuleError
	require.ErrorAs(t, err, &rule)
	assert.Equal(t, "package_quantity", rule.Field)
	assert.Equal(t, int64(5), f.stock(t, "B"), "el stock no puede quedar negativo")

	_, err = f.ledger.RecordStockIn(f.ctx, alacarte(domaininv.ItemQuantity{ItemID: "A", Quantity: 1<<63 - 1}))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ledger.RecordStockIn(f.ctx, alacarte(
		domaininv.ItemQuantity{ItemID: "A", Quantity: domaininv.MaxQuantity},
		domaininv.ItemQuantity{ItemID: "A", Quantity: domaininv.MaxQuantity},
	))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Zero(t, f.stock(t, "A"))
	assert.Equal(t, 1, f.countTransactions(t), "solo queda la entrada inicial de B")
}

func TestRecordStockOut_InsuficienteNoAplicaNada(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.RecordStockIn(f.ctx, alacarte(
		domaininv.ItemQuantity{ItemID: "A", Quantity: 5},
		domaininv.ItemQuantity{ItemID: "B", Quantity: 1},
	))
	require.NoError(t, err)

	_, err = f.ledger.RecordStockOut(f.ctx, alacarte(
		domaininv.ItemQuantity{ItemID: "A", Quantity: 2},
		domaininv.ItemQuantity{ItemID: "B", Quantity: 3},
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "SKU-B")

	assert.Equal(t, int64(5), f.stock(t, "A"), "A no debe descontarse si B no alcanza")
	assert.Equal(t, int64(1), f.stock(t, "B"))
	assert.Equal(t, 1, f.countTransactions(t))
}

func TestRecordStockOut_SinVarianteEsInsuficiente(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.RecordStockOut(f.ctx, alacarte(domaininv.ItemQuantity{ItemID: "A", Quantity: 1}))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	v, err := f.db.Variants().GetDefault(f.ctx, "A")
	require.NoError(t, err)
	assert.Nil(t, v, "una salida nunca crea variantes")
}

func TestRecordStockOut_ExactoDejaCero(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.RecordStockIn(f.ctx, alacarte(domaininv.ItemQuantity{ItemID: "A", Quantity: 4}))
	require.NoError(t, err)

	out, err := f.ledger.RecordStockOut(f.ctx, alacarte(domaininv.ItemQuantity{ItemID: "A", Quantity: 4}))
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionTypeOut, out.Type)
	assert.Zero(t, f.stock(t, "A"))

	v, err := f.db.Variants().GetDefault(f.ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, int64(4), v.StockInitial, "la salida no toca stock_initial")
}

func TestRecordStockOut_DespachaOrdenDeVenta(t *testing.T) {
	f := newFixture(t)
	salesUC := sales.NewOrderUseCase(f.db, f.db, zerolog.Nop())
	so, err := salesUC.Submit(f.ctx, keeper, dto.SubmitSalesOrderRequest{
		CustomerName: "Cliente", OrderDate: "2026-03-01",
		Lines: []dto.SalesOrderLineRequest{{PackageID: "kit", PackageQuantity: 3}},
	})
	require.NoError(t, err)

	_, err = f.ledger.RecordStockIn(f.ctx, inventory.StockMovementInput{
		Actor: keeper, Mode: entity.TransactionModePackage, PackageID: "kit", PackageQuantity: 5,
	})
	require.NoError(t, err)

	ship := func(qty int64) error {
		_, err := f.ledger.RecordStockOut(f.ctx, inventory.StockMovementInput{
			Actor: keeper, Mode: entity.TransactionModePackage, PackageID: "kit", PackageQuantity: qty,
			SalesOrderID: so.ID,
		})
		return err
	}

	require.NoError(t, ship(2))
	got, err := salesUC.GetByID(f.ctx, so.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesStatusPartial, got.Status)
	assert.Equal(t, int64(2), got.Lines[0].ShippedQuantity)

	require.NoError(t, ship(1))
	got, err = salesUC.GetByID(f.ctx, so.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesStatusFulfilled, got.Status)

	err = ship(1)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "despachar más de lo pedido se rechaza")
	assert.Equal(t, int64(2), f.stock(t, "A"), "el rechazo revierte también la salida de stock")
	assert.Equal(t, int64(4), f.stock(t, "B"))
}

func TestRecordStockOut_OrdenDeVentaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.RecordStockIn(f.ctx, alacarte(domaininv.ItemQuantity{ItemID: "A", Quantity: 2}))
	require.NoError(t, err)

	in := alacarte(domaininv.ItemQuantity{ItemID: "A", Quantity: 1})
	in.SalesOrderID = "nope"
	_, err = f.ledger.RecordStockOut(f.ctx, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(2), f.stock(t, "A"))
}

func TestGetTransaction_YListado(t *testing.T) {
	f := newFixture(t)
	created, err := f.ledger.RecordStockIn(f.ctx, alacarte(domaininv.ItemQuantity{ItemID: "A", Quantity: 1}))
	require.NoError(t, err)

	got, err := f.ledger.GetTransaction(f.ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Len(t, got.Lines, 1)

	missing, err := f.ledger.GetTransaction(f.ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := f.ledger.ListTransactions(f.ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)
}

func TestStockInFromRequest_MapeaElBody(t *testing.T) {
	f := newFixture(t)
	out, err := f.ledger.StockInFromRequest(f.ctx, keeper, dto.StockMovementRequest{
		Mode:  entity.TransactionModeAlacarte,
		Lines: []dto.StockLineRequest{{ItemID: "B", Quantity: 7}},
		Note:  "conteo inicial",
	})
	require.NoError(t, err)
	assert.Equal(t, "conteo inicial", out.Note)
	assert.Equal(t, int64(7), f.stock(t, "B"))
}
