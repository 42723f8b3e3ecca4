package procurement_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/procurement"
	"github.com/jhoicas/warehouse-api/internal/application/sales"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	domaininv "github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
)

var buyer = entity.Actor{ID: "buyer-1", Role: entity.RoleProcurement}

type fixture struct {
	ctx      context.Context
	db       *memory.DB
	orders   *procurement.OrderUseCase
	shortage *procurement.ShortageUseCase
	sales    *sales.OrderUseCase
	ledger   *inventory.LedgerUseCase
}

// newFixture: SKUs A y B, paquete KIT = 1A + 2B.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	log := zerolog.Nop()
	f := &fixture{
		ctx:      ctx,
		db:       db,
		orders:   procurement.NewOrderUseCase(db, db, log),
		shortage: procurement.NewShortageUseCase(db),
		sales:    sales.NewOrderUseCase(db, db, log),
		ledger:   inventory.NewLedgerUseCase(db, db, sales.NewFulfillmentTracker(log), log),
	}
	for _, id := range []string{"A", "B"} {
		require.NoError(t, db.Items().Create(ctx, &entity.Item{ID: id, Code: "SKU-" + id, Name: "SKU " + id}))
	}
	require.NoError(t, db.Packages().Create(ctx, &entity.Package{
		ID: "kit", Code: "KIT", Active: true,
		Lines: []entity.PackageItem{
			{ID: "kit-a", PackageID: "kit", ItemID: "A", Quantity: 1},
			{ID: "kit-b", PackageID: "kit", ItemID: "B", Quantity: 2},
		},
	}))
	return f
}

func (f *fixture) salesOrder(t *testing.T, kits int64) string {
	t.Helper()
	so, err := f.sales.Submit(f.ctx, buyer, dto.SubmitSalesOrderRequest{
		CustomerName: "Cliente", OrderDate: "2026-02-10",
		Lines: []dto.SalesOrderLineRequest{{PackageID: "kit", PackageQuantity: kits}},
	})
	require.NoError(t, err)
	return so.ID
}

func (f *fixture) draft(t *testing.T, itemID string, qty int64) *dto.ProcurementOrderResponse {
	t.Helper()
	order, err := f.orders.CreateDraft(f.ctx, buyer, dto.CreateProcurementDraftRequest{
		SkuLines:       []dto.ProcurementSkuLineRequest{{ItemID: itemID, Quantity: qty}},
		SourceOrderIDs: []string{f.salesOrder(t, 1)},
	})
	require.NoError(t, err)
	return order
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

func TestCreateDraft_FusionaLineasYOrigenes(t *testing.T) {
	f := newFixture(t)
	soID := f.salesOrder(t, 3)

	order, err := f.orders.CreateDraft(f.ctx, buyer, dto.CreateProcurementDraftRequest{
		PackageLines:   []dto.ProcurementPackageLineRequest{{PackageID: "kit", Quantity: 3}},
		SkuLines:       []dto.ProcurementSkuLineRequest{{ItemID: "B", Quantity: 4}, {ItemID: "B", Quantity: 2}},
		SourceOrderIDs: []string{soID, soID},
		Note:           "reposición",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ProcurementStatusDraft, order.Status)
	assert.Regexp(t, `^PO-\d{8}-`, order.Code)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, int64(6), order.Lines[0].OrderedQuantity)
	assert.Equal(t, int64(6), order.Lines[0].SuggestedQuantity)
	assert.Zero(t, order.Lines[0].ReceivedQuantity)
	assert.Equal(t, []string{soID}, order.SourceOrderIDs)
	assert.Len(t, order.PackageLines, 1)
}

func TestCreateDraft_Rechazos(t *testing.T) {
	f := newFixture(t)
	soID := f.salesOrder(t, 1)

	cases := []struct {
		name  string
		in    dto.CreateProcurementDraftRequest
		field string
	}{
		{"sin órdenes de origen", dto.CreateProcurementDraftRequest{
			SkuLines: []dto.ProcurementSkuLineRequest{{ItemID: "A", Quantity: 1}},
		}, "source_order_ids"},
		{"sin líneas", dto.CreateProcurementDraftRequest{SourceOrderIDs: []string{soID}}, "sku_lines"},
		{"SKU inexistente", dto.CreateProcurementDraftRequest{
			SkuLines:       []dto.ProcurementSkuLineRequest{{ItemID: "Z", Quantity: 1}},
			SourceOrderIDs: []string{soID},
		}, "sku_lines"},
		{"orden de venta inexistente", dto.CreateProcurementDraftRequest{
			SkuLines:       []dto.ProcurementSkuLineRequest{{ItemID: "A", Quantity: 1}},
			SourceOrderIDs: []string{"nope"},
		}, "source_order_ids"},
		{"SKU por encima del máximo", dto.CreateProcurementDraftRequest{
			SkuLines:       []dto.ProcurementSkuLineRequest{{ItemID: "A", Quantity: domaininv.MaxQuantity}, {ItemID: "A", Quantity: 1}},
			SourceOrderIDs: []string{soID},
		}, "sku_lines"},
		{"paquete inexistente", dto.CreateProcurementDraftRequest{
			PackageLines:   []dto.ProcurementPackageLineRequest{{PackageID: "nope", Quantity: 1}},
			SkuLines:       []dto.ProcurementSkuLineRequest{{ItemID: "A", Quantity: 1}},
			SourceOrderIDs: []string{soID},
		}, "package_lines"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.orders.CreateDraft(f.ctx, buyer, tc.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			var rule *domain.RuleError
			require.ErrorAs(t, err, &rule)
			assert.Equal(t, tc.field, rule.Field)
		})
	}

	list, err := f.orders.List(f.ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestAddLine_SumaONuevaLinea(t *testing.T) {
	f := newFixture(t)
	order := f.draft(t, "A", 5)

	out, err := f.orders.AddLine(f.ctx, buyer, order.ID, dto.AddProcurementLineRequest{ItemID: "A", Quantity: 3})
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, int64(8), out.Lines[0].OrderedQuantity)
	assert.Equal(t, int64(8), out.Lines[0].SuggestedQuantity)

	out, err = f.orders.AddLine(f.ctx, buyer, order.ID, dto.AddProcurementLineRequest{ItemID: "B", Quantity: 2})
	require.NoError(t, err)
	assert.Len(t, out.Lines, 2)

	_, err = f.orders.AddLine(f.ctx, buyer, order.ID, dto.AddProcurementLineRequest{ItemID: "Z", Quantity: 1})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.orders.AddLine(f.ctx, buyer, "nope", dto.AddProcurementLineRequest{ItemID: "A", Quantity: 1})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.orders.AddLine(f.ctx, buyer, order.ID, dto.AddProcurementLineRequest{ItemID: "A", Quantity: 1 << 62})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.orders.AddLine(f.ctx, buyer, order.ID, dto.AddProcurementLineRequest{ItemID: "A", Quantity: domaininv.MaxQuantity})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "8 ya pedidos + el máximo")

	got, err := f.orders.GetByID(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.Lines[0].OrderedQuantity)
}

func TestAddLineYDelete_SoloEnDraft(t *testing.T) {
	f := newFixture(t)
	order := f.draft(t, "A", 5)

	_, err := f.orders.ReceiveLines(f.ctx, buyer, order.ID, dto.ReceiveProcurementRequest{
		Lines: []dto.ReceiveProcurementLineRequest{{LineID: order.Lines[0].ID, ReceivedQuantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.orders.AddLine(f.ctx, buyer, order.ID, dto.AddProcurementLineRequest{ItemID: "B", Quantity: 1})
	require.ErrorIs(t, err, domain.ErrConflict)

	err = f.orders.DeleteDraft(f.ctx, buyer, order.ID)
	require.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.orders.GetByID(f.ctx, order.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestDeleteDraft(t *testing.T) {
	f := newFixture(t)
	order := f.draft(t, "A", 5)

	require.NoError(t, f.orders.DeleteDraft(f.ctx, buyer, order.ID))
	got, err := f.orders.GetByID(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.ErrorIs(t, f.orders.DeleteDraft(f.ctx, buyer, order.ID), domain.ErrNotFound)
}

func TestReceiveLines_AplicaSoloElAumento(t *testing.T) {
	f := newFixture(t)
	order := f.draft(t, "A", 10)
	lineID := order.Lines[0].ID
	receive := func(qty int64) (*dto.ProcurementOrderResponse, error) {
		return f.orders.ReceiveLines(f.ctx, buyer, order.ID, dto.ReceiveProcurementRequest{
			Lines: []dto.ReceiveProcurementLineRequest{{LineID: lineID, ReceivedQuantity: qty}},
		})
	}

	out, err := receive(4)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcurementStatusPartial, out.Status)
	assert.Equal(t, int64(4), f.stock(t, "A"))

	out, err = receive(10)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcurementStatusReceived, out.Status)
	assert.Equal(t, int64(10), f.stock(t, "A"), "solo suma la diferencia de 6")

	// bajar lo recibido corrige la línea y el estado pero no saca stock
	out, err = receive(0)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcurementStatusDraft, out.Status)
	assert.Zero(t, out.Lines[0].ReceivedQuantity)
	assert.Equal(t, int64(10), f.stock(t, "A"))
}

func TestReceiveLines_ValidaTodoAntesDeEscribir(t *testing.T) {
	f := newFixture(t)
	order := f.draft(t, "A", 5)
	out, err := f.orders.AddLine(f.ctx, buyer, order.ID, dto.AddProcurementLineRequest{ItemID: "B", Quantity: 2})
	require.NoError(t, err)
	lineA, lineB := out.Lines[0].ID, out.Lines[1].ID

	_, err = f.orders.ReceiveLines(f.ctx, buyer, order.ID, dto.ReceiveProcurementRequest{
		Lines: []dto.ReceiveProcurementLineRequest{
			{LineID: lineA, ReceivedQuantity: 5},
			{LineID: lineB, ReceivedQuantity: 3},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.stock(t, "A"))

	_, err = f.orders.ReceiveLines(f.ctx, buyer, order.ID, dto.ReceiveProcurementRequest{
		Lines: []dto.ReceiveProcurementLineRequest{
			{LineID: lineA, ReceivedQuantity: 1},
			{LineID: lineA, ReceivedQuantity: 2},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "línea repetida")

	_, err = f.orders.ReceiveLines(f.ctx, buyer, order.ID, dto.ReceiveProcurementRequest{
		Lines: []dto.ReceiveProcurementLineRequest{{LineID: "other", ReceivedQuantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.orders.GetByID(f.ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProcurementStatusDraft, got.Status)
}

func TestList_FiltraPorEstado(t *testing.T) {
	f := newFixture(t)
	f.draft(t, "A", 1)

	list, err := f.orders.List(f.ctx, entity.ProcurementStatusDraft, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	list, err = f.orders.List(f.ctx, entity.ProcurementStatusReceived, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	_, err = f.orders.List(f.ctx, "complete", dto.PageRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSuggest_FaltantePorSku(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.RecordStockIn(f.ctx, inventory.StockMovementInput{
		Actor: buyer, Mode: entity.TransactionModeAlacarte,
		Lines: []domaininv.ItemQuantity{{ItemID: "A", Quantity: 10}, {ItemID: "B", Quantity: 1}},
	})
	require.NoError(t, err)
	soID := f.salesOrder(t, 3)

	first, err := f.shortage.Suggest(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.ShortagePackageLine{{PackageID: "kit", Code: "KIT", Quantity: 3}}, first.PackageLines)
	assert.Equal(t, []dto.ShortageSkuLine{{ItemID: "B", Code: "SKU-B", Name: "SKU B", Demand: 6, Stock: 1, Shortage: 5}}, first.SkuLines)
	require.Len(t, first.SourceOrders, 1)
	assert.Equal(t, soID, first.SourceOrders[0].ID)

	second, err := f.shortage.Suggest(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second, "sin escrituras intermedias el resultado es el mismo")

	// una vez vinculada a una compra, la orden deja de aportar demanda
	_, err = f.orders.CreateDraft(f.ctx, buyer, dto.CreateProcurementDraftRequest{
		SkuLines:       []dto.ProcurementSkuLineRequest{{ItemID: "B", Quantity: 5}},
		SourceOrderIDs: []string{soID},
	})
	require.NoError(t, err)
	after, err := f.shortage.Suggest(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, after.SkuLines)
	assert.Empty(t, after.SourceOrders)
}
