package receiving_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/receiving"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
)

var keeper = entity.Actor{ID: "keeper-1", Role: entity.RoleStoreKeeper}

type fixture struct {
	ctx context.Context
	db  *memory.DB
	crn *receiving.CrnUseCase
}

// newFixture: SKUs A y B, una variante roja de A y la orden de compra "po-1" (10 A, 4 B) en draft.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	f := &fixture{ctx: ctx, db: db, crn: receiving.NewCrnUseCase(db, db, zerolog.Nop())}

	for _, id := range []string{"A", "B"} {
		require.NoError(t, db.Items().Create(ctx, &entity.Item{ID: id, Code: "SKU-" + id, Name: "SKU " + id}))
	}
	db.PutVariant(&entity.Variant{ID: "a-red", ItemID: "A", Kind: entity.ColoredVariant("rojo")})
	require.NoError(t, db.ProcurementOrders().Create(ctx, &entity.ProcurementOrder{
		ID: "po-1", Code: "PO-20260101-000001", Status: entity.ProcurementStatusDraft,
		Lines: []entity.ProcurementOrderLine{
			{ID: "l-a", OrderID: "po-1", ItemID: "A", SuggestedQuantity: 10, OrderedQuantity: 10},
			{ID: "l-b", OrderID: "po-1", ItemID: "B", SuggestedQuantity: 4, OrderedQuantity: 4},
		},
		CreatedAt: time.Now(),
	}))
	return f
}

func (f *fixture) defaultStock(t *testing.T, itemID string) int64 {
	t.Helper()
	v, err := f.db.Variants().GetDefault(f.ctx, itemID)
	require.NoError(t, err)
	if v == nil {
		return 0
	}
	return v.StockCurrent
}

func (f *fixture) variantStock(t *testing.T, id string) int64 {
	t.Helper()
	v, err := f.db.Variants().GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, v)
	return v.StockCurrent
}

func (f *fixture) order(t *testing.T) *entity.ProcurementOrder {
	t.Helper()
	o, err := f.db.ProcurementOrders().GetByID(f.ctx, "po-1")
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

func receiveReq(lines ...dto.CrnReceiveLineRequest) dto.CrnReceiveProcurementRequest {
	return dto.CrnReceiveProcurementRequest{Lines: lines}
}

func TestReceiveProcurement_RecibidoYRechazado(t *testing.T) {
	f := newFixture(t)

	out, err := f.crn.ReceiveProcurement(f.ctx, keeper, "po-1", receiveReq(
		dto.CrnReceiveLineRequest{LineID: "l-a", ReceivedQty: 6, RejectedQty: 2, Reason: "cajas golpeadas"},
	))
	require.NoError(t, err)

	assert.Equal(t, entity.CrnStatusTransferred, out.Status)
	assert.NotNil(t, out.TransferredAt)
	require.NotNil(t, out.ProcurementOrderID)
	assert.Equal(t, "po-1", *out.ProcurementOrderID)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(10), out.Items[0].ExpectedQty)
	assert.Equal(t, "cajas golpeadas", out.Items[0].RejectionReason)

	assert.Equal(t, int64(6), f.defaultStock(t, "A"), "lo rechazado no entra al stock")
	o := f.order(t)
	assert.Equal(t, entity.ProcurementStatusPartial, o.Status)
	assert.Equal(t, int64(6), o.Lines[0].ReceivedQuantity)
	assert.Equal(t, int64(2), o.Lines[0].RejectedQuantity)
}

func TestReceiveProcurement_NoSuperaLoPendiente(t *testing.T) {
	f := newFixture(t)
	_, err := f.crn.ReceiveProcurement(f.ctx, keeper, "po-1", receiveReq(
		dto.CrnReceiveLineRequest{LineID: "l-a", ReceivedQty: 6, RejectedQty: 2},
	))
	require.NoError(t, err)

	_, err = f.crn.ReceiveProcurement(f.ctx, keeper, "po-1", receiveReq(
		dto.CrnReceiveLineRequest{LineID: "l-b", ReceivedQty: 4},
		dto.CrnReceiveLineRequest{LineID: "l-a", ReceivedQty: 3},
	))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, f.defaultStock(t, "B"), "si una línea falla no se aplica ninguna")

	out, err := f.crn.ReceiveProcurement(f.ctx, keeper, "po-1", receiveReq(
		dto.CrnReceiveLineRequest{LineID: "l-b", ReceivedQty: 4},
		dto.CrnReceiveLineRequest{LineID: "l-a", ReceivedQty: 2},
	))
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "A", out.Items[0].ItemID, "las líneas se aplican en orden de item_id")
	assert.Equal(t, "B", out.Items[1].ItemID)
	assert.Equal(t, entity.ProcurementStatusReceived, f.order(t).Status)
	assert.Equal(t, int64(8), f.defaultStock(t, "A"))
	assert.Equal(t, int64(4), f.defaultStock(t, "B"))
}

func TestReceiveProcurement_Rechazos(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name    string
		orderID string
		req     dto.CrnReceiveProcurementRequest
		kind    error
	}{
		{"orden inexistente", "nope", receiveReq(dto.CrnReceiveLineRequest{LineID: "l-a", ReceivedQty: 1}), domain.ErrNotFound},
		{"línea ajena", "po-1", receiveReq(dto.CrnReceiveLineRequest{LineID: "x", ReceivedQty: 1}), domain.ErrInvalidInput},
		{"todo en cero", "po-1", receiveReq(dto.CrnReceiveLineRequest{LineID: "l-a"}), domain.ErrInvalidInput},
		{"suma que desborda", "po-1", receiveReq(dto.CrnReceiveLineRequest{LineID: "l-a", ReceivedQty: math.MaxInt64, RejectedQty: 2}), domain.ErrInvalidInput},
		{"línea repetida", "po-1", receiveReq(
			dto.CrnReceiveLineRequest{LineID: "l-a", ReceivedQty: 1},
			dto.CrnReceiveLineRequest{LineID: "l-a", ReceivedQty: 1},
		), domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.crn.ReceiveProcurement(f.ctx, keeper, tc.orderID, tc.req)
			require.ErrorIs(t, err, tc.kind)
		})
	}

	list, err := f.crn.List(f.ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, entity.ProcurementStatusDraft, f.order(t).Status)
}

func TestReceiveProcurement_LineaEnCeroSeOmite(t *testing.T) {
	f := newFixture(t)
	out, err := f.crn.ReceiveProcurement(f.ctx, keeper, "po-1", receiveReq(
		dto.CrnReceiveLineRequest{LineID: "l-a", ReceivedQty: 1},
		dto.CrnReceiveLineRequest{LineID: "l-b"},
	))
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
}

func TestSafeProcurementLine(t *testing.T) {
	f := newFixture(t)
	_, err := f.crn.ReceiveProcurement(f.ctx, keeper, "po-1", receiveReq(
		dto.CrnReceiveLineRequest{LineID: "l-a", ReceivedQty: 3, RejectedQty: 1},
	))
	require.NoError(t, err)

	out, err := f.crn.SafeProcurementLine(f.ctx, keeper, "po-1", "l-a")
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(6), out.Items[0].ReceivedQty)
	assert.Zero(t, out.Items[0].RejectedQty)
	assert.Equal(t, int64(9), f.defaultStock(t, "A"))

	_, err = f.crn.SafeProcurementLine(f.ctx, keeper, "po-1", "l-a")
	require.ErrorIs(t, err, domain.ErrInvalidInput, "línea completa")

	_, err = f.crn.SafeProcurementLine(f.ctx, keeper, "po-1", "x")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateYTransfer_CrnManual(t *testing.T) {
	f := newFixture(t)

	created, err := f.crn.Create(f.ctx, keeper, dto.CreateCrnRequest{
		Items: []dto.CrnItemRequest{{ItemVariantID: "a-red", ExpectedQty: 5, ReceivedQty: 4, RejectedQty: 1, RejectionReason: "tono distinto"}},
		Note:  "devolución de cliente",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CrnStatusDraft, created.Status)
	assert.Nil(t, created.TransferredAt)
	assert.Zero(t, f.variantStock(t, "a-red"), "una CRN en draft no mueve stock")

	transferred, err := f.crn.Transfer(f.ctx, keeper, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CrnStatusTransferred, transferred.Status)
	assert.NotNil(t, transferred.TransferredAt)
	assert.Equal(t, int64(4), f.variantStock(t, "a-red"))

	_, err = f.crn.Transfer(f.ctx, keeper, created.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(4), f.variantStock(t, "a-red"), "la segunda transferencia no suma")

	_, err = f.crn.Transfer(f.ctx, keeper, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransfer_AvanzaLaOrdenDeCompra(t *testing.T) {
	f := newFixture(t)

	created, err := f.crn.Create(f.ctx, keeper, dto.CreateCrnRequest{
		ProcurementOrderID: "po-1",
		Items:              []dto.CrnItemRequest{{ItemVariantID: "a-red", ExpectedQty: 10, ReceivedQty: 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProcurementStatusDraft, f.order(t).Status)

	_, err = f.crn.Transfer(f.ctx, keeper, created.ID)
	require.NoError(t, err)
	o := f.order(t)
	assert.Equal(t, entity.ProcurementStatusPartial, o.Status)
	assert.Equal(t, int64(4), o.Lines[0].ReceivedQuantity)
}

func TestTransfer_CrnManualCompletaLaOrden(t *testing.T) {
	f := newFixture(t)
	f.db.PutVariant(&entity.Variant{ID: "a-def", ItemID: "A", Kind: entity.DefaultVariant()})
	f.db.PutVariant(&entity.Variant{ID: "b-def", ItemID: "B", Kind: entity.DefaultVariant()})

	created, err := f.crn.Create(f.ctx, keeper, dto.CreateCrnRequest{
		ProcurementOrderID: "po-1",
		Items: []dto.CrnItemRequest{
			{ItemVariantID: "b-def", ExpectedQty: 4, ReceivedQty: 4},
			{ItemVariantID: "a-def", ExpectedQty: 10, ReceivedQty: 8, RejectedQty: 2, RejectionReason: "humedad"},
		},
	})
	require.NoError(t, err)

	out, err := f.crn.Transfer(f.ctx, keeper, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CrnStatusTransferred, out.Status)

	v, err := f.db.Variants().GetByID(f.ctx, "a-def")
	require.NoError(t, err)
	assert.Equal(t, int64(8), v.StockInitial)
	assert.Equal(t, int64(8), v.StockCurrent)
	assert.Equal(t, int64(4), f.variantStock(t, "b-def"))

	o := f.order(t)
	assert.Equal(t, entity.ProcurementStatusReceived, o.Status)
	assert.Equal(t, int64(8), o.Lines[0].ReceivedQuantity)
	assert.Equal(t, int64(2), o.Lines[0].RejectedQuantity)
	assert.Equal(t, int64(4), o.Lines[1].ReceivedQuantity)

	got, err := f.crn.GetByID(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CrnStatusTransferred, got.Status)
}

func TestTransfer_SuperaLaOrdenRevierteTodo(t *testing.T) {
	f := newFixture(t)
	over, err := f.crn.Create(f.ctx, keeper, dto.CreateCrnRequest{
		ProcurementOrderID: "po-1",
		Items:              []dto.CrnItemRequest{{ItemVariantID: "a-red", ReceivedQty: 9, RejectedQty: 2}},
	})
	require.NoError(t, err)

	_, err = f.crn.Transfer(f.ctx, keeper, over.ID)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.crn.GetByID(f.ctx, over.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CrnStatusDraft, got.Status)
	assert.Zero(t, f.variantStock(t, "a-red"))
	assert.Zero(t, f.order(t).Lines[0].ReceivedQuantity)
}

func TestCreate_Rechazos(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name string
		in   dto.CreateCrnRequest
	}{
		{"sin líneas", dto.CreateCrnRequest{}},
		{"variante inexistente", dto.CreateCrnRequest{Items: []dto.CrnItemRequest{{ItemVariantID: "x", ReceivedQty: 1}}}},
		{"orden inexistente", dto.CreateCrnRequest{ProcurementOrderID: "nope", Items: []dto.CrnItemRequest{{ItemVariantID: "a-red", ReceivedQty: 1}}}},
		{"línea vacía", dto.CreateCrnRequest{Items: []dto.CrnItemRequest{{ItemVariantID: "a-red", ExpectedQty: 3}}}},
		{"cantidad desmedida", dto.CreateCrnRequest{Items: []dto.CrnItemRequest{{ItemVariantID: "a-red", ReceivedQty: 1 << 62}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.crn.Create(f.ctx, keeper, tc.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
