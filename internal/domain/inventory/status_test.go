package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/inventory"
)

func poLine(ordered, received, rejected int64) entity.ProcurementOrderLine {
	return entity.ProcurementOrderLine{OrderedQuantity: ordered, ReceivedQuantity: received, RejectedQuantity: rejected}
}

func TestDeriveProcurementStatus_RecepcionDirecta(t *testing.T) {
	cases := []struct {
		name  string
		lines []entity.ProcurementOrderLine
		want  string
	}{
		{"nada recibido", []entity.ProcurementOrderLine{poLine(10, 0, 0)}, entity.ProcurementStatusDraft},
		{"parcial", []entity.ProcurementOrderLine{poLine(10, 4, 0)}, entity.ProcurementStatusPartial},
		{"completo", []entity.ProcurementOrderLine{poLine(10, 10, 0), poLine(5, 5, 0)}, entity.ProcurementStatusReceived},
		{"una línea sin empezar", []entity.ProcurementOrderLine{poLine(10, 10, 0), poLine(5, 0, 0)}, entity.ProcurementStatusDraft},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// la recepción directa puede bajar el estado incluso desde received
			got := inventory.DeriveProcurementStatus(tc.lines, entity.ProcurementStatusReceived, true)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDeriveProcurementStatus_CrnSoloPromueve(t *testing.T) {
	lines := []entity.ProcurementOrderLine{poLine(10, 0, 0)}
	assert.Equal(t, entity.ProcurementStatusPartial,
		inventory.DeriveProcurementStatus(lines, entity.ProcurementStatusPartial, false),
		"sin progreso no debe volver a draft")

	lines = []entity.ProcurementOrderLine{poLine(10, 3, 2)}
	assert.Equal(t, entity.ProcurementStatusPartial,
		inventory.DeriveProcurementStatus(lines, entity.ProcurementStatusDraft, false))

	lines = []entity.ProcurementOrderLine{poLine(10, 7, 3)}
	assert.Equal(t, entity.ProcurementStatusReceived,
		inventory.DeriveProcurementStatus(lines, entity.ProcurementStatusPartial, false),
		"rechazado cuenta para completar la línea")
}

func TestDeriveProcurementStatus_SinLineasConservaEstado(t *testing.T) {
	assert.Equal(t, entity.ProcurementStatusPartial,
		inventory.DeriveProcurementStatus(nil, entity.ProcurementStatusPartial, true))
}

func TestDeriveSalesOrderStatus(t *testing.T) {
	line := func(qty, shipped int64) entity.SalesOrderLine {
		return entity.SalesOrderLine{PackageQuantity: qty, ShippedQuantity: shipped}
	}
	assert.Equal(t, entity.SalesStatusOpen, inventory.DeriveSalesOrderStatus([]entity.SalesOrderLine{line(3, 0)}))
	assert.Equal(t, entity.SalesStatusPartial, inventory.DeriveSalesOrderStatus([]entity.SalesOrderLine{line(3, 1), line(2, 0)}))
	assert.Equal(t, entity.SalesStatusFulfilled, inventory.DeriveSalesOrderStatus([]entity.SalesOrderLine{line(3, 3), line(2, 2)}))
	assert.Equal(t, entity.SalesStatusOpen, inventory.DeriveSalesOrderStatus(nil))
}
