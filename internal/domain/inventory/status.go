package inventory

import "github.com/jhoicas/warehouse-api/internal/domain/entity"

var procurementRank = map[string]int{
	entity.ProcurementStatusDraft:    0,
	entity.ProcurementStatusPartial:  1,
	entity.ProcurementStatusReceived: 2,
}

// DeriveProcurementStatus recalcula el estado de una orden de compra a partir de sus líneas.
//
// Con allowDemote (recepción directa): cualquier línea con recibido = 0 y ordenado > 0 deja la
// orden en draft; si todas cumplen recibido+rechazado >= ordenado pasa a received; si no, partial.
//
// Sin allowDemote (recepciones vía CRN): solo promueve draft -> partial -> received y nunca
// baja del estado actual.
func DeriveProcurementStatus(lines []entity.ProcurementOrderLine, current string, allowDemote bool) string {
	if len(lines) == 0 {
		return current
	}
	allComplete := true
	anyProgress := false
	anyUnstarted := false
	for _, l := range lines {
		if !l.Complete() {
			allComplete = false
		}
		if l.ReceivedQuantity+l.RejectedQuantity > 0 {
			anyProgress = true
		}
		if l.ReceivedQuantity == 0 && l.OrderedQuantity > 0 {
			anyUnstarted = true
		}
	}

	if allowDemote {
		switch {
		case anyUnstarted:
			return entity.ProcurementStatusDraft
		case allComplete:
			return entity.ProcurementStatusReceived
		default:
			return entity.ProcurementStatusPartial
		}
	}

	candidate := entity.ProcurementStatusDraft
	switch {
	case allComplete:
		candidate = entity.ProcurementStatusReceived
	case anyProgress:
		candidate = entity.ProcurementStatusPartial
	}
	if procurementRank[candidate] < procurementRank[current] {
		return current
	}
	return candidate
}

// DeriveSalesOrderStatus: fulfilled si todas las líneas se despacharon completas,
// partial si alguna tiene despacho, open en otro caso.
func DeriveSalesOrderStatus(lines []entity.SalesOrderLine) string {
	if len(lines) == 0 {
		return entity.SalesStatusOpen
	}
	all := true
	anyShipped := false
	for _, l := range lines {
		if l.ShippedQuantity < l.PackageQuantity {
			all = false
		}
		if l.ShippedQuantity > 0 {
			anyShipped = true
		}
	}
	switch {
	case all:
		return entity.SalesStatusFulfilled
	case anyShipped:
		return entity.SalesStatusPartial
	default:
		return entity.SalesStatusOpen
	}
}
