package access

import "github.com/jhoicas/warehouse-api/internal/domain/entity"

// Operation operación protegida del motor.
type Operation string

const (
	OpCatalogRead        Operation = "catalog.read"
	OpCatalogWrite       Operation = "catalog.write"
	OpStockIn            Operation = "stock.in"
	OpStockOut           Operation = "stock.out"
	OpProcurementRead    Operation = "procurement.read"
	OpProcurementWrite   Operation = "procurement.write"
	OpProcurementReceive Operation = "procurement.receive"
	OpCrnRead            Operation = "crn.read"
	OpCrnWrite           Operation = "crn.write"
	OpSalesRead          Operation = "sales.read"
	OpSalesWrite         Operation = "sales.write"
)

var grants = map[string]map[Operation]bool{
	entity.RoleStoreKeeper: {
		OpCatalogRead: true, OpStockIn: true, OpStockOut: true,
		OpProcurementRead: true, OpProcurementReceive: true,
		OpCrnRead: true, OpCrnWrite: true, OpSalesRead: true,
	},
	entity.RoleProcurement: {
		OpCatalogRead: true, OpProcurementRead: true, OpProcurementWrite: true,
		OpProcurementReceive: true, OpCrnRead: true, OpSalesRead: true,
	},
	entity.RoleSales: {
		OpCatalogRead: true, OpSalesRead: true, OpSalesWrite: true, OpStockOut: true,
	},
}

// CanPerform decide si el rol puede ejecutar la operación. super_admin puede todo.
func CanPerform(role string, op Operation) bool {
	if role == entity.RoleSuperAdmin {
		return true
	}
	return grants[role][op]
}

// ValidRole indica si el rol es conocido.
func ValidRole(role string) bool {
	if role == entity.RoleSuperAdmin {
		return true
	}
	_, ok := grants[role]
	return ok
}
