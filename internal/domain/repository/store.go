package repository

// Store agrupa los repositorios atados a una misma conexión o transacción.
type Store interface {
	Items() ItemRepository
	Variants() VariantRepository
	Packages() PackageRepository
	Transactions() InventoryTransactionRepository
	ProcurementOrders() ProcurementOrderRepository
	Crns() CrnRepository
	SalesOrders() SalesOrderRepository
}
