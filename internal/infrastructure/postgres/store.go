package postgres

import "github.com/jhoicas/warehouse-api/internal/domain/repository"

var _ repository.Store = (*Store)(nil)

// Store agrupa los repositorios sobre un mismo Querier (pool o tx).
type Store struct {
	items        *ItemRepo
	variants     *VariantRepo
	packages     *PackageRepo
	transactions *TransactionRepo
	procurement  *ProcurementOrderRepo
	crns         *CrnRepo
	sales        *SalesOrderRepo
}

// NewStore construye los repositorios atados a q.
func NewStore(q Querier) *Store {
	return &Store{
		items:        NewItemRepository(q),
		variants:     NewVariantRepository(q),
		packages:     NewPackageRepository(q),
		transactions: NewTransactionRepository(q),
		procurement:  NewProcurementOrderRepository(q),
		crns:         NewCrnRepository(q),
		sales:        NewSalesOrderRepository(q),
	}
}

func (s *Store) Items() repository.ItemRepository                         { return s.items }
func (s *Store) Variants() repository.VariantRepository                   { return s.variants }
func (s *Store) Packages() repository.PackageRepository                   { return s.packages }
func (s *Store) Transactions() repository.InventoryTransactionRepository  { return s.transactions }
func (s *Store) ProcurementOrders() repository.ProcurementOrderRepository { return s.procurement }
func (s *Store) Crns() repository.CrnRepository                           { return s.crns }
func (s *Store) SalesOrders() repository.SalesOrderRepository             { return s.sales }
