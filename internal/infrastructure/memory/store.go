// Package memory implementa repository.Store en memoria. Lo usan los tests de casos de uso:
// Run toma un snapshot del estado y lo restaura si la función retorna error, igual que un Rollback.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

type state struct {
	items        map[string]*entity.Item
	variants     map[string]*entity.Variant
	packages     map[string]*entity.Package
	transactions []*entity.InventoryTransaction
	procurement  map[string]*entity.ProcurementOrder
	crns         map[string]*entity.ContenaReceivingNote
	sales        map[string]*entity.SalesOrder
}

func newState() *state {
	return &state{
		items:       make(map[string]*entity.Item),
		variants:    make(map[string]*entity.Variant),
		packages:    make(map[string]*entity.Package),
		procurement: make(map[string]*entity.ProcurementOrder),
		crns:        make(map[string]*entity.ContenaReceivingNote),
		sales:       make(map[string]*entity.SalesOrder),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.items {
		c.items[k] = copyItem(v)
	}
	for k, v := range s.variants {
		cp := *v
		c.variants[k] = &cp
	}
	for k, v := range s.packages {
		c.packages[k] = copyPackage(v)
	}
	for _, t := range s.transactions {
		c.transactions = append(c.transactions, copyTransaction(t))
	}
	for k, v := range s.procurement {
		c.procurement[k] = copyProcurementOrder(v)
	}
	for k, v := range s.crns {
		c.crns[k] = copyCrn(v)
	}
	for k, v := range s.sales {
		c.sales[k] = copySalesOrder(v)
	}
	return c
}

// DB es la base en memoria. Implementa repository.Store para lecturas fuera de transacción y
// TxRunner para mutaciones. Las transacciones se serializan con un mutex.
type DB struct {
	mu sync.Mutex
	st *state
}

var _ repository.Store = (*DB)(nil)

// New crea una base vacía.
func New() *DB {
	return &DB{st: newState()}
}

// Run ejecuta fn con acceso exclusivo. Si fn retorna error el estado vuelve al snapshot previo.
func (db *DB) Run(ctx context.Context, fn func(store repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	snapshot := db.st.clone()
	if err := fn(&Store{st: db.st}); err != nil {
		*db.st = *snapshot
		return err
	}
	return nil
}

// PutVariant inserta una variante arbitraria (p. ej. con color) para preparar escenarios de test.
func (db *DB) PutVariant(v *entity.Variant) {
	db.mu.Lock()
	defer db.mu.Unlock()
	cp := *v
	db.st.variants[v.ID] = &cp
}

// locked devuelve un Store que toma el mutex en cada llamada.
func (db *DB) locked() *Store {
	return &Store{st: db.st, mu: &db.mu}
}

func (db *DB) Items() repository.ItemRepository       { return db.locked().Items() }
func (db *DB) Variants() repository.VariantRepository { return db.locked().Variants() }
func (db *DB) Packages() repository.PackageRepository { return db.locked().Packages() }
func (db *DB) Transactions() repository.InventoryTransactionRepository {
	return db.locked().Transactions()
}
func (db *DB) ProcurementOrders() repository.ProcurementOrderRepository {
	return db.locked().ProcurementOrders()
}
func (db *DB) Crns() repository.CrnRepository               { return db.locked().Crns() }
func (db *DB) SalesOrders() repository.SalesOrderRepository { return db.locked().SalesOrders() }

// Store vista de los repositorios sobre un estado. Dentro de Run mu es nil (el lock ya está tomado).
type Store struct {
	st *state
	mu *sync.Mutex
}

func (s *Store) lock() func() {
	if s.mu == nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Items() repository.ItemRepository                         { return &itemRepo{s} }
func (s *Store) Variants() repository.VariantRepository                   { return &variantRepo{s} }
func (s *Store) Packages() repository.PackageRepository                   { return &packageRepo{s} }
func (s *Store) Transactions() repository.InventoryTransactionRepository  { return &transactionRepo{s} }
func (s *Store) ProcurementOrders() repository.ProcurementOrderRepository { return &procurementRepo{s} }
func (s *Store) Crns() repository.CrnRepository                           { return &crnRepo{s} }
func (s *Store) SalesOrders() repository.SalesOrderRepository             { return &salesRepo{s} }

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
