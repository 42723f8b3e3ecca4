package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

type itemRepo struct{ s *Store }

func (r *itemRepo) Create(_ context.Context, item *entity.Item) error {
	defer r.s.lock()()
	for _, it := range r.s.st.items {
		if it.Code == item.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.st.items[item.ID] = copyItem(item)
	return nil
}

func (r *itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	defer r.s.lock()()
	if it, ok := r.s.st.items[id]; ok {
		return copyItem(it), nil
	}
	return nil, nil
}

func (r *itemRepo) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	defer r.s.lock()()
	for _, it := range r.s.st.items {
		if it.Code == code {
			return copyItem(it), nil
		}
	}
	return nil, nil
}

func (r *itemRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Item, error) {
	defer r.s.lock()()
	out := make(map[string]*entity.Item, len(ids))
	for _, id := range ids {
		if it, ok := r.s.st.items[id]; ok {
			out[id] = copyItem(it)
		}
	}
	return out, nil
}

func (r *itemRepo) List(_ context.Context, limit, offset int) ([]*entity.Item, error) {
	defer r.s.lock()()
	list := make([]*entity.Item, 0, len(r.s.st.items))
	for _, it := range r.s.st.items {
		list = append(list, copyItem(it))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return page(list, limit, offset), nil
}

type variantRepo struct{ s *Store }

func (r *variantRepo) get(id string) *entity.Variant {
	if v, ok := r.s.st.variants[id]; ok {
		cp := *v
		return &cp
	}
	return nil
}

func (r *variantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	defer r.s.lock()()
	return r.get(id), nil
}

func (r *variantRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	return r.GetByID(ctx, id)
}

func (r *variantRepo) GetDefault(_ context.Context, itemID string) (*entity.Variant, error) {
	defer r.s.lock()()
	for _, v := range r.s.st.variants {
		if v.ItemID == itemID && v.Kind.IsDefault() {
			return r.get(v.ID), nil
		}
	}
	return nil, nil
}

func (r *variantRepo) GetDefaultForUpdate(ctx context.Context, itemID string) (*entity.Variant, error) {
	return r.GetDefault(ctx, itemID)
}

func (r *variantRepo) CreateDefault(_ context.Context, v *entity.Variant) error {
	defer r.s.lock()()
	for _, existing := range r.s.st.variants {
		if existing.ItemID == v.ItemID && existing.Kind.IsDefault() {
			return domain.ErrDuplicate
		}
	}
	cp := *v
	cp.Kind = entity.DefaultVariant()
	cp.StockInitial, cp.StockCurrent = 0, 0
	r.s.st.variants[v.ID] = &cp
	return nil
}

func (r *variantRepo) ListByItem(_ context.Context, itemID string) ([]*entity.Variant, error) {
	defer r.s.lock()()
	var list []*entity.Variant
	for _, v := range r.s.st.variants {
		if v.ItemID == itemID {
			list = append(list, r.get(v.ID))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Kind.Color() < list[j].Kind.Color() })
	return list, nil
}

func (r *variantRepo) IncrementStock(_ context.Context, variantID string, qty int64) error {
	defer r.s.lock()()
	v, ok := r.s.st.variants[variantID]
	if !ok {
		return fmt.Errorf("increment stock: variant %s: %w", variantID, domain.ErrNotFound)
	}
	v.StockInitial += qty
	v.StockCurrent += qty
	v.UpdatedAt = time.Now()
	return nil
}

func (r *variantRepo) DecrementStock(_ context.Context, variantID string, qty int64) error {
	defer r.s.lock()()
	v, ok := r.s.st.variants[variantID]
	if !ok || v.StockCurrent < qty {
		return domain.ErrInsufficientStock
	}
	v.StockCurrent -= qty
	v.UpdatedAt = time.Now()
	return nil
}

func (r *variantRepo) SumStockByItem(_ context.Context) (map[string]int64, error) {
	defer r.s.lock()()
	out := make(map[string]int64)
	for _, v := range r.s.st.variants {
		out[v.ItemID] += v.StockCurrent
	}
	return out, nil
}

type packageRepo struct{ s *Store }

func (r *packageRepo) Create(_ context.Context, pkg *entity.Package) error {
	defer r.s.lock()()
	for _, p := range r.s.st.packages {
		if p.Code == pkg.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.st.packages[pkg.ID] = copyPackage(pkg)
	return nil
}

func (r *packageRepo) GetByID(_ context.Context, id string) (*entity.Package, error) {
	defer r.s.lock()()
	if p, ok := r.s.st.packages[id]; ok {
		return copyPackage(p), nil
	}
	return nil, nil
}

func (r *packageRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Package, error) {
	defer r.s.lock()()
	out := make(map[string]*entity.Package, len(ids))
	for _, id := range ids {
		if p, ok := r.s.st.packages[id]; ok {
			out[id] = copyPackage(p)
		}
	}
	return out, nil
}

func (r *packageRepo) List(_ context.Context, limit, offset int) ([]*entity.Package, error) {
	defer r.s.lock()()
	list := make([]*entity.Package, 0, len(r.s.st.packages))
	for _, p := range r.s.st.packages {
		list = append(list, copyPackage(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return page(list, limit, offset), nil
}

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(_ context.Context, txn *entity.InventoryTransaction) error {
	defer r.s.lock()()
	r.s.st.transactions = append(r.s.st.transactions, copyTransaction(txn))
	return nil
}

func (r *transactionRepo) GetByID(_ context.Context, id string) (*entity.InventoryTransaction, error) {
	defer r.s.lock()()
	for _, t := range r.s.st.transactions {
		if t.ID == id {
			return copyTransaction(t), nil
		}
	}
	return nil, nil
}

func (r *transactionRepo) List(_ context.Context, limit, offset int) ([]*entity.InventoryTransaction, error) {
	defer r.s.lock()()
	n := len(r.s.st.transactions)
	list := make([]*entity.InventoryTransaction, 0, n)
	for i := n - 1; i >= 0; i-- {
		list = append(list, copyTransaction(r.s.st.transactions[i]))
	}
	return page(list, limit, offset), nil
}

type procurementRepo struct{ s *Store }

func (r *procurementRepo) Create(_ context.Context, o *entity.ProcurementOrder) error {
	defer r.s.lock()()
	for _, existing := range r.s.st.procurement {
		if existing.Code == o.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.st.procurement[o.ID] = copyProcurementOrder(o)
	return nil
}

func (r *procurementRepo) GetByID(_ context.Context, id string) (*entity.ProcurementOrder, error) {
	defer r.s.lock()()
	if o, ok := r.s.st.procurement[id]; ok {
		return copyProcurementOrder(o), nil
	}
	return nil, nil
}

func (r *procurementRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProcurementOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *procurementRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.ProcurementOrder, error) {
	defer r.s.lock()()
	var list []*entity.ProcurementOrder
	for _, o := range r.s.st.procurement {
		if status == "" || o.Status == status {
			list = append(list, copyProcurementOrder(o))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *procurementRepo) CreateLine(_ context.Context, l *entity.ProcurementOrderLine) error {
	defer r.s.lock()()
	o, ok := r.s.st.procurement[l.OrderID]
	if !ok {
		return fmt.Errorf("create line: order %s: %w", l.OrderID, domain.ErrNotFound)
	}
	for _, existing := range o.Lines {
		if existing.ItemID == l.ItemID {
			return domain.ErrDuplicate
		}
	}
	o.Lines = append(o.Lines, *l)
	return nil
}

func (r *procurementRepo) UpdateLine(_ context.Context, l *entity.ProcurementOrderLine) error {
	defer r.s.lock()()
	if l.ReceivedQuantity+l.RejectedQuantity > l.OrderedQuantity {
		return domain.Invalid("lines", "la línea %s supera la cantidad ordenada", l.ID)
	}
	for _, o := range r.s.st.procurement {
		for i := range o.Lines {
			if o.Lines[i].ID == l.ID {
				o.Lines[i] = *l
				return nil
			}
		}
	}
	return fmt.Errorf("update procurement line %s: %w", l.ID, domain.ErrNotFound)
}

func (r *procurementRepo) UpdateStatus(_ context.Context, id, status string) error {
	defer r.s.lock()()
	if o, ok := r.s.st.procurement[id]; ok {
		o.Status = status
		o.UpdatedAt = time.Now()
	}
	return nil
}

func (r *procurementRepo) Delete(_ context.Context, id string) error {
	defer r.s.lock()()
	delete(r.s.st.procurement, id)
	return nil
}

type crnRepo struct{ s *Store }

func (r *crnRepo) Create(_ context.Context, c *entity.ContenaReceivingNote) error {
	defer r.s.lock()()
	for _, existing := range r.s.st.crns {
		if existing.Number == c.Number {
			return domain.ErrDuplicate
		}
	}
	r.s.st.crns[c.ID] = copyCrn(c)
	return nil
}

func (r *crnRepo) GetByID(_ context.Context, id string) (*entity.ContenaReceivingNote, error) {
	defer r.s.lock()()
	if c, ok := r.s.st.crns[id]; ok {
		return copyCrn(c), nil
	}
	return nil, nil
}

func (r *crnRepo) GetForUpdate(ctx context.Context, id string) (*entity.ContenaReceivingNote, error) {
	return r.GetByID(ctx, id)
}

func (r *crnRepo) List(_ context.Context, limit, offset int) ([]*entity.ContenaReceivingNote, error) {
	defer r.s.lock()()
	list := make([]*entity.ContenaReceivingNote, 0, len(r.s.st.crns))
	for _, c := range r.s.st.crns {
		list = append(list, copyCrn(c))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *crnRepo) MarkTransferred(_ context.Context, id string, at time.Time) error {
	defer r.s.lock()()
	c, ok := r.s.st.crns[id]
	if !ok || c.Status != entity.CrnStatusDraft {
		return domain.Conflict("status", "la CRN %s ya fue transferida", id)
	}
	c.Status = entity.CrnStatusTransferred
	c.TransferredAt = &at
	c.UpdatedAt = at
	return nil
}

type salesRepo struct{ s *Store }

func (r *salesRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	defer r.s.lock()()
	for _, existing := range r.s.st.sales {
		if existing.Code == o.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.st.sales[o.ID] = copySalesOrder(o)
	return nil
}

func (r *salesRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	defer r.s.lock()()
	if o, ok := r.s.st.sales[id]; ok {
		return copySalesOrder(o), nil
	}
	return nil, nil
}

func (r *salesRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *salesRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.SalesOrder, error) {
	defer r.s.lock()()
	var list []*entity.SalesOrder
	for _, o := range r.s.st.sales {
		if status == "" || o.Status == status {
			list = append(list, copySalesOrder(o))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].OrderDate.Equal(list[j].OrderDate) {
			return list[i].OrderDate.After(list[j].OrderDate)
		}
		return list[i].Code < list[j].Code
	})
	return page(list, limit, offset), nil
}

func (r *salesRepo) UpdateLineShipped(_ context.Context, lineID string, shipped int64) error {
	defer r.s.lock()()
	for _, o := range r.s.st.sales {
		for i := range o.Lines {
			if o.Lines[i].ID != lineID {
				continue
			}
			if shipped > o.Lines[i].PackageQuantity {
				return domain.Invalid("package_quantity", "el despacho supera lo pedido en la línea %s", lineID)
			}
			o.Lines[i].ShippedQuantity = shipped
			return nil
		}
	}
	return fmt.Errorf("update shipped: line %s: %w", lineID, domain.ErrNotFound)
}

func (r *salesRepo) UpdateStatus(_ context.Context, id, status string) error {
	defer r.s.lock()()
	if o, ok := r.s.st.sales[id]; ok {
		o.Status = status
		o.UpdatedAt = time.Now()
	}
	return nil
}

func (r *salesRepo) ListOpenDemandLines(_ context.Context) ([]entity.SalesOrderLine, error) {
	defer r.s.lock()()
	linked := make(map[string]bool)
	for _, po := range r.s.st.procurement {
		for _, soID := range po.SalesOrderIDs {
			linked[soID] = true
		}
	}
	orders := make([]*entity.SalesOrder, 0, len(r.s.st.sales))
	for _, o := range r.s.st.sales {
		if linked[o.ID] {
			continue
		}
		if o.Status != entity.SalesStatusOpen && o.Status != entity.SalesStatusPartial {
			continue
		}
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].Code < orders[j].Code })
	var lines []entity.SalesOrderLine
	for _, o := range orders {
		lines = append(lines, o.Lines...)
	}
	return lines, nil
}
