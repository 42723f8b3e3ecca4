package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// Posting acumula las líneas de una transacción de inventario y aplica el stock dentro de la
// transacción SQL del caller. Lo usan el libro, la recepción directa de compras y las CRN.
type Posting struct {
	store repository.Store
	txn   *entity.InventoryTransaction
}

// NewPosting prepara una cabecera de transacción (in/out) todavía sin persistir.
func NewPosting(store repository.Store, txnType, mode string, actor entity.Actor, note string) *Posting {
	return &Posting{
		store: store,
		txn: &entity.InventoryTransaction{
			ID:        uuid.New().String(),
			Type:      txnType,
			Mode:      mode,
			CreatedBy: actor.ID,
			Note:      note,
			CreatedAt: time.Now(),
		},
	}
}

// Transaction devuelve la cabecera (con las líneas agregadas hasta ahora).
func (p *Posting) Transaction() *entity.InventoryTransaction { return p.txn }

// InDefault suma qty a la variante por defecto del SKU (creándola si no existe).
func (p *Posting) InDefault(ctx context.Context, item *entity.Item, qty int64) error {
	v, err := ResolveDefaultVariant(ctx, p.store.Variants(), item, true)
	if err != nil {
		return err
	}
	return p.in(ctx, v, qty)
}

// InVariant suma qty a una variante concreta (líneas de CRN fijadas a variante).
func (p *Posting) InVariant(ctx context.Context, variantID string, qty int64) (*entity.Variant, error) {
	v, err := p.store.Variants().GetByIDForUpdate(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.Invalid("item_variant_id", "variante %s no encontrada", variantID)
	}
	return v, p.in(ctx, v, qty)
}

func (p *Posting) in(ctx context.Context, v *entity.Variant, qty int64) error {
	if qty <= 0 {
		return domain.Invalid("lines", "cantidad de entrada no positiva (%d) para la variante %s", qty, v.ID)
	}
	if err := p.store.Variants().IncrementStock(ctx, v.ID, qty); err != nil {
		return err
	}
	v.StockInitial += qty
	v.StockCurrent += qty
	p.append(v, qty)
	return nil
}

// Out descuenta qty de la variante (ya bloqueada y validada por el caller).
// El UPDATE es condicional: si otra transacción consumió el stock retorna ErrInsufficientStock.
func (p *Posting) Out(ctx context.Context, v *entity.Variant, qty int64) error {
	if qty <= 0 {
		return domain.Invalid("lines", "cantidad de salida no positiva (%d) para la variante %s", qty, v.ID)
	}
	if err := p.store.Variants().DecrementStock(ctx, v.ID, qty); err != nil {
		return err
	}
	v.StockCurrent -= qty
	p.append(v, qty)
	return nil
}

func (p *Posting) append(v *entity.Variant, qty int64) {
	p.txn.Lines = append(p.txn.Lines, entity.InventoryTransactionLine{
		ID:            uuid.New().String(),
		TransactionID: p.txn.ID,
		ItemID:        v.ItemID,
		VariantID:     v.ID,
		Quantity:      qty,
	})
}

// Save persiste cabecera y líneas. Sin líneas no escribe nada y retorna false.
func (p *Posting) Save(ctx context.Context) (bool, error) {
	if len(p.txn.Lines) == 0 {
		return false, nil
	}
	if err := p.store.Transactions().Create(ctx, p.txn); err != nil {
		return false, err
	}
	return true, nil
}
