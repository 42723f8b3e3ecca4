package inventory

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	domaininv "github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// LedgerUseCase es el único escritor de stock. Cada entrada o salida se ejecuta en una transacción
// que además deja una cabecera de auditoría con sus líneas; si algo falla se hace Rollback de todo.
type LedgerUseCase struct {
	txRunner TxRunner
	store    repository.Store
	shipment ShipmentRecorder
	log      zerolog.Logger
}

// NewLedgerUseCase construye el caso de uso. store se usa solo para lecturas fuera de transacción.
func NewLedgerUseCase(txRunner TxRunner, store repository.Store, shipment ShipmentRecorder, log zerolog.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		store:    store,
		shipment: shipment,
		log:      log.With().Str("component", "ledger").Logger(),
	}
}

// StockMovementInput entrada para registrar una entrada o salida de stock.
// Para mode=package: PackageID y PackageQuantity; para mode=alacarte: Lines.
// SalesOrderID solo aplica a salidas.
type StockMovementInput struct {
	Actor           entity.Actor
	Mode            string
	PackageID       string
	PackageQuantity int64
	Lines           []domaininv.ItemQuantity
	SalesOrderID    string
	Note            string
}

// RecordStockIn suma stock (stock_initial y stock_current) a la variante por defecto de cada SKU.
func (uc *LedgerUseCase) RecordStockIn(ctx context.Context, input StockMovementInput) (*dto.InventoryTransactionResponse, error) {
	var txn *entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		lines, items, err := uc.resolveLines(ctx, store, input)
		if err != nil {
			return err
		}
		sortByItem(lines)
		posting := NewPosting(store, entity.TransactionTypeIn, input.Mode, input.Actor, input.Note)
		uc.tagPackage(posting.Transaction(), input)
		for _, l := range lines {
			if err := posting.InDefault(ctx, items[l.ItemID], l.Quantity); err != nil {
				return err
			}
		}
		if err := saveNonEmpty(ctx, posting); err != nil {
			return err
		}
		txn = posting.Transaction()
		return nil
	})
	if err != nil {
		uc.logRejected(err, "entrada de stock rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("transaction_id", txn.ID).
		Str("mode", txn.Mode).
		Int("lines", len(txn.Lines)).
		Str("actor", input.Actor.ID).
		Msg("entrada de stock registrada")
	out := dto.FromTransaction(txn)
	return &out, nil
}

// RecordStockOut descuenta stock_current. Valida todas las líneas antes de escribir: si alguna no
// alcanza, falla sin aplicar nada. Las filas de variantes se bloquean en orden de item_id.
// Con SalesOrderID y mode=package registra además el despacho en la orden de venta (misma tx).
func (uc *LedgerUseCase) RecordStockOut(ctx context.Context, input StockMovementInput) (*dto.InventoryTransactionResponse, error) {
	var txn *entity.InventoryTransaction
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		lines, items, err := uc.resolveLines(ctx, store, input)
		if err != nil {
			return err
		}
		if input.SalesOrderID != "" {
			so, err := store.SalesOrders().GetByID(ctx, input.SalesOrderID)
			if err != nil {
				return err
			}
			if so == nil {
				return domain.Invalid("sales_order_id", "orden de venta %s no encontrada", input.SalesOrderID)
			}
		}

		sortByItem(lines)
		variants := make([]*entity.Variant, len(lines))
		for i, l := range lines {
			item := items[l.ItemID]
			v, err := ResolveDefaultVariant(ctx, store.Variants(), item, false)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidInput) {
					return domain.Insufficient("lines", "stock insuficiente para %s: disponible 0, solicitado %d", item.ShortCode(), l.Quantity)
				}
				return err
			}
			if v.StockCurrent < l.Quantity {
				return domain.Insufficient("lines", "stock insuficiente para %s: disponible %d, solicitado %d", item.ShortCode(), v.StockCurrent, l.Quantity)
			}
			variants[i] = v
		}

		posting := NewPosting(store, entity.TransactionTypeOut, input.Mode, input.Actor, input.Note)
		uc.tagPackage(posting.Transaction(), input)
		if input.SalesOrderID != "" {
			soID := input.SalesOrderID
			posting.Transaction().SalesOrderID = &soID
		}
		for i, l := range lines {
			if err := posting.Out(ctx, variants[i], l.Quantity); err != nil {
				return err
			}
		}
		if err := saveNonEmpty(ctx, posting); err != nil {
			return err
		}
		if input.SalesOrderID != "" && input.Mode == entity.TransactionModePackage {
			if err := uc.shipment.RecordShipmentInTx(ctx, store, input.SalesOrderID, input.PackageID, input.PackageQuantity); err != nil {
				return err
			}
		}
		txn = posting.Transaction()
		return nil
	})
	if err != nil {
		uc.logRejected(err, "salida de stock rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("transaction_id", txn.ID).
		Str("mode", txn.Mode).
		Int("lines", len(txn.Lines)).
		Str("sales_order_id", input.SalesOrderID).
		Str("actor", input.Actor.ID).
		Msg("salida de stock registrada")
	out := dto.FromTransaction(txn)
	return &out, nil
}

// resolveLines expande el paquete o valida las líneas a la carta, fusiona SKUs repetidos y
// carga los items. Un SKU inexistente es un error de validación.
func (uc *LedgerUseCase) resolveLines(ctx context.Context, store repository.Store, input StockMovementInput) ([]domaininv.ItemQuantity, map[string]*entity.Item, error) {
	var lines []domaininv.ItemQuantity
	switch input.Mode {
	case entity.TransactionModePackage:
		if input.PackageID == "" {
			return nil, nil, domain.Invalid("package_id", "package_id es requerido en modo paquete")
		}
		pkg, err := store.Packages().GetByID(ctx, input.PackageID)
		if err != nil {
			return nil, nil, err
		}
		lines, err = domaininv.ExpandPackage(pkg, input.PackageQuantity)
		if err != nil {
			return nil, nil, err
		}
	case entity.TransactionModeAlacarte:
		if len(input.Lines) == 0 {
			return nil, nil, domain.Invalid("lines", "se requiere al menos una línea")
		}
		for i, l := range input.Lines {
			if l.ItemID == "" {
				return nil, nil, domain.Invalid("lines", "línea %d: item_id es requerido", i+1)
			}
			if l.Quantity <= 0 {
				return nil, nil, domain.Invalid("lines", "línea %d: la cantidad debe ser mayor a cero", i+1)
			}
		}
		lines = input.Lines
	default:
		return nil, nil, domain.Invalid("mode", "modo inválido: %q", input.Mode)
	}
	lines, err := domaininv.MergeByItem(lines)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ItemID)
	}
	items, err := store.Items().GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for _, l := range lines {
		if _, ok := items[l.ItemID]; !ok {
			return nil, nil, domain.Invalid("lines", "SKU %s no existe", l.ItemID)
		}
	}
	return lines, items, nil
}

// sortByItem fija el orden de bloqueo de las variantes para que dos movimientos concurrentes
// sobre los mismos SKUs no se bloqueen mutuamente.
func sortByItem(lines []domaininv.ItemQuantity) {
	sort.Slice(lines, func(i, j int) bool { return lines[i].ItemID < lines[j].ItemID })
}

// saveNonEmpty persiste la transacción; un movimiento que no tocó stock es un error de entrada.
func saveNonEmpty(ctx context.Context, posting *Posting) error {
	saved, err := posting.Save(ctx)
	if err != nil {
		return err
	}
	if !saved {
		return domain.Invalid("lines", "el movimiento no tiene cantidades para registrar")
	}
	return nil
}

func (uc *LedgerUseCase) tagPackage(txn *entity.InventoryTransaction, input StockMovementInput) {
	if input.Mode != entity.TransactionModePackage {
		return
	}
	pkgID, qty := input.PackageID, input.PackageQuantity
	txn.PackageID = &pkgID
	txn.PackageQuantity = &qty
}

func (uc *LedgerUseCase) logRejected(err error, msg string) {
	var rule *domain.RuleError
	if errors.As(err, &rule) {
		uc.log.Warn().Str("field", rule.Field).Str("reason", rule.Message).Msg(msg)
		return
	}
	uc.log.Error().Err(err).Msg(msg)
}

// GetTransaction obtiene una transacción con sus líneas; (nil, nil) si no existe.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, id string) (*dto.InventoryTransactionResponse, error) {
	txn, err := uc.store.Transactions().GetByID(ctx, id)
	if err != nil || txn == nil {
		return nil, err
	}
	out := dto.FromTransaction(txn)
	return &out, nil
}

// ListTransactions lista transacciones de la más reciente a la más antigua.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, page dto.PageRequest) (*dto.InventoryTransactionListResponse, error) {
	page.DefaultPage()
	list, err := uc.store.Transactions().List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryTransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.FromTransaction(t))
	}
	return &dto.InventoryTransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
