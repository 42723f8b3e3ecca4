package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	appinv "github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	domaininv "github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// OrderUseCase ciclo de vida de la orden de compra: borrador, edición, recepción directa y borrado.
type OrderUseCase struct {
	txRunner TxRunner
	store    repository.Store
	log      zerolog.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner TxRunner, store repository.Store, log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{
		txRunner: txRunner,
		store:    store,
		log:      log.With().Str("component", "procurement").Logger(),
	}
}

// CreateDraft crea una orden en draft con una línea por SKU (ordenado = sugerido = cantidad pedida),
// las líneas de demanda por paquete y el vínculo con las órdenes de venta que la originan.
// Sin órdenes de venta de origen la solicitud se rechaza.
func (uc *OrderUseCase) CreateDraft(ctx context.Context, actor entity.Actor, in dto.CreateProcurementDraftRequest) (*dto.ProcurementOrderResponse, error) {
	if len(in.SkuLines) == 0 {
		return nil, domain.Invalid("sku_lines", "se requiere al menos una línea de SKU")
	}
	if len(in.SourceOrderIDs) == 0 {
		return nil, domain.Invalid("source_order_ids", "se requiere al menos una orden de venta de origen")
	}

	skuLines := make([]domaininv.ItemQuantity, 0, len(in.SkuLines))
	for i, l := range in.SkuLines {
		if l.ItemID == "" || l.Quantity <= 0 {
			return nil, domain.Invalid("sku_lines", "línea %d: item_id y cantidad positiva son requeridos", i+1)
		}
		skuLines = append(skuLines, domaininv.ItemQuantity{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	skuLines, mergeErr := domaininv.MergeByItem(skuLines)
	if mergeErr != nil {
		return nil, domain.Invalid("sku_lines", "la cantidad por SKU supera el máximo de %d", domaininv.MaxQuantity)
	}

	now := time.Now()
	order := &entity.ProcurementOrder{
		ID:        uuid.New().String(),
		Code:      appinv.DocumentCode(appinv.PrefixProcurementOrder, now),
		Status:    entity.ProcurementStatusDraft,
		Note:      in.Note,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		ids := make([]string, 0, len(skuLines))
		for _, l := range skuLines {
			ids = append(ids, l.ItemID)
		}
		items, err := store.Items().GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, l := range skuLines {
			if _, ok := items[l.ItemID]; !ok {
				return domain.Invalid("sku_lines", "SKU %s no existe", l.ItemID)
			}
			order.Lines = append(order.Lines, entity.ProcurementOrderLine{
				ID:                uuid.New().String(),
				OrderID:           order.ID,
				ItemID:            l.ItemID,
				SuggestedQuantity: l.Quantity,
				OrderedQuantity:   l.Quantity,
			})
		}

		pkgIDs := make([]string, 0, len(in.PackageLines))
		for _, pl := range in.PackageLines {
			pkgIDs = append(pkgIDs, pl.PackageID)
		}
		pkgs, err := store.Packages().GetByIDs(ctx, pkgIDs)
		if err != nil {
			return err
		}
		for i, pl := range in.PackageLines {
			if _, ok := pkgs[pl.PackageID]; !ok {
				return domain.Invalid("package_lines", "línea %d: paquete %s no existe", i+1, pl.PackageID)
			}
			if pl.Quantity <= 0 {
				return domain.Invalid("package_lines", "línea %d: la cantidad debe ser mayor a cero", i+1)
			}
			order.PackageLines = append(order.PackageLines, entity.ProcurementOrderPackageLine{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				PackageID: pl.PackageID,
				Quantity:  pl.Quantity,
			})
		}

		seen := make(map[string]bool, len(in.SourceOrderIDs))
		for _, soID := range in.SourceOrderIDs {
			if seen[soID] {
				continue
			}
			seen[soID] = true
			so, err := store.SalesOrders().GetByID(ctx, soID)
			if err != nil {
				return err
			}
			if so == nil {
				return domain.Invalid("source_order_ids", "orden de venta %s no existe", soID)
			}
			order.SalesOrderIDs = append(order.SalesOrderIDs, soID)
		}

		return store.ProcurementOrders().Create(ctx, order)
	})
	if err != nil {
		uc.log.Warn().Err(err).Msg("borrador de compra rechazado")
		return nil, err
	}
	uc.log.Info().
		Str("order_id", order.ID).
		Str("code", order.Code).
		Int("lines", len(order.Lines)).
		Int("source_orders", len(order.SalesOrderIDs)).
		Str("actor", actor.ID).
		Msg("borrador de compra creado")
	out := dto.FromProcurementOrder(order)
	return &out, nil
}

// AddLine agrega un SKU a una orden en draft. Si la línea ya existe suma la cantidad a sugerido y
// ordenado; no sobrescribe.
func (uc *OrderUseCase) AddLine(ctx context.Context, actor entity.Actor, orderID string, in dto.AddProcurementLineRequest) (*dto.ProcurementOrderResponse, error) {
	if in.Quantity <= 0 || in.Quantity > domaininv.MaxQuantity {
		return nil, domain.Invalid("quantity", "la cantidad debe estar entre 1 y %d", domaininv.MaxQuantity)
	}
	var order *entity.ProcurementOrder
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		order, err = lockDraft(ctx, store, orderID)
		if err != nil {
			return err
		}
		item, err := store.Items().GetByID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.Invalid("item_id", "SKU %s no existe", in.ItemID)
		}
		for i := range order.Lines {
			l := &order.Lines[i]
			if l.ItemID != in.ItemID {
				continue
			}
			if l.OrderedQuantity+in.Quantity > domaininv.MaxQuantity {
				return domain.Invalid("quantity", "SKU %s: la cantidad pedida supera el máximo de %d", item.Code, domaininv.MaxQuantity)
			}
			l.SuggestedQuantity += in.Quantity
			l.OrderedQuantity += in.Quantity
			return store.ProcurementOrders().UpdateLine(ctx, l)
		}
		line := entity.ProcurementOrderLine{
			ID:                uuid.New().String(),
			OrderID:           order.ID,
			ItemID:            in.ItemID,
			SuggestedQuantity: in.Quantity,
			OrderedQuantity:   in.Quantity,
		}
		if err := store.ProcurementOrders().CreateLine(ctx, &line); err != nil {
			return err
		}
		order.Lines = append(order.Lines, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("item_id", in.ItemID).Int64("quantity", in.Quantity).Str("actor", actor.ID).Msg("línea agregada a orden de compra")
	out := dto.FromProcurementOrder(order)
	return &out, nil
}

// DeleteDraft elimina una orden en draft junto con sus líneas.
func (uc *OrderUseCase) DeleteDraft(ctx context.Context, actor entity.Actor, orderID string) error {
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		order, err := lockDraft(ctx, store, orderID)
		if err != nil {
			return err
		}
		return store.ProcurementOrders().Delete(ctx, order.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_id", orderID).Str("actor", actor.ID).Msg("borrador de compra eliminado")
	return nil
}

func lockDraft(ctx context.Context, store repository.Store, orderID string) (*entity.ProcurementOrder, error) {
	order, err := store.ProcurementOrders().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("order", "orden de compra %s no encontrada", orderID)
	}
	if order.Status != entity.ProcurementStatusDraft {
		return nil, domain.Conflict("status", "la orden %s está en estado %s; solo se modifica en draft", order.Code, order.Status)
	}
	return order, nil
}

// ReceiveLines recepción directa: cada entrada fija el total recibido de la línea.
// Primero valida todas las entradas (recibido <= ordenado); luego aplica al stock solo el aumento
// respecto a lo ya recibido, deja rechazado en 0 y recalcula el estado (puede volver a draft).
func (uc *OrderUseCase) ReceiveLines(ctx context.Context, actor entity.Actor, orderID string, in dto.ReceiveProcurementRequest) (*dto.ProcurementOrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("lines", "se requiere al menos una línea")
	}
	var order *entity.ProcurementOrder
	var txnID string
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		order, err = store.ProcurementOrders().GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFound("order", "orden de compra %s no encontrada", orderID)
		}

		byID := make(map[string]int, len(order.Lines))
		for i, l := range order.Lines {
			byID[l.ID] = i
		}
		seen := make(map[string]bool, len(in.Lines))
		itemIDs := make([]string, 0, len(in.Lines))
		for _, rl := range in.Lines {
			idx, ok := byID[rl.LineID]
			if !ok {
				return domain.Invalid("line_id", "la línea %s no pertenece a la orden %s", rl.LineID, order.Code)
			}
			if seen[rl.LineID] {
				return domain.Invalid("line_id", "la línea %s está repetida", rl.LineID)
			}
			seen[rl.LineID] = true
			line := order.Lines[idx]
			if rl.ReceivedQuantity < 0 {
				return domain.Invalid("received_quantity", "la cantidad recibida no puede ser negativa")
			}
			if rl.ReceivedQuantity > line.OrderedQuantity {
				return domain.Invalid("received_quantity", "línea %s: recibido %d supera lo ordenado %d", rl.LineID, rl.ReceivedQuantity, line.OrderedQuantity)
			}
			itemIDs = append(itemIDs, line.ItemID)
		}
		items, err := store.Items().GetByIDs(ctx, itemIDs)
		if err != nil {
			return err
		}

		posting := appinv.NewPosting(store, entity.TransactionTypeIn, entity.TransactionModeAlacarte, actor,
			fmt.Sprintf("recepción directa %s", order.Code))
		for _, rl := range in.Lines {
			line := &order.Lines[byID[rl.LineID]]
			delta := rl.ReceivedQuantity - line.ReceivedQuantity
			if delta > 0 {
				item, ok := items[line.ItemID]
				if !ok {
					return fmt.Errorf("item %s of line %s not found", line.ItemID, line.ID)
				}
				if err := posting.InDefault(ctx, item, delta); err != nil {
					return err
				}
			}
			line.ReceivedQuantity = rl.ReceivedQuantity
			line.RejectedQuantity = 0
			if err := store.ProcurementOrders().UpdateLine(ctx, line); err != nil {
				return err
			}
		}
		if _, err := posting.Save(ctx); err != nil {
			return err
		}
		txnID = posting.Transaction().ID

		status := domaininv.DeriveProcurementStatus(order.Lines, order.Status, true)
		if status != order.Status {
			if err := store.ProcurementOrders().UpdateStatus(ctx, order.ID, status); err != nil {
				return err
			}
			order.Status = status
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("recepción de compra rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("order_id", order.ID).
		Str("status", order.Status).
		Str("transaction_id", txnID).
		Str("actor", actor.ID).
		Msg("recepción directa de compra aplicada")
	out := dto.FromProcurementOrder(order)
	return &out, nil
}

// GetByID obtiene una orden con sus líneas; (nil, nil) si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.ProcurementOrderResponse, error) {
	order, err := uc.store.ProcurementOrders().GetByID(ctx, id)
	if err != nil || order == nil {
		return nil, err
	}
	out := dto.FromProcurementOrder(order)
	return &out, nil
}

// List lista órdenes; status vacío no filtra.
func (uc *OrderUseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.ProcurementOrderListResponse, error) {
	switch status {
	case "", entity.ProcurementStatusDraft, entity.ProcurementStatusPartial, entity.ProcurementStatusReceived:
	default:
		return nil, domain.Invalid("status", "estado desconocido: %s", status)
	}
	page.DefaultPage()
	list, err := uc.store.ProcurementOrders().List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProcurementOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.FromProcurementOrder(o))
	}
	return &dto.ProcurementOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
