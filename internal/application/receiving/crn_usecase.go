package receiving

import (
	"context"
	"fmt"
	"sort"
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

// CrnUseCase registra recepciones físicas (CRN). Las recepciones contra una orden de compra y la
// transferencia de una CRN suman stock y avanzan las líneas de la orden en la misma transacción.
// El estado de la orden solo se promueve: draft -> partial -> received.
type CrnUseCase struct {
	txRunner TxRunner
	store    repository.Store
	log      zerolog.Logger
	now      func() time.Time
}

// NewCrnUseCase construye el caso de uso.
func NewCrnUseCase(txRunner TxRunner, store repository.Store, log zerolog.Logger) *CrnUseCase {
	return &CrnUseCase{
		txRunner: txRunner,
		store:    store,
		log:      log.With().Str("component", "receiving").Logger(),
		now:      time.Now,
	}
}

type lineReceipt struct {
	lineID   string
	received int64
	rejected int64
	reason   string
}

// ReceiveProcurement recibe varias líneas de una orden de compra. Para cada línea
// recibido + rechazado no puede superar lo pendiente; si una falla no se aplica ninguna.
// Crea una CRN ya transferida y, si hubo unidades recibidas, una transacción de entrada.
func (uc *CrnUseCase) ReceiveProcurement(ctx context.Context, actor entity.Actor, orderID string, in dto.CrnReceiveProcurementRequest) (*dto.CrnResponse, error) {
	receipts := make([]lineReceipt, 0, len(in.Lines))
	for _, l := range in.Lines {
		receipts = append(receipts, lineReceipt{lineID: l.LineID, received: l.ReceivedQty, rejected: l.RejectedQty, reason: l.Reason})
	}
	var crn *entity.ContenaReceivingNote
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		order, err := lockOrder(ctx, store, orderID)
		if err != nil {
			return err
		}
		crn, err = uc.receiveAgainstOrder(ctx, store, actor, order, receipts, in.Note)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("recepción por CRN rechazada")
		return nil, err
	}
	uc.logReceived(crn, actor)
	out := dto.FromCrn(crn)
	return &out, nil
}

// SafeProcurementLine recibe todo lo pendiente de una línea sin rechazos.
func (uc *CrnUseCase) SafeProcurementLine(ctx context.Context, actor entity.Actor, orderID, lineID string) (*dto.CrnResponse, error) {
	var crn *entity.ContenaReceivingNote
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		order, err := lockOrder(ctx, store, orderID)
		if err != nil {
			return err
		}
		var line *entity.ProcurementOrderLine
		for i := range order.Lines {
			if order.Lines[i].ID == lineID {
				line = &order.Lines[i]
				break
			}
		}
		if line == nil {
			return domain.NotFound("line", "la línea %s no pertenece a la orden %s", lineID, order.Code)
		}
		remaining := line.Remaining()
		if remaining == 0 {
			return domain.Invalid("line", "la línea %s no tiene cantidad pendiente", lineID)
		}
		crn, err = uc.receiveAgainstOrder(ctx, store, actor, order,
			[]lineReceipt{{lineID: lineID, received: remaining}}, "")
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Str("line_id", lineID).Msg("recepción segura rechazada")
		return nil, err
	}
	uc.logReceived(crn, actor)
	out := dto.FromCrn(crn)
	return &out, nil
}

func lockOrder(ctx context.Context, store repository.Store, orderID string) (*entity.ProcurementOrder, error) {
	order, err := store.ProcurementOrders().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("order", "orden de compra %s no encontrada", orderID)
	}
	return order, nil
}

// receiveAgainstOrder valida todas las recepciones y luego las aplica en la tx del caller.
func (uc *CrnUseCase) receiveAgainstOrder(
	ctx context.Context,
	store repository.Store,
	actor entity.Actor,
	order *entity.ProcurementOrder,
	receipts []lineReceipt,
	note string,
) (*entity.ContenaReceivingNote, error) {
	byID := make(map[string]int, len(order.Lines))
	for i, l := range order.Lines {
		byID[l.ID] = i
	}
	seen := make(map[string]bool, len(receipts))
	process := make([]lineReceipt, 0, len(receipts))
	itemIDs := make([]string, 0, len(receipts))
	for _, r := range receipts {
		idx, ok := byID[r.lineID]
		if !ok {
			return nil, domain.Invalid("line_id", "la línea %s no pertenece a la orden %s", r.lineID, order.Code)
		}
		if seen[r.lineID] {
			return nil, domain.Invalid("line_id", "la línea %s está repetida", r.lineID)
		}
		seen[r.lineID] = true
		if r.received < 0 || r.rejected < 0 {
			return nil, domain.Invalid("lines", "línea %s: las cantidades no pueden ser negativas", r.lineID)
		}
		if r.received > domaininv.MaxQuantity || r.rejected > domaininv.MaxQuantity {
			return nil, domain.Invalid("lines", "línea %s: la cantidad supera el máximo de %d", r.lineID, domaininv.MaxQuantity)
		}
		if r.received+r.rejected == 0 {
			continue
		}
		line := order.Lines[idx]
		if remaining := line.Remaining(); r.received+r.rejected > remaining {
			return nil, domain.Invalid("lines", "línea %s: recibido %d + rechazado %d supera lo pendiente %d",
				r.lineID, r.received, r.rejected, remaining)
		}
		process = append(process, r)
		itemIDs = append(itemIDs, line.ItemID)
	}
	if len(process) == 0 {
		return nil, domain.Invalid("lines", "no hay cantidades para recibir")
	}
	// Mismo orden de bloqueo que las salidas: por item_id.
	sort.SliceStable(process, func(i, j int) bool {
		return order.Lines[byID[process[i].lineID]].ItemID < order.Lines[byID[process[j].lineID]].ItemID
	})
	items, err := store.Items().GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	orderID := order.ID
	crn := &entity.ContenaReceivingNote{
		ID:                 uuid.New().String(),
		Number:             appinv.DocumentCode(appinv.PrefixCrn, now),
		Status:             entity.CrnStatusTransferred,
		ProcurementOrderID: &orderID,
		Note:               note,
		CreatedBy:          actor.ID,
		TransferredAt:      &now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	posting := appinv.NewPosting(store, entity.TransactionTypeIn, entity.TransactionModeAlacarte, actor,
		fmt.Sprintf("recepción %s de %s", crn.Number, order.Code))

	for _, r := range process {
		line := &order.Lines[byID[r.lineID]]
		item, ok := items[line.ItemID]
		if !ok {
			return nil, fmt.Errorf("item %s of line %s not found", line.ItemID, line.ID)
		}
		v, err := appinv.ResolveDefaultVariant(ctx, store.Variants(), item, true)
		if err != nil {
			return nil, err
		}
		if r.received > 0 {
			if _, err := posting.InVariant(ctx, v.ID, r.received); err != nil {
				return nil, err
			}
		}
		crn.Items = append(crn.Items, entity.CrnItem{
			ID:              uuid.New().String(),
			CrnID:           crn.ID,
			VariantID:       v.ID,
			ItemID:          item.ID,
			ExpectedQty:     line.Remaining(),
			ReceivedQty:     r.received,
			RejectedQty:     r.rejected,
			RejectionReason: r.reason,
		})
		line.ReceivedQuantity += r.received
		line.RejectedQuantity += r.rejected
		if err := store.ProcurementOrders().UpdateLine(ctx, line); err != nil {
			return nil, err
		}
	}

	if err := store.Crns().Create(ctx, crn); err != nil {
		return nil, err
	}
	if _, err := posting.Save(ctx); err != nil {
		return nil, err
	}
	if err := promoteOrder(ctx, store, order); err != nil {
		return nil, err
	}
	return crn, nil
}

func promoteOrder(ctx context.Context, store repository.Store, order *entity.ProcurementOrder) error {
	status := domaininv.DeriveProcurementStatus(order.Lines, order.Status, false)
	if status == order.Status {
		return nil
	}
	if err := store.ProcurementOrders().UpdateStatus(ctx, order.ID, status); err != nil {
		return err
	}
	order.Status = status
	return nil
}

// Create registra una CRN manual en draft. Cada línea apunta a una variante existente.
func (uc *CrnUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateCrnRequest) (*dto.CrnResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("items", "se requiere al menos una línea")
	}
	now := uc.now()
	crn := &entity.ContenaReceivingNote{
		ID:        uuid.New().String(),
		Number:    appinv.DocumentCode(appinv.PrefixCrn, now),
		Status:    entity.CrnStatusDraft,
		Note:      in.Note,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		if in.ProcurementOrderID != "" {
			order, err := store.ProcurementOrders().GetByID(ctx, in.ProcurementOrderID)
			if err != nil {
				return err
			}
			if order == nil {
				return domain.Invalid("procurement_order_id", "orden de compra %s no encontrada", in.ProcurementOrderID)
			}
			orderID := order.ID
			crn.ProcurementOrderID = &orderID
		}
		for i, it := range in.Items {
			if it.ExpectedQty < 0 || it.ReceivedQty < 0 || it.RejectedQty < 0 {
				return domain.Invalid("items", "línea %d: las cantidades no pueden ser negativas", i+1)
			}
			if it.ExpectedQty > domaininv.MaxQuantity || it.ReceivedQty > domaininv.MaxQuantity || it.RejectedQty > domaininv.MaxQuantity {
				return domain.Invalid("items", "línea %d: la cantidad supera el máximo de %d", i+1, domaininv.MaxQuantity)
			}
			if it.ReceivedQty+it.RejectedQty == 0 {
				return domain.Invalid("items", "línea %d: recibido + rechazado debe ser mayor a cero", i+1)
			}
			v, err := store.Variants().GetByID(ctx, it.ItemVariantID)
			if err != nil {
				return err
			}
			if v == nil {
				return domain.Invalid("items", "línea %d: variante %s no encontrada", i+1, it.ItemVariantID)
			}
			crn.Items = append(crn.Items, entity.CrnItem{
				ID:              uuid.New().String(),
				CrnID:           crn.ID,
				VariantID:       v.ID,
				ItemID:          v.ItemID,
				ExpectedQty:     it.ExpectedQty,
				ReceivedQty:     it.ReceivedQty,
				RejectedQty:     it.RejectedQty,
				RejectionReason: it.RejectionReason,
			})
		}
		return store.Crns().Create(ctx, crn)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("crn_id", crn.ID).Str("number", crn.Number).Int("items", len(crn.Items)).Str("actor", actor.ID).Msg("CRN creada")
	out := dto.FromCrn(crn)
	return &out, nil
}

// Transfer convierte una CRN en draft en stock. Si está ligada a una orden de compra, avanza la
// línea del mismo SKU respetando recibido + rechazado <= ordenado. Falla si ya fue transferida.
func (uc *CrnUseCase) Transfer(ctx context.Context, actor entity.Actor, crnID string) (*dto.CrnResponse, error) {
	var crn *entity.ContenaReceivingNote
	err := uc.txRunner.Run(ctx, func(store repository.Store) error {
		var err error
		crn, err = store.Crns().GetForUpdate(ctx, crnID)
		if err != nil {
			return err
		}
		if crn == nil {
			return domain.NotFound("crn", "CRN %s no encontrada", crnID)
		}
		if crn.Status == entity.CrnStatusTransferred {
			return domain.Conflict("status", "la CRN %s ya fue transferida", crn.Number)
		}

		posting := appinv.NewPosting(store, entity.TransactionTypeIn, entity.TransactionModeAlacarte, actor,
			fmt.Sprintf("transferencia %s", crn.Number))
		for _, it := range byVariant(crn.Items) {
			if it.ReceivedQty <= 0 {
				continue
			}
			if _, err := posting.InVariant(ctx, it.VariantID, it.ReceivedQty); err != nil {
				return err
			}
		}

		if crn.ProcurementOrderID != nil {
			order, err := lockOrder(ctx, store, *crn.ProcurementOrderID)
			if err != nil {
				return err
			}
			if err := applyToOrder(ctx, store, order, crn.Items); err != nil {
				return err
			}
			if err := promoteOrder(ctx, store, order); err != nil {
				return err
			}
		}

		if _, err := posting.Save(ctx); err != nil {
			return err
		}
		now := uc.now()
		if err := store.Crns().MarkTransferred(ctx, crn.ID, now); err != nil {
			return err
		}
		crn.Status = entity.CrnStatusTransferred
		crn.TransferredAt = &now
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("crn_id", crnID).Msg("transferencia de CRN rechazada")
		return nil, err
	}
	uc.log.Info().Str("crn_id", crn.ID).Str("number", crn.Number).Str("actor", actor.ID).Msg("CRN transferida")
	out := dto.FromCrn(crn)
	return &out, nil
}

// byVariant copia las líneas ordenadas por SKU y variante, el orden en que se bloquean.
func byVariant(items []entity.CrnItem) []entity.CrnItem {
	out := append([]entity.CrnItem(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ItemID != out[j].ItemID {
			return out[i].ItemID < out[j].ItemID
		}
		return out[i].VariantID < out[j].VariantID
	})
	return out
}

// applyToOrder suma lo recibido/rechazado de cada línea de CRN a la línea de la orden con el mismo SKU.
// Las líneas sin contraparte en la orden no la modifican.
func applyToOrder(ctx context.Context, store repository.Store, order *entity.ProcurementOrder, items []entity.CrnItem) error {
	byItem := make(map[string]int, len(order.Lines))
	for i, l := range order.Lines {
		byItem[l.ItemID] = i
	}
	touched := make(map[int]bool)
	for _, it := range items {
		idx, ok := byItem[it.ItemID]
		if !ok {
			continue
		}
		line := &order.Lines[idx]
		if line.ReceivedQuantity+line.RejectedQuantity+it.ReceivedQty+it.RejectedQty > line.OrderedQuantity {
			return domain.Invalid("items", "SKU %s: la recepción supera lo pendiente de la orden %s (%d)",
				it.ItemID, order.Code, line.Remaining())
		}
		line.ReceivedQuantity += it.ReceivedQty
		line.RejectedQuantity += it.RejectedQty
		touched[idx] = true
	}
	for idx := range touched {
		if err := store.ProcurementOrders().UpdateLine(ctx, &order.Lines[idx]); err != nil {
			return err
		}
	}
	return nil
}

func (uc *CrnUseCase) logReceived(crn *entity.ContenaReceivingNote, actor entity.Actor) {
	var orderID string
	if crn.ProcurementOrderID != nil {
		orderID = *crn.ProcurementOrderID
	}
	uc.log.Info().
		Str("crn_id", crn.ID).
		Str("number", crn.Number).
		Str("order_id", orderID).
		Int("items", len(crn.Items)).
		Str("actor", actor.ID).
		Msg("recepción por CRN aplicada")
}

// GetByID obtiene una CRN con sus líneas; (nil, nil) si no existe.
func (uc *CrnUseCase) GetByID(ctx context.Context, id string) (*dto.CrnResponse, error) {
	crn, err := uc.store.Crns().GetByID(ctx, id)
	if err != nil || crn == nil {
		return nil, err
	}
	out := dto.FromCrn(crn)
	return &out, nil
}

// List lista CRN de la más reciente a la más antigua.
func (uc *CrnUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CrnListResponse, error) {
	page.DefaultPage()
	list, err := uc.store.Crns().List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CrnResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.FromCrn(c))
	}
	return &dto.CrnListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
