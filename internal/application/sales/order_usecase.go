package sales

import (
	"context"
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

// OrderUseCase alta y consulta de órdenes de venta por paquetes.
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
		log:      log.With().Str("component", "sales").Logger(),
	}
}

// Submit crea una orden en estado open. Paquetes repetidos se acumulan en una sola línea.
func (uc *OrderUseCase) Submit(ctx context.Context, actor entity.Actor, in dto.SubmitSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	if in.CustomerName == "" {
		return nil, domain.Invalid("customer_name", "el cliente es requerido")
	}
	orderDate, err := time.Parse("2006-01-02", in.OrderDate)
	if err != nil {
		return nil, domain.Invalid("order_date", "fecha inválida %q, formato YYYY-MM-DD", in.OrderDate)
	}
	if len(in.Lines) == 0 {
		return nil, domain.Invalid("lines", "se requiere al menos una línea")
	}

	now := time.Now()
	order := &entity.SalesOrder{
		ID:           uuid.New().String(),
		Code:         appinv.DocumentCode(appinv.PrefixSalesOrder, now),
		CustomerName: in.CustomerName,
		OrderDate:    orderDate,
		Status:       entity.SalesStatusOpen,
		CreatedBy:    actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(store repository.Store) error {
		ids := make([]string, 0, len(in.Lines))
		for _, l := range in.Lines {
			ids = append(ids, l.PackageID)
		}
		pkgs, err := store.Packages().GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byPackage := make(map[string]int)
		for i, l := range in.Lines {
			if l.PackageQuantity <= 0 || l.PackageQuantity > domaininv.MaxQuantity {
				return domain.Invalid("lines", "línea %d: la cantidad de paquetes debe estar entre 1 y %d", i+1, domaininv.MaxQuantity)
			}
			pkg, ok := pkgs[l.PackageID]
			if !ok {
				return domain.Invalid("lines", "línea %d: paquete %s no existe", i+1, l.PackageID)
			}
			if !pkg.Active {
				return domain.Invalid("lines", "línea %d: paquete %s inactivo", i+1, pkg.Code)
			}
			if idx, dup := byPackage[l.PackageID]; dup {
				if order.Lines[idx].PackageQuantity+l.PackageQuantity > domaininv.MaxQuantity {
					return domain.Invalid("lines", "línea %d: la suma del paquete %s supera %d", i+1, pkg.Code, domaininv.MaxQuantity)
				}
				order.Lines[idx].PackageQuantity += l.PackageQuantity
				continue
			}
			byPackage[l.PackageID] = len(order.Lines)
			order.Lines = append(order.Lines, entity.SalesOrderLine{
				ID:              uuid.New().String(),
				SalesOrderID:    order.ID,
				PackageID:       l.PackageID,
				PackageQuantity: l.PackageQuantity,
			})
		}
		return store.SalesOrders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("sales_order_id", order.ID).Str("code", order.Code).Int("lines", len(order.Lines)).Str("actor", actor.ID).Msg("orden de venta creada")
	out := dto.FromSalesOrder(order)
	return &out, nil
}

// GetByID obtiene una orden de venta; (nil, nil) si no existe.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.SalesOrderResponse, error) {
	order, err := uc.store.SalesOrders().GetByID(ctx, id)
	if err != nil || order == nil {
		return nil, err
	}
	out := dto.FromSalesOrder(order)
	return &out, nil
}

// List lista órdenes de venta; status vacío no filtra.
func (uc *OrderUseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.SalesOrderListResponse, error) {
	switch status {
	case "", entity.SalesStatusOpen, entity.SalesStatusPartial, entity.SalesStatusFulfilled:
	default:
		return nil, domain.Invalid("status", "estado desconocido: %s", status)
	}
	page.DefaultPage()
	list, err := uc.store.SalesOrders().List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.FromSalesOrder(o))
	}
	return &dto.SalesOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
