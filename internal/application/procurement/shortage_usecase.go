package procurement

import (
	"context"
	"sort"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	domaininv "github.com/jhoicas/warehouse-api/internal/domain/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// ShortageUseCase calcula la propuesta de compra a partir de la demanda abierta de ventas.
// Solo lee: dos llamadas sin escrituras intermedias devuelven lo mismo.
type ShortageUseCase struct {
	store repository.Store
}

// NewShortageUseCase construye el caso de uso de faltantes.
func NewShortageUseCase(store repository.Store) *ShortageUseCase {
	return &ShortageUseCase{store: store}
}

// Suggest devuelve paquetes pendientes, faltante por SKU (demanda - stock) y las órdenes de venta
// que aportan demanda. Solo entran órdenes open/partial sin orden de compra vinculada.
func (uc *ShortageUseCase) Suggest(ctx context.Context) (*dto.ShortageSuggestionResponse, error) {
	lines, err := uc.store.SalesOrders().ListOpenDemandLines(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ShortageSuggestionResponse{
		PackageLines: []dto.ShortagePackageLine{},
		SkuLines:     []dto.ShortageSkuLine{},
		SourceOrders: []dto.ShortageSourceOrder{},
	}
	if len(lines) == 0 {
		return out, nil
	}

	pkgSet := make(map[string]struct{})
	for _, l := range lines {
		pkgSet[l.PackageID] = struct{}{}
	}
	pkgIDs := make([]string, 0, len(pkgSet))
	for id := range pkgSet {
		pkgIDs = append(pkgIDs, id)
	}
	packages, err := uc.store.Packages().GetByIDs(ctx, pkgIDs)
	if err != nil {
		return nil, err
	}
	stock, err := uc.store.Variants().SumStockByItem(ctx)
	if err != nil {
		return nil, err
	}

	shortage := domaininv.ComputeShortage(lines, packages, stock)

	for _, p := range shortage.Packages {
		line := dto.ShortagePackageLine{PackageID: p.PackageID, Quantity: p.Quantity}
		if pkg, ok := packages[p.PackageID]; ok {
			line.Code = pkg.Code
		}
		out.PackageLines = append(out.PackageLines, line)
	}

	itemIDs := make([]string, 0, len(shortage.Items))
	for _, it := range shortage.Items {
		itemIDs = append(itemIDs, it.ItemID)
	}
	items, err := uc.store.Items().GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	for _, it := range shortage.Items {
		line := dto.ShortageSkuLine{
			ItemID:   it.ItemID,
			Demand:   it.Demand,
			Stock:    it.Stock,
			Shortage: it.Shortage,
		}
		if item, ok := items[it.ItemID]; ok {
			line.Code = item.Code
			line.Name = item.Name
		}
		out.SkuLines = append(out.SkuLines, line)
	}
	sort.SliceStable(out.SkuLines, func(i, j int) bool {
		if out.SkuLines[i].Code != out.SkuLines[j].Code {
			return out.SkuLines[i].Code < out.SkuLines[j].Code
		}
		return out.SkuLines[i].ItemID < out.SkuLines[j].ItemID
	})

	for _, id := range shortage.SourceOrderIDs {
		so, err := uc.store.SalesOrders().GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if so == nil {
			continue
		}
		out.SourceOrders = append(out.SourceOrders, dto.ShortageSourceOrder{ID: so.ID, Code: so.Code, Status: so.Status})
	}
	sort.SliceStable(out.SourceOrders, func(i, j int) bool { return out.SourceOrders[i].Code < out.SourceOrders[j].Code })
	return out, nil
}
