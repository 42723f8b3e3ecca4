package inventory

import (
	"math"
	"sort"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// PackageDemand paquetes pendientes de despachar, acumulados por paquete.
type PackageDemand struct {
	PackageID string
	Quantity  int64
}

// ItemShortage demanda, stock y faltante por SKU.
type ItemShortage struct {
	ItemID   string
	Demand   int64
	Stock    int64
	Shortage int64
}

// Shortage resultado del cálculo de faltantes. Es exactamente lo que consume la creación de un borrador de compra.
type Shortage struct {
	Packages       []PackageDemand
	Items          []ItemShortage
	SourceOrderIDs []string
}

// ComputeShortage agrega la demanda abierta de las líneas de venta, la expande por la lista de
// materiales de cada paquete y la compara contra el stock actual por SKU.
// Los SKUs sin faltante se descartan. El resultado está ordenado por id para ser determinista.
func ComputeShortage(
	lines []entity.SalesOrderLine,
	packages map[string]*entity.Package,
	stockByItem map[string]int64,
) *Shortage {
	packageDemand := make(map[string]int64)
	itemDemand := make(map[string]int64)
	sources := make(map[string]struct{})

	for _, l := range lines {
		remaining := l.Remaining()
		if remaining == 0 {
			continue
		}
		packageDemand[l.PackageID] = addSaturated(packageDemand[l.PackageID], remaining)
		sources[l.SalesOrderID] = struct{}{}
		pkg, ok := packages[l.PackageID]
		if !ok || pkg == nil {
			continue
		}
		scaled, err := ScaleLines(pkg.Lines, remaining)
		if err != nil {
			for _, pl := range pkg.Lines {
				itemDemand[pl.ItemID] = math.MaxInt64
			}
			continue
		}
		for _, iq := range scaled {
			itemDemand[iq.ItemID] = addSaturated(itemDemand[iq.ItemID], iq.Quantity)
		}
	}

	out := &Shortage{
		Packages:       make([]PackageDemand, 0, len(packageDemand)),
		Items:          make([]ItemShortage, 0, len(itemDemand)),
		SourceOrderIDs: make([]string, 0, len(sources)),
	}
	for id, q := range packageDemand {
		out.Packages = append(out.Packages, PackageDemand{PackageID: id, Quantity: q})
	}
	for id, demand := range itemDemand {
		stock := stockByItem[id]
		shortage := demand - stock
		if shortage <= 0 {
			continue
		}
		out.Items = append(out.Items, ItemShortage{ItemID: id, Demand: demand, Stock: stock, Shortage: shortage})
	}
	for id := range sources {
		out.SourceOrderIDs = append(out.SourceOrderIDs, id)
	}

	sort.Slice(out.Packages, func(i, j int) bool { return out.Packages[i].PackageID < out.Packages[j].PackageID })
	sort.Slice(out.Items, func(i, j int) bool { return out.Items[i].ItemID < out.Items[j].ItemID })
	sort.Strings(out.SourceOrderIDs)
	return out
}

// addSaturated suma cantidades no negativas; el resultado se queda en math.MaxInt64 en vez de desbordar.
func addSaturated(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
