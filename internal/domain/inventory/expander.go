package inventory

import (
	"math"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// MaxQuantity tope de unidades por SKU en un movimiento, una línea de orden o de paquete.
const MaxQuantity int64 = 1_000_000_000

// ItemQuantity cantidad de un SKU resultante de expandir un paquete o de una línea a la carta.
type ItemQuantity struct {
	ItemID   string
	Quantity int64
}

// ExpandPackage convierte (paquete, multiplicador) en líneas por SKU (servicio de dominio, puro).
// El paquete debe existir, estar activo y tener al menos una línea; multiplier debe ser > 0 y
// ninguna línea expandida puede superar MaxQuantity.
func ExpandPackage(pkg *entity.Package, multiplier int64) ([]ItemQuantity, error) {
	if pkg == nil {
		return nil, domain.Invalid("package_id", "paquete no encontrado")
	}
	if multiplier <= 0 {
		return nil, domain.Invalid("package_quantity", "la cantidad de paquetes debe ser mayor a cero")
	}
	if !pkg.Active {
		return nil, domain.Invalid("package_id", "el paquete %s está inactivo", pkg.Code)
	}
	if len(pkg.Lines) == 0 {
		return nil, domain.Invalid("package_id", "el paquete %s no tiene SKUs", pkg.Code)
	}
	for _, l := range pkg.Lines {
		if l.Quantity > 0 && multiplier > MaxQuantity/l.Quantity {
			return nil, domain.Invalid("package_quantity",
				"%d paquetes %s superan el máximo de %d unidades por SKU", multiplier, pkg.Code, MaxQuantity)
		}
	}
	return ScaleLines(pkg.Lines, multiplier)
}

// ScaleLines multiplica la lista de materiales sin validar el estado del paquete.
// Lo usa el cálculo de faltantes, donde la demanda ya existe aunque el paquete se haya desactivado.
// Falla si algún producto no cabe en int64.
func ScaleLines(lines []entity.PackageItem, multiplier int64) ([]ItemQuantity, error) {
	out := make([]ItemQuantity, 0, len(lines))
	for _, l := range lines {
		if l.Quantity > 0 && multiplier > math.MaxInt64/l.Quantity {
			return nil, domain.Invalid("package_quantity", "la cantidad expandida del SKU %s desborda", l.ItemID)
		}
		out = append(out, ItemQuantity{ItemID: l.ItemID, Quantity: l.Quantity * multiplier})
	}
	return out, nil
}

// MergeByItem suma cantidades repetidas del mismo SKU conservando el orden de primera aparición.
// Rechaza líneas o sumas por encima de MaxQuantity.
func MergeByItem(lines []ItemQuantity) ([]ItemQuantity, error) {
	idx := make(map[string]int, len(lines))
	out := make([]ItemQuantity, 0, len(lines))
	for _, l := range lines {
		if l.Quantity > MaxQuantity {
			return nil, domain.Invalid("lines", "SKU %s: %d supera el máximo de %d unidades", l.ItemID, l.Quantity, MaxQuantity)
		}
		if i, ok := idx[l.ItemID]; ok {
			if out[i].Quantity+l.Quantity > MaxQuantity {
				return nil, domain.Invalid("lines", "SKU %s: la suma supera el máximo de %d unidades", l.ItemID, MaxQuantity)
			}
			out[i].Quantity += l.Quantity
			continue
		}
		idx[l.ItemID] = len(out)
		out = append(out, l)
	}
	return out, nil
}
