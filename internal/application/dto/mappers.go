package dto

import "github.com/jhoicas/warehouse-api/internal/domain/entity"

// FromItem convierte la entidad a respuesta HTTP.
func FromItem(i *entity.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Code:        i.Code,
		Name:        i.Name,
		UnitMeasure: i.UnitMeasure,
		Length:      i.Length,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func FromVariant(v *entity.Variant) VariantResponse {
	return VariantResponse{
		ID:           v.ID,
		ItemID:       v.ItemID,
		Color:        v.Kind.Color(),
		IsDefault:    v.Kind.IsDefault(),
		StockInitial: v.StockInitial,
		StockCurrent: v.StockCurrent,
	}
}

func FromPackage(p *entity.Package) PackageResponse {
	lines := make([]PackageLineResponse, 0, len(p.Lines))
	for _, l := range p.Lines {
		lines = append(lines, PackageLineResponse{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return PackageResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Active:    p.Active,
		Lines:     lines,
		CreatedAt: p.CreatedAt,
	}
}

func FromTransaction(t *entity.InventoryTransaction) InventoryTransactionResponse {
	lines := make([]InventoryTransactionLineResponse, 0, len(t.Lines))
	for _, l := range t.Lines {
		lines = append(lines, InventoryTransactionLineResponse{
			ID:        l.ID,
			ItemID:    l.ItemID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
		})
	}
	return InventoryTransactionResponse{
		ID:              t.ID,
		Type:            t.Type,
		Mode:            t.Mode,
		PackageID:       t.PackageID,
		PackageQuantity: t.PackageQuantity,
		SalesOrderID:    t.SalesOrderID,
		CreatedBy:       t.CreatedBy,
		Note:            t.Note,
		CreatedAt:       t.CreatedAt,
		Lines:           lines,
	}
}

func FromProcurementOrder(o *entity.ProcurementOrder) ProcurementOrderResponse {
	lines := make([]ProcurementOrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, ProcurementOrderLineResponse{
			ID:                l.ID,
			ItemID:            l.ItemID,
			SuggestedQuantity: l.SuggestedQuantity,
			OrderedQuantity:   l.OrderedQuantity,
			ReceivedQuantity:  l.ReceivedQuantity,
			RejectedQuantity:  l.RejectedQuantity,
		})
	}
	pkgLines := make([]ProcurementPackageLineResponse, 0, len(o.PackageLines))
	for _, l := range o.PackageLines {
		pkgLines = append(pkgLines, ProcurementPackageLineResponse{PackageID: l.PackageID, Quantity: l.Quantity})
	}
	sources := o.SalesOrderIDs
	if sources == nil {
		sources = []string{}
	}
	return ProcurementOrderResponse{
		ID:             o.ID,
		Code:           o.Code,
		Status:         o.Status,
		Note:           o.Note,
		CreatedBy:      o.CreatedBy,
		Lines:          lines,
		PackageLines:   pkgLines,
		SourceOrderIDs: sources,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func FromCrn(c *entity.ContenaReceivingNote) CrnResponse {
	items := make([]CrnItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, CrnItemResponse{
			ID:              it.ID,
			VariantID:       it.VariantID,
			ItemID:          it.ItemID,
			ExpectedQty:     it.ExpectedQty,
			ReceivedQty:     it.ReceivedQty,
			RejectedQty:     it.RejectedQty,
			RejectionReason: it.RejectionReason,
		})
	}
	return CrnResponse{
		ID:                 c.ID,
		Number:             c.Number,
		Status:             c.Status,
		ProcurementOrderID: c.ProcurementOrderID,
		Note:               c.Note,
		CreatedBy:          c.CreatedBy,
		TransferredAt:      c.TransferredAt,
		Items:              items,
		CreatedAt:          c.CreatedAt,
	}
}

func FromSalesOrder(o *entity.SalesOrder) SalesOrderResponse {
	lines := make([]SalesOrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, SalesOrderLineResponse{
			ID:              l.ID,
			PackageID:       l.PackageID,
			PackageQuantity: l.PackageQuantity,
			ShippedQuantity: l.ShippedQuantity,
		})
	}
	return SalesOrderResponse{
		ID:           o.ID,
		Code:         o.Code,
		CustomerName: o.CustomerName,
		OrderDate:    o.OrderDate.Format("2006-01-02"),
		Status:       o.Status,
		CreatedBy:    o.CreatedBy,
		Lines:        lines,
		CreatedAt:    o.CreatedAt,
	}
}
