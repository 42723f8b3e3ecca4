package memory

import "github.com/jhoicas/warehouse-api/internal/domain/entity"

// Los repositorios devuelven y guardan copias: un caller que modifica una entidad no altera el
// estado hasta que llama al método de escritura correspondiente.

func copyItem(i *entity.Item) *entity.Item {
	c := *i
	if i.Length != nil {
		l := *i.Length
		c.Length = &l
	}
	return &c
}

func copyPackage(p *entity.Package) *entity.Package {
	c := *p
	c.Lines = append([]entity.PackageItem(nil), p.Lines...)
	return &c
}

func copyTransaction(t *entity.InventoryTransaction) *entity.InventoryTransaction {
	c := *t
	c.PackageID = copyPtr(t.PackageID)
	c.PackageQuantity = copyPtr(t.PackageQuantity)
	c.SalesOrderID = copyPtr(t.SalesOrderID)
	c.Lines = append([]entity.InventoryTransactionLine(nil), t.Lines...)
	return &c
}

func copyProcurementOrder(o *entity.ProcurementOrder) *entity.ProcurementOrder {
	c := *o
	c.Lines = append([]entity.ProcurementOrderLine(nil), o.Lines...)
	c.PackageLines = append([]entity.ProcurementOrderPackageLine(nil), o.PackageLines...)
	c.SalesOrderIDs = append([]string(nil), o.SalesOrderIDs...)
	return &c
}

func copyCrn(n *entity.ContenaReceivingNote) *entity.ContenaReceivingNote {
	c := *n
	c.ProcurementOrderID = copyPtr(n.ProcurementOrderID)
	c.TransferredAt = copyPtr(n.TransferredAt)
	c.Items = append([]entity.CrnItem(nil), n.Items...)
	return &c
}

func copySalesOrder(o *entity.SalesOrder) *entity.SalesOrder {
	c := *o
	c.Lines = append([]entity.SalesOrderLine(nil), o.Lines...)
	return &c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
