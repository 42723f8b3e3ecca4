package inventory

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	domaininv "github.com/jhoicas/warehouse-api/internal/domain/inventory"
)

// StockInFromRequest adapta el request HTTP al caso de uso RecordStockIn.
func (uc *LedgerUseCase) StockInFromRequest(ctx context.Context, actor entity.Actor, in dto.StockMovementRequest) (*dto.InventoryTransactionResponse, error) {
	return uc.RecordStockIn(ctx, movementInput(actor, in))
}

// StockOutFromRequest adapta el request HTTP al caso de uso RecordStockOut.
func (uc *LedgerUseCase) StockOutFromRequest(ctx context.Context, actor entity.Actor, in dto.StockMovementRequest) (*dto.InventoryTransactionResponse, error) {
	return uc.RecordStockOut(ctx, movementInput(actor, in))
}

func movementInput(actor entity.Actor, in dto.StockMovementRequest) StockMovementInput {
	lines := make([]domaininv.ItemQuantity, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, domaininv.ItemQuantity{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return StockMovementInput{
		Actor:           actor,
		Mode:            in.Mode,
		PackageID:       in.PackageID,
		PackageQuantity: in.PackageQuantity,
		Lines:           lines,
		SalesOrderID:    in.SalesOrderID,
		Note:            in.Note,
	}
}
