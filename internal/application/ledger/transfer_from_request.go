package ledger

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/application/dto"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// TransferFromRequest adapta el request HTTP al caso de uso TransferWithinItem.
// Usar desde handlers que ya tengan el userID del token.
func (uc *TransferUseCase) TransferFromRequest(ctx context.Context, userID string, in dto.TransferRequest) (*entity.StockRecord, error) {
	return uc.TransferWithinItem(ctx, TransferInput{
		ItemID:          in.ItemID,
		FromState:       in.FromState,
		ToState:         in.ToState,
		Quantity:        in.Quantity,
		Reason:          in.Reason,
		ExpectedVersion: in.ExpectedVersion,
		UserID:          userID,
	})
}

// VariantTransferFromRequest adapta el request HTTP a TransferBetweenVariants.
func (uc *TransferUseCase) VariantTransferFromRequest(ctx context.Context, userID string, in dto.VariantTransferRequest) (*entity.StockRecord, *entity.StockRecord, error) {
	return uc.TransferBetweenVariants(ctx, VariantTransferInput{
		FromVariantID:       in.FromVariantID,
		ToVariantID:         in.ToVariantID,
		Quantity:            in.Quantity,
		Reason:              in.Reason,
		FromExpectedVersion: in.FromExpectedVersion,
		ToExpectedVersion:   in.ToExpectedVersion,
		UserID:              userID,
	})
}

// ReceiptFromRequest adapta el request HTTP a AddNewStock.
func (uc *TransferUseCase) ReceiptFromRequest(ctx context.Context, userID string, in dto.ReceiptRequest) (*entity.StockRecord, error) {
	return uc.AddNewStock(ctx, ReceiptInput{
		ProductID:    in.ProductID,
		VariantID:    in.VariantID,
		State:        in.State,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		UnitCost:     in.UnitCost,
		Warehouse:    in.Warehouse,
		Location:     in.Location,
		ReorderLevel: in.ReorderLevel,
		UserID:       userID,
	})
}
