package ledger

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// LowStockUseCase proyección de bajo stock: lee un snapshot sin bloqueo.
// El resultado puede quedar obsoleto al instante; es consultivo, nunca una
// compuerta de mutación.
type LowStockUseCase struct {
	stockRepo repository.StockRecordRepository
}

// NewLowStockUseCase construye la proyección.
func NewLowStockUseCase(stockRepo repository.StockRecordRepository) *LowStockUseCase {
	return &LowStockUseCase{stockRepo: stockRepo}
}

// ListLowStock devuelve los registros con vendible en o por debajo de su punto
// de reorden. threshold >= 0 reemplaza el punto de reorden de cada registro
// por un umbral global.
func (uc *LowStockUseCase) ListLowStock(ctx context.Context, threshold int64, limit, offset int) ([]*entity.StockRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.stockRepo.ListLowStock(ctx, threshold, limit, offset)
}
