package ledger

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	domledger "github.com/tu-usuario/kardex-api/internal/domain/ledger"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// ReconcileUseCase concilia un ítem contra su bitácora: reproduce todos sus
// asientos desde cero y compara el resultado con el registro almacenado.
// Herramienta de investigación; no muta nada.
type ReconcileUseCase struct {
	stockRepo repository.StockRecordRepository
	auditRepo repository.AuditLogRepository
}

// NewReconcileUseCase construye el conciliador.
func NewReconcileUseCase(
	stockRepo repository.StockRecordRepository,
	auditRepo repository.AuditLogRepository,
) *ReconcileUseCase {
	return &ReconcileUseCase{stockRepo: stockRepo, auditRepo: auditRepo}
}

// ReconcileResult resultado de la conciliación de un ítem.
type ReconcileResult struct {
	ItemID     string
	Entries    int
	Consistent bool
	Stored     *entity.StockRecord
	Replayed   *entity.StockRecord
}

// Reconcile reproduce la bitácora del ítem y la compara con lo almacenado.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, itemID string) (*ReconcileResult, error) {
	stored, err := uc.stockRepo.GetByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.ErrItemNotFound
	}
	// limit 0 = sin límite: la conciliación necesita la bitácora completa
	entries, err := uc.auditRepo.ListByItem(ctx, itemID, 0, 0)
	if err != nil {
		return nil, err
	}
	replayed := domledger.Replay(itemID, entries)
	return &ReconcileResult{
		ItemID:     itemID,
		Entries:    len(entries),
		Consistent: domledger.Matches(replayed, stored),
		Stored:     stored,
		Replayed:   replayed,
	}, nil
}

// AuditTrail devuelve los asientos de un ítem del más antiguo al más reciente.
func (uc *ReconcileUseCase) AuditTrail(ctx context.Context, itemID string, limit, offset int) ([]*entity.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.auditRepo.ListByItem(ctx, itemID, limit, offset)
}
