package repository

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// AuditLogRepository define el puerto de la bitácora del kardex.
// Solo append y lectura: no existen operaciones de update ni delete.
type AuditLogRepository interface {
	// Append persiste un asiento y devuelve su Seq (orden total de la
	// bitácora, monotónico) ya asignado.
	Append(ctx context.Context, entry *entity.AuditEntry) (int64, error)

	// ListByItem devuelve los asientos que afectan a un ítem, del más antiguo
	// al más reciente (orden de append = orden causal).
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.AuditEntry, error)
}
