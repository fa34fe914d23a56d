package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de la bitácora sobre PostgreSQL (usable con
// pool o tx). La tabla stock_audit solo recibe INSERT; el bigserial seq da el
// orden total de la bitácora.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Append persiste un asiento y devuelve el seq asignado por la secuencia.
func (r *AuditLogRepo) Append(ctx context.Context, entry *entity.AuditEntry) (int64, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_audit (id, transaction_id, kind, product_id, item_id,
			from_variant_id, to_variant_id, from_state, to_state, quantity, reason,
			resulting_version, to_resulting_version, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING seq`
	createdBy := (*string)(nil)
	if entry.CreatedBy != "" {
		createdBy = &entry.CreatedBy
	}
	err := r.q.QueryRow(ctx, query,
		entry.ID, entry.TransactionID, entry.Kind, entry.ProductID, entry.ItemID,
		entry.FromVariantID, entry.ToVariantID, entry.FromState, entry.ToState,
		entry.Quantity, entry.Reason, entry.ResultingVersion, entry.ToResultingVersion,
		entry.CreatedAt, createdBy,
	).Scan(&entry.Seq)
	if err != nil {
		return 0, fmt.Errorf("append audit entry: %w", err)
	}
	return entry.Seq, nil
}

// ListByItem devuelve los asientos que afectan a un ítem (como ítem directo
// o como extremo de un traslado entre variantes), del más antiguo al más
// reciente. limit <= 0 trae la bitácora completa (conciliación).
func (r *AuditLogRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.AuditEntry, error) {
	query := `
		SELECT seq, id, transaction_id, kind, product_id, item_id,
			from_variant_id, to_variant_id, from_state, to_state, quantity, reason,
			resulting_version, to_resulting_version, created_at, created_by
		FROM stock_audit
		WHERE item_id = $1 OR from_variant_id = $1 OR to_variant_id = $1
		ORDER BY seq ASC`
	args := []any{itemID}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	return collectAuditEntries(rows)
}

func collectAuditEntries(rows pgx.Rows) ([]*entity.AuditEntry, error) {
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		var createdBy *string
		if err := rows.Scan(
			&e.Seq, &e.ID, &e.TransactionID, &e.Kind, &e.ProductID, &e.ItemID,
			&e.FromVariantID, &e.ToVariantID, &e.FromState, &e.ToState,
			&e.Quantity, &e.Reason, &e.ResultingVersion, &e.ToResultingVersion,
			&e.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
