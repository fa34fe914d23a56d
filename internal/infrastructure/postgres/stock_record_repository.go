package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación de StockRecordRepository sobre PostgreSQL
// (usable con pool o tx). La tabla stock_records guarda los cuatro estados;
// el total nunca se persiste, se deriva al leer quien lo necesite.
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

const stockRecordColumns = `product_id, variant_id, kind, sellable, damaged, hold, transit,
		reorder_level, warehouse, location, unit_cost, version, updated_at`

func scanStockRecord(row pgx.Row) (*entity.StockRecord, error) {
	var r entity.StockRecord
	err := row.Scan(
		&r.ProductID, &r.VariantID, &r.Kind, &r.Sellable, &r.Damaged, &r.Hold, &r.Transit,
		&r.ReorderLevel, &r.Warehouse, &r.Location, &r.UnitCost, &r.Version, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Get obtiene el registro por producto y variante. nil, nil si no existe.
func (repo *StockRecordRepo) Get(ctx context.Context, productID, variantID string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE product_id = $1 AND variant_id = $2`
	rec, err := scanStockRecord(repo.q.QueryRow(ctx, query, productID, variantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return rec, nil
}

// GetByItem obtiene el registro por item_id. nil, nil si no existe.
func (repo *StockRecordRepo) GetByItem(ctx context.Context, itemID string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE item_id = $1`
	rec, err := scanStockRecord(repo.q.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record by item: %w", err)
	}
	return rec, nil
}

// GetByItemForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
// La fila es la unidad de exclusión mutua del kardex.
func (repo *StockRecordRepo) GetByItemForUpdate(ctx context.Context, itemID string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE item_id = $1
		FOR UPDATE`
	rec, err := scanStockRecord(repo.q.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record for update: %w", err)
	}
	return rec, nil
}

// Upsert inserta o actualiza el registro completo (por producto y variante).
func (repo *StockRecordRepo) Upsert(ctx context.Context, record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (product_id, variant_id, kind, item_id, sellable, damaged, hold, transit,
			reorder_level, warehouse, location, unit_cost, version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (product_id, variant_id)
		DO UPDATE SET sellable = EXCLUDED.sellable, damaged = EXCLUDED.damaged,
			hold = EXCLUDED.hold, transit = EXCLUDED.transit,
			reorder_level = EXCLUDED.reorder_level, warehouse = EXCLUDED.warehouse,
			location = EXCLUDED.location, unit_cost = EXCLUDED.unit_cost,
			version = EXCLUDED.version, updated_at = EXCLUDED.updated_at`
	_, err := repo.q.Exec(ctx, query,
		record.ProductID, record.VariantID, record.Kind, record.ItemID(),
		record.Sellable, record.Damaged, record.Hold, record.Transit,
		record.ReorderLevel, record.Warehouse, record.Location,
		record.UnitCost, record.Version, record.UpdatedAt,
	)
	if err != nil {
		// Índice único sobre item_id: dos (producto, variante) distintos no
		// pueden reclamar el mismo ítem.
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("upsert stock record: %w", err)
	}
	return nil
}

// CreateIfAbsent inserta el registro si no existe. Si otra transacción está
// insertando la misma fila, el INSERT espera su commit y el DO NOTHING
// devuelve cero filas: esta transacción no ganó y debe releer con bloqueo.
func (repo *StockRecordRepo) CreateIfAbsent(ctx context.Context, record *entity.StockRecord) (bool, error) {
	query := `
		INSERT INTO stock_records (product_id, variant_id, kind, item_id, sellable, damaged, hold, transit,
			reorder_level, warehouse, location, unit_cost, version, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (product_id, variant_id) DO NOTHING`
	tag, err := repo.q.Exec(ctx, query,
		record.ProductID, record.VariantID, record.Kind, record.ItemID(),
		record.Sellable, record.Damaged, record.Hold, record.Transit,
		record.ReorderLevel, record.Warehouse, record.Location,
		record.UnitCost, record.Version, record.UpdatedAt,
	)
	if err != nil {
		// Índice único sobre item_id: el ítem ya pertenece a otro (producto, variante)
		if isUniqueViolation(err) {
			return false, domain.ErrInvalidInput
		}
		return false, fmt.Errorf("create stock record: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListLowStock devuelve los registros con vendible <= punto de reorden
// (o <= threshold con threshold >= 0), menor vendible primero. Lectura sin
// bloqueo: snapshot consultivo.
func (repo *StockRecordRepo) ListLowStock(ctx context.Context, threshold int64, limit, offset int) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE sellable <= reorder_level`
	args := []any{}
	if threshold >= 0 {
		query = `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE sellable <= $1`
		args = append(args, threshold)
	}
	query += fmt.Sprintf(" ORDER BY sellable ASC, product_id, variant_id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repo.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return collectStockRecords(rows)
}

// ListByProduct lista los registros (variantes) de un producto.
func (repo *StockRecordRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE product_id = $1
		ORDER BY variant_id`
	rows, err := repo.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	return collectStockRecords(rows)
}

func collectStockRecords(rows pgx.Rows) ([]*entity.StockRecord, error) {
	var list []*entity.StockRecord
	for rows.Next() {
		var r entity.StockRecord
		if err := rows.Scan(
			&r.ProductID, &r.VariantID, &r.Kind, &r.Sellable, &r.Damaged, &r.Hold, &r.Transit,
			&r.ReorderLevel, &r.Warehouse, &r.Location, &r.UnitCost, &r.Version, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &r)
	}
	return list, rows.Err()
}
