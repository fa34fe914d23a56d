package repository

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// StockRecordRepository define el puerto de persistencia del kardex (DIP).
// Las escrituras ocurren únicamente dentro de la transacción del ejecutor;
// no hay escritores externos directos.
type StockRecordRepository interface {
	// Get obtiene el registro por producto y variante (variantID vacío =
	// registro por defecto). Devuelve nil, nil si no existe.
	Get(ctx context.Context, productID, variantID string) (*entity.StockRecord, error)

	// GetByItem obtiene el registro por item_id (variante, o producto regular).
	// Devuelve nil, nil si no existe.
	GetByItem(ctx context.Context, itemID string) (*entity.StockRecord, error)

	// GetByItemForUpdate bloquea la fila (SELECT FOR UPDATE) y la devuelve.
	// Solo tiene sentido dentro de una transacción.
	GetByItemForUpdate(ctx context.Context, itemID string) (*entity.StockRecord, error)

	// Upsert inserta o actualiza el registro completo.
	Upsert(ctx context.Context, record *entity.StockRecord) error

	// CreateIfAbsent inserta el registro solo si aún no existe (ON CONFLICT
	// DO NOTHING) y devuelve si esta transacción ganó el insert. Si otra
	// transacción está insertando la misma fila, espera a que confirme y
	// devuelve false: el caller debe releer con bloqueo y aplicar sobre la
	// fila ganadora.
	CreateIfAbsent(ctx context.Context, record *entity.StockRecord) (bool, error)

	// ListLowStock devuelve los registros con vendible <= su punto de reorden,
	// o <= threshold si threshold >= 0 (override global).
	ListLowStock(ctx context.Context, threshold int64, limit, offset int) ([]*entity.StockRecord, error)

	// ListByProduct lista los registros (variantes) de un producto.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockRecord, error)
}
