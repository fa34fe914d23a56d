package ledger

import (
	"context"

	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que validar + mutar + asentar en la
// bitácora sea todo-o-nada: ninguna mutación parcial sobrevive a un fallo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}

// CatalogResolver es el colaborador de catálogo, consumido y nunca
// implementado por el kardex. La resolución ocurre antes de tomar bloqueos:
// ningún lock se sostiene a través de esta frontera.
type CatalogResolver interface {
	// ProductOf devuelve el producto dueño de un ítem ("" si no existe).
	ProductOf(ctx context.Context, itemID string) (string, error)
	// VariantsOfProduct devuelve los item_id que pertenecen a un producto.
	VariantsOfProduct(ctx context.Context, productID string) ([]string, error)
}
