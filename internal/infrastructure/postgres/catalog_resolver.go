package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/kardex-api/internal/application/ledger"
)

var _ ledger.CatalogResolver = (*CatalogResolver)(nil)

// CatalogResolver resuelve ítems contra la tabla catalog_items, mantenida por
// la aplicación de catálogo. El kardex solo la lee; los productos regulares
// figuran con item_id = product_id.
type CatalogResolver struct {
	q Querier
}

// NewCatalogResolver construye el resolver sobre el pool.
func NewCatalogResolver(q Querier) *CatalogResolver {
	return &CatalogResolver{q: q}
}

// ProductOf devuelve el producto dueño del ítem, o "" si el catálogo no lo conoce.
func (r *CatalogResolver) ProductOf(ctx context.Context, itemID string) (string, error) {
	query := `SELECT product_id FROM catalog_items WHERE item_id = $1`
	var productID string
	err := r.q.QueryRow(ctx, query, itemID).Scan(&productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("resolve product of item: %w", err)
	}
	return productID, nil
}

// VariantsOfProduct devuelve los item_id del producto en orden estable.
func (r *CatalogResolver) VariantsOfProduct(ctx context.Context, productID string) ([]string, error) {
	query := `SELECT item_id FROM catalog_items WHERE product_id = $1 ORDER BY item_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("resolve variants of product: %w", err)
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		items = append(items, id)
	}
	return items, rows.Err()
}
