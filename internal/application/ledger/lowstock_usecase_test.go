package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/kardex-api/internal/application/ledger"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// Solo el saldo vendible cuenta para el punto de reorden; damaged/hold/transit
// no rescatan a un ítem de la lista.
func TestListLowStock_SoloVendibleCuenta(t *testing.T) {
	f := newFixture()
	f.catalog.register("prod-bajo", "prod-bajo")
	f.catalog.register("prod-ok", "prod-ok")
	f.store.seed(&entity.StockRecord{
		ProductID: "prod-bajo", Kind: entity.KindRegular,
		Sellable: 2, Hold: 50, ReorderLevel: 5, Version: 1,
	})
	f.store.seed(&entity.StockRecord{
		ProductID: "prod-ok", Kind: entity.KindRegular,
		Sellable: 20, ReorderLevel: 5, Version: 1,
	})

	uc := ledger.NewLowStockUseCase(&fakeStockRepo{store: f.store})
	records, err := uc.ListLowStock(context.Background(), -1, 100, 0)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "prod-bajo", records[0].ItemID())
	assert.True(t, records[0].IsLow())
}

// En el límite exacto (vendible == punto de reorden) el ítem ya es bajo stock.
func TestListLowStock_LimiteInclusivo(t *testing.T) {
	f := newFixture()
	f.store.seed(&entity.StockRecord{
		ProductID: "prod-1", Kind: entity.KindRegular,
		Sellable: 5, ReorderLevel: 5, Version: 1,
	})

	uc := ledger.NewLowStockUseCase(&fakeStockRepo{store: f.store})
	records, err := uc.ListLowStock(context.Background(), -1, 100, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// Un umbral global >= 0 reemplaza el punto de reorden de cada registro.
func TestListLowStock_UmbralGlobal(t *testing.T) {
	f := newFixture()
	f.store.seed(&entity.StockRecord{
		ProductID: "prod-1", Kind: entity.KindRegular,
		Sellable: 8, ReorderLevel: 3, Version: 1,
	})

	uc := ledger.NewLowStockUseCase(&fakeStockRepo{store: f.store})

	records, err := uc.ListLowStock(context.Background(), 10, 100, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1, "con umbral 10 el ítem con 8 vendibles es bajo stock")

	records, err = uc.ListLowStock(context.Background(), 5, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, records, "con umbral 5 el ítem con 8 vendibles no aplica")
}
