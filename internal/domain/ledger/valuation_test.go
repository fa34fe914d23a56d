package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/kardex-api/internal/domain/ledger"
)

func TestWeightedAverageCost(t *testing.T) {
	// 10 unidades a 100 + 10 unidades a 200 = promedio 150
	got := ledger.WeightedAverageCost(10, decimal.NewFromInt(100), 10, decimal.NewFromInt(200))
	assert.True(t, got.Equal(decimal.NewFromInt(150)), "esperado 150, got %s", got)
}

func TestWeightedAverageCost_SinStockPrevio(t *testing.T) {
	got := ledger.WeightedAverageCost(0, decimal.Zero, 5, decimal.NewFromFloat(12.5))
	assert.True(t, got.Equal(decimal.NewFromFloat(12.5)))
}

func TestWeightedAverageCost_SinUnidades(t *testing.T) {
	got := ledger.WeightedAverageCost(0, decimal.NewFromInt(100), 0, decimal.NewFromInt(50))
	assert.True(t, got.Equal(decimal.Zero))
}
