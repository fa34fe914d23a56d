package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/ledger"
)

// Escenario: {sellable:10} y traslado de 3 sellable -> damaged deja
// {sellable:7, damaged:3} con el total intacto (conservación intra-ítem).
func TestApplyTransfer_ConservaElTotal(t *testing.T) {
	rec := record(10, 0, 0, 0)
	totalBefore := rec.TotalStock()
	versionBefore := rec.Version

	ledger.ApplyTransfer(rec, entity.StateSellable, entity.StateDamaged, 3, time.Now())

	assert.Equal(t, int64(7), rec.Sellable)
	assert.Equal(t, int64(3), rec.Damaged)
	assert.Equal(t, int64(0), rec.Hold)
	assert.Equal(t, int64(0), rec.Transit)
	assert.Equal(t, totalBefore, rec.TotalStock(), "el total no debe cambiar en un traslado intra-ítem")
	assert.Equal(t, versionBefore+1, rec.Version, "la versión debe crecer estrictamente")
}

func TestApplyTransfer_EntreTodosLosEstados(t *testing.T) {
	rec := record(4, 3, 2, 1)
	now := time.Now()

	ledger.ApplyTransfer(rec, entity.StateDamaged, entity.StateTransit, 2, now)
	ledger.ApplyTransfer(rec, entity.StateTransit, entity.StateHold, 3, now)
	ledger.ApplyTransfer(rec, entity.StateHold, entity.StateSellable, 5, now)

	assert.Equal(t, int64(10), rec.TotalStock())
	assert.Equal(t, int64(3), rec.Version)
}

// Escenario: A {sellable:10}, B {sellable:2}, traslado de 4 A -> B deja
// A {sellable:6} y B {sellable:6}; la suma de vendible entre ambas no cambia.
func TestApplyVariantTransfer_ConservaSumaVendible(t *testing.T) {
	from := &entity.StockRecord{ProductID: "prod-1", VariantID: "var-a", Kind: entity.KindVariant, Sellable: 10, Damaged: 1}
	to := &entity.StockRecord{ProductID: "prod-1", VariantID: "var-b", Kind: entity.KindVariant, Sellable: 2, Hold: 5}
	sumBefore := from.Sellable + to.Sellable

	ledger.ApplyVariantTransfer(from, to, 4, time.Now())

	assert.Equal(t, int64(6), from.Sellable)
	assert.Equal(t, int64(6), to.Sellable)
	assert.Equal(t, sumBefore, from.Sellable+to.Sellable)
	// Los demás estados de ambas variantes no se tocan
	assert.Equal(t, int64(1), from.Damaged)
	assert.Equal(t, int64(5), to.Hold)
	assert.Equal(t, int64(1), from.Version)
	assert.Equal(t, int64(1), to.Version)
}

func TestApplyReceipt_SoloIncrementaUnEstado(t *testing.T) {
	rec := record(5, 0, 0, 0)
	ledger.ApplyReceipt(rec, entity.StateTransit, 7, time.Now())

	assert.Equal(t, int64(5), rec.Sellable)
	assert.Equal(t, int64(7), rec.Transit)
	assert.Equal(t, int64(12), rec.TotalStock())
	assert.Equal(t, int64(1), rec.Version)
}
