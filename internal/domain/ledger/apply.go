package ledger

import (
	"time"

	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// ApplyTransfer mueve quantity unidades de fromState a toState en el mismo
// registro y sube la versión. Asume validación previa: el total del registro
// no cambia (conservación dentro del ítem).
func ApplyTransfer(record *entity.StockRecord, fromState, toState string, quantity int64, now time.Time) {
	record.SetBucket(fromState, record.Bucket(fromState)-quantity)
	record.SetBucket(toState, record.Bucket(toState)+quantity)
	record.Version++
	record.UpdatedAt = now
}

// ApplyVariantTransfer mueve quantity unidades vendibles de la variante origen
// a la destino y sube ambas versiones. La suma de vendible entre ambas no
// cambia; los demás estados no se tocan.
func ApplyVariantTransfer(from, to *entity.StockRecord, quantity int64, now time.Time) {
	from.Sellable -= quantity
	to.Sellable += quantity
	from.Version++
	to.Version++
	from.UpdatedAt = now
	to.UpdatedAt = now
}

// ApplyReceipt suma quantity unidades al estado indicado sin descontar de
// ningún otro (entrada de stock nuevo) y sube la versión.
func ApplyReceipt(record *entity.StockRecord, state string, quantity int64, now time.Time) {
	record.SetBucket(state, record.Bucket(state)+quantity)
	record.Version++
	record.UpdatedAt = now
}
