package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados (buckets) mutuamente excluyentes del stock de un ítem.
const (
	StateSellable = "sellable" // disponible para venta
	StateDamaged  = "damaged"  // averiado
	StateHold     = "hold"     // retenido (reservas, inspección)
	StateTransit  = "transit"  // en tránsito entre bodegas
)

// States lista los estados válidos en orden canónico.
var States = []string{StateSellable, StateDamaged, StateHold, StateTransit}

// IsValidState indica si s es uno de los cuatro estados del kardex.
func IsValidState(s string) bool {
	switch s {
	case StateSellable, StateDamaged, StateHold, StateTransit:
		return true
	}
	return false
}

// Tipo de registro: producto simple o variante de un producto padre.
const (
	KindRegular = "regular" // producto sin variantes; el item_id es el product_id
	KindVariant = "variant" // variante concreta (talla/color) de un producto
)

// StockRecord representa el kardex de un ítem (producto o variante) con las
// cantidades por estado. VariantID vacío es el registro por defecto de un
// producto sin variantes; el código decide por Kind, nunca comparando el string.
// TotalStock se calcula siempre, nunca se almacena como verdad independiente.
type StockRecord struct {
	ProductID string
	VariantID string
	Kind      string // KindRegular | KindVariant

	Sellable int64
	Damaged  int64
	Hold     int64
	Transit  int64

	ReorderLevel int64
	Warehouse    string
	Location     string

	// UnitCost es el costo promedio ponderado del ítem, recalculado en cada
	// entrada de stock vendible con costo declarado.
	UnitCost decimal.Decimal

	// Version crece estrictamente en cada mutación confirmada (concurrencia optimista).
	Version   int64
	UpdatedAt time.Time
}

// ItemID devuelve el identificador del ítem: la variante, o el producto si es regular.
func (r *StockRecord) ItemID() string {
	if r.Kind == KindVariant {
		return r.VariantID
	}
	return r.ProductID
}

// Bucket devuelve la cantidad en el estado indicado (0 si el estado no existe).
func (r *StockRecord) Bucket(state string) int64 {
	switch state {
	case StateSellable:
		return r.Sellable
	case StateDamaged:
		return r.Damaged
	case StateHold:
		return r.Hold
	case StateTransit:
		return r.Transit
	}
	return 0
}

// SetBucket fija la cantidad del estado indicado.
func (r *StockRecord) SetBucket(state string, qty int64) {
	switch state {
	case StateSellable:
		r.Sellable = qty
	case StateDamaged:
		r.Damaged = qty
	case StateHold:
		r.Hold = qty
	case StateTransit:
		r.Transit = qty
	}
}

// TotalStock suma los cuatro estados. Derivado, nunca persistido.
func (r *StockRecord) TotalStock() int64 {
	return r.Sellable + r.Damaged + r.Hold + r.Transit
}

// IsLow indica si el stock vendible está en o por debajo del punto de reorden.
// Proyección consultiva: puede evaluarse sobre un snapshot sin bloqueo.
func (r *StockRecord) IsLow() bool {
	return r.Sellable <= r.ReorderLevel
}

// IsOut indica si no queda stock vendible.
func (r *StockRecord) IsOut() bool {
	return r.Sellable == 0
}
