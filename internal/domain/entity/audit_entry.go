package entity

import "time"

// Tipos de asiento en la bitácora del kardex.
const (
	AuditKindIntra   = "intra"   // traslado entre estados del mismo ítem
	AuditKindInter   = "inter"   // traslado de vendible entre variantes hermanas
	AuditKindReceipt = "receipt" // entrada de stock nuevo a un solo estado
)

// AuditEntry es un asiento inmutable de la bitácora: uno por mutación
// confirmada. La bitácora solo admite append; reproducir los asientos de un
// ítem desde cero debe reconstruir exactamente sus cantidades actuales.
type AuditEntry struct {
	// Seq es el orden total de la bitácora (asignado al persistir, monotónico).
	Seq int64
	ID  string
	// TransactionID agrupa los efectos de una misma operación confirmada.
	TransactionID string

	Kind      string // AuditKindIntra | AuditKindInter | AuditKindReceipt
	ProductID string

	// Intra/receipt: ItemID del registro afectado. Inter: variante origen y destino.
	ItemID        string
	FromVariantID string
	ToVariantID   string

	// Intra: estado origen y destino. Receipt: solo ToState.
	FromState string
	ToState   string

	Quantity int64
	Reason   string

	// Versiones resultantes tras el commit (la de destino solo en inter).
	ResultingVersion   int64
	ToResultingVersion int64

	CreatedAt time.Time
	CreatedBy string
}
