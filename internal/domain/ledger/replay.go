package ledger

import "github.com/tu-usuario/kardex-api/internal/domain/entity"

// Replay reconstruye las cantidades por estado de un ítem aplicando sus
// asientos de bitácora desde cero, en orden de append. Sirve para conciliar:
// el resultado debe coincidir exactamente con el registro almacenado.
// Asientos inter restan o suman vendible según el ítem sea origen o destino.
func Replay(itemID string, entries []*entity.AuditEntry) *entity.StockRecord {
	rec := &entity.StockRecord{}
	for _, e := range entries {
		switch e.Kind {
		case entity.AuditKindReceipt:
			if e.ItemID == itemID {
				rec.SetBucket(e.ToState, rec.Bucket(e.ToState)+e.Quantity)
			}
		case entity.AuditKindIntra:
			if e.ItemID == itemID {
				rec.SetBucket(e.FromState, rec.Bucket(e.FromState)-e.Quantity)
				rec.SetBucket(e.ToState, rec.Bucket(e.ToState)+e.Quantity)
			}
		case entity.AuditKindInter:
			if e.FromVariantID == itemID {
				rec.Sellable -= e.Quantity
			}
			if e.ToVariantID == itemID {
				rec.Sellable += e.Quantity
			}
		}
	}
	return rec
}

// Matches compara las cantidades reconstruidas con las almacenadas.
// Solo compara los cuatro estados; versión y metadatos quedan fuera.
func Matches(replayed, stored *entity.StockRecord) bool {
	return replayed.Sellable == stored.Sellable &&
		replayed.Damaged == stored.Damaged &&
		replayed.Hold == stored.Hold &&
		replayed.Transit == stored.Transit
}
