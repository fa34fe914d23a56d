package ledger

import (
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// ValidateTransfer verifica un traslado entre estados del mismo ítem contra el
// estado actual del registro. Pura, sin efectos: el ejecutor la corre de nuevo
// dentro de la sección atómica con la fila bloqueada, para cerrar la ventana
// entre chequeo y commit.
// Orden de chequeos: cantidad > 0, estados distintos y válidos, stock suficiente.
func ValidateTransfer(record *entity.StockRecord, fromState, toState string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !entity.IsValidState(fromState) || !entity.IsValidState(toState) {
		return domain.ErrInvalidInput
	}
	if fromState == toState {
		return domain.ErrNoOpTransfer
	}
	if record.Bucket(fromState) < quantity {
		return domain.ErrInsufficientStock
	}
	return nil
}

// ValidateVariantTransfer verifica un traslado de stock vendible entre dos
// variantes hermanas. La resolución de catálogo (variante → producto) ocurre
// antes; aquí solo se comparan los productos resueltos y el stock vendible
// del origen.
func ValidateVariantTransfer(from, to *entity.StockRecord, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if from.ItemID() == to.ItemID() {
		return domain.ErrNoOpTransfer
	}
	if from.ProductID != to.ProductID {
		return domain.ErrCrossProductTransfer
	}
	if from.Sellable < quantity {
		return domain.ErrInsufficientStock
	}
	return nil
}

// ValidateReceipt verifica una entrada de stock nuevo: solo cantidad y estado,
// no exige stock previo porque nada se descuenta.
func ValidateReceipt(state string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !entity.IsValidState(state) {
		return domain.ErrInvalidInput
	}
	return nil
}
