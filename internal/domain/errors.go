package domain

import "errors"

// Errores de dominio (sin dependencias externas). El conjunto de rechazos del
// kardex es cerrado: toda operación termina en nil o en uno de estos valores.
var (
	ErrItemNotFound           = errors.New("ítem no encontrado")
	ErrInvalidQuantity        = errors.New("cantidad inválida")
	ErrNoOpTransfer           = errors.New("traslado sin efecto")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrCrossProductTransfer   = errors.New("las variantes pertenecen a productos distintos")
	ErrConcurrentModification = errors.New("el registro fue modificado por otra operación")
	ErrInvalidInput           = errors.New("entrada inválida")
)

// RejectionCode devuelve el código estable de un rechazo del kardex, o ""
// si el error no pertenece al conjunto cerrado (falla de infraestructura).
func RejectionCode(err error) string {
	switch {
	case errors.Is(err, ErrItemNotFound):
		return "ITEM_NOT_FOUND"
	case errors.Is(err, ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.Is(err, ErrNoOpTransfer):
		return "NO_OP_TRANSFER"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrCrossProductTransfer):
		return "CROSS_PRODUCT_TRANSFER"
	case errors.Is(err, ErrConcurrentModification):
		return "CONCURRENT_MODIFICATION"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION"
	}
	return ""
}
