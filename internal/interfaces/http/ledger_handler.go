package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/kardex-api/internal/application/dto"
	"github.com/tu-usuario/kardex-api/internal/application/ledger"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
)

// LedgerHandler maneja las peticiones HTTP del kardex (protegido).
type LedgerHandler struct {
	transfers *ledger.TransferUseCase
	lowStock  *ledger.LowStockUseCase
	reconcile *ledger.ReconcileUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(
	transfers *ledger.TransferUseCase,
	lowStock *ledger.LowStockUseCase,
	reconcile *ledger.ReconcileUseCase,
) *LedgerHandler {
	return &LedgerHandler{transfers: transfers, lowStock: lowStock, reconcile: reconcile}
}

// rejectionStatus traduce un rechazo del kardex a estado HTTP. Los rechazos
// de negocio son resultados esperados, nunca fallas del sistema.
func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrConcurrentModification):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrCrossProductTransfer):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrNoOpTransfer),
		errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func rejectionResponse(c *fiber.Ctx, err error) error {
	code := domain.RejectionCode(err)
	if code == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(rejectionStatus(err)).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func toStockRecordDTO(r *entity.StockRecord) *dto.StockRecordDTO {
	if r == nil {
		return nil
	}
	return &dto.StockRecordDTO{
		ProductID:    r.ProductID,
		VariantID:    r.VariantID,
		Kind:         r.Kind,
		ItemID:       r.ItemID(),
		Sellable:     r.Sellable,
		Damaged:      r.Damaged,
		Hold:         r.Hold,
		Transit:      r.Transit,
		TotalStock:   r.TotalStock(),
		ReorderLevel: r.ReorderLevel,
		Warehouse:    r.Warehouse,
		Location:     r.Location,
		UnitCost:     r.UnitCost,
		LowStock:     r.IsLow(),
		OutOfStock:   r.IsOut(),
		Version:      r.Version,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toAuditEntryDTO(e *entity.AuditEntry) dto.AuditEntryDTO {
	return dto.AuditEntryDTO{
		Seq:                e.Seq,
		ID:                 e.ID,
		TransactionID:      e.TransactionID,
		Kind:               e.Kind,
		ProductID:          e.ProductID,
		ItemID:             e.ItemID,
		FromVariantID:      e.FromVariantID,
		ToVariantID:        e.ToVariantID,
		FromState:          e.FromState,
		ToState:            e.ToState,
		Quantity:           e.Quantity,
		Reason:             e.Reason,
		ResultingVersion:   e.ResultingVersion,
		ToResultingVersion: e.ToResultingVersion,
		CreatedAt:          e.CreatedAt,
		CreatedBy:          e.CreatedBy,
	}
}

// GetStockRecord godoc
// @Summary      Consultar el kardex de un producto (y variante opcional)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId   path   string  true   "ID del producto"
// @Param        variant_id  query  string  false  "ID de la variante (vacío = registro por defecto)"
// @Success      200  {object}  dto.StockRecordDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/records/{productId} [get]
func (h *LedgerHandler) GetStockRecord(c *fiber.Ctx) error {
	productID := c.Params("productId")
	variantID := c.Query("variant_id")
	rec, err := h.transfers.GetStockRecord(c.Context(), productID, variantID)
	if err != nil {
		return rejectionResponse(c, err)
	}
	return c.JSON(toStockRecordDTO(rec))
}

// GetProductStock godoc
// @Summary      Kardex de todas las variantes de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}   dto.StockRecordDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{productId} [get]
func (h *LedgerHandler) GetProductStock(c *fiber.Ctx) error {
	records, err := h.transfers.ProductStock(c.Context(), c.Params("productId"))
	if err != nil {
		return rejectionResponse(c, err)
	}
	out := make([]*dto.StockRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toStockRecordDTO(r))
	}
	return c.JSON(fiber.Map{"count": len(out), "records": out})
}

// Transfer godoc
// @Summary      Traslado entre estados del mismo ítem
// @Description  Mueve unidades entre dos de los estados sellable/damaged/hold/transit
//
//	del mismo ítem. El total del registro no cambia.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "item_id, from_state, to_state, quantity, reason, expected_version"
// @Success      200  {object}  dto.StockRecordDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/transfers [post]
func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.transfers.TransferFromRequest(c.Context(), userID, in)
	if err != nil {
		return rejectionResponse(c, err)
	}
	return c.JSON(toStockRecordDTO(rec))
}

// VariantTransfer godoc
// @Summary      Traslado de vendible entre variantes hermanas
// @Description  Mueve stock vendible entre dos variantes del mismo producto.
//
//	La suma de vendible entre ambas no cambia.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VariantTransferRequest  true  "from_variant_id, to_variant_id, quantity, reason"
// @Success      200  {object}  map[string]dto.StockRecordDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/stock/variant-transfers [post]
func (h *LedgerHandler) VariantTransfer(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.VariantTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	from, to, err := h.transfers.VariantTransferFromRequest(c.Context(), userID, in)
	if err != nil {
		return rejectionResponse(c, err)
	}
	return c.JSON(fiber.Map{"from": toStockRecordDTO(from), "to": toStockRecordDTO(to)})
}

// Receipt godoc
// @Summary      Entrada de stock nuevo
// @Description  Incrementa un solo estado sin descontar de ningún otro. Crea el
//
//	registro del ítem en su primera entrada. unit_cost alimenta el
//	costo promedio ponderado.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiptRequest  true  "product_id, variant_id, state, quantity, unit_cost"
// @Success      201  {object}  dto.StockRecordDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/receipts [post]
func (h *LedgerHandler) Receipt(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.transfers.ReceiptFromRequest(c.Context(), userID, in)
	if err != nil {
		return rejectionResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockRecordDTO(rec))
}

// ListLowStock godoc
// @Summary      Ítems con stock vendible bajo
// @Description  Proyección consultiva: vendible <= punto de reorden del registro,
//
//	o <= threshold si se indica. Snapshot sin bloqueo.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral global (reemplaza el punto de reorden por registro)"
// @Success      200  {array}  dto.StockRecordDTO
// @Router       /api/stock/low [get]
func (h *LedgerHandler) ListLowStock(c *fiber.Ctx) error {
	threshold := int64(-1)
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold inválido"})
		}
		threshold = n
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	records, err := h.lowStock.ListLowStock(c.Context(), threshold, page.Limit, page.Offset)
	if err != nil {
		return rejectionResponse(c, err)
	}
	out := make([]*dto.StockRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toStockRecordDTO(r))
	}
	return c.JSON(fiber.Map{"count": len(out), "records": out})
}

// AuditTrail godoc
// @Summary      Bitácora de un ítem
// @Description  Asientos del más antiguo al más reciente (orden de append = orden causal).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "ID del ítem"
// @Success      200  {array}  dto.AuditEntryDTO
// @Router       /api/stock/audit/{itemId} [get]
func (h *LedgerHandler) AuditTrail(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	entries, err := h.reconcile.AuditTrail(c.Context(), c.Params("itemId"), page.Limit, page.Offset)
	if err != nil {
		return rejectionResponse(c, err)
	}
	out := make([]dto.AuditEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAuditEntryDTO(e))
	}
	return c.JSON(fiber.Map{"count": len(out), "entries": out})
}

// Reconcile godoc
// @Summary      Conciliar un ítem contra su bitácora
// @Description  Reproduce todos los asientos del ítem desde cero y compara el
//
//	resultado con el registro almacenado.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/reconcile/{itemId} [get]
func (h *LedgerHandler) Reconcile(c *fiber.Ctx) error {
	result, err := h.reconcile.Reconcile(c.Context(), c.Params("itemId"))
	if err != nil {
		return rejectionResponse(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		ItemID:     result.ItemID,
		Entries:    result.Entries,
		Consistent: result.Consistent,
		Stored:     toStockRecordDTO(result.Stored),
		Replayed:   toStockRecordDTO(result.Replayed),
	})
}
