package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/kardex-api/internal/domain"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	domledger "github.com/tu-usuario/kardex-api/internal/domain/ledger"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

// TransferUseCase es el ejecutor de traslados del kardex: aplica cada mutación
// de forma transaccional con bloqueo de fila (SELECT FOR UPDATE), revalida
// contra el estado bloqueado y asienta exactamente un registro en la bitácora
// por mutación confirmada. Commit o Rollback, nunca efecto parcial.
type TransferUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRecordRepository
	catalog   CatalogResolver
}

// NewTransferUseCase construye el ejecutor.
func NewTransferUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRecordRepository,
	catalog CatalogResolver,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		catalog:   catalog,
	}
}

// TransferInput entrada para un traslado entre estados del mismo ítem.
// ExpectedVersion opcional: si viene y no coincide con la fila bloqueada,
// el traslado se rechaza por modificación concurrente (el caller debe
// releer y reintentar; el kardex no reintenta por él).
type TransferInput struct {
	ItemID          string
	FromState       string
	ToState         string
	Quantity        int64
	Reason          string
	ExpectedVersion *int64
	UserID          string
}

// VariantTransferInput entrada para un traslado de vendible entre variantes
// hermanas del mismo producto.
type VariantTransferInput struct {
	FromVariantID       string
	ToVariantID         string
	Quantity            int64
	Reason              string
	FromExpectedVersion *int64
	ToExpectedVersion   *int64
	UserID              string
}

// ReceiptInput entrada de stock nuevo: incrementa un solo estado, nada se
// descuenta. VariantID vacío = producto sin variantes. UnitCost opcional
// alimenta el costo promedio ponderado del registro.
type ReceiptInput struct {
	ProductID    string
	VariantID    string
	State        string
	Quantity     int64
	Reason       string
	UnitCost     *decimal.Decimal
	Warehouse    string
	Location     string
	ReorderLevel *int64
	UserID       string
}

// GetStockRecord obtiene el registro de un producto (y variante opcional).
func (uc *TransferUseCase) GetStockRecord(ctx context.Context, productID, variantID string) (*entity.StockRecord, error) {
	rec, err := uc.stockRepo.Get(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrItemNotFound
	}
	return rec, nil
}

// ProductStock devuelve los registros de todas las variantes de un producto
// según el catálogo, omitiendo variantes que aún no reciben stock.
func (uc *TransferUseCase) ProductStock(ctx context.Context, productID string) ([]*entity.StockRecord, error) {
	itemIDs, err := uc.catalog.VariantsOfProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return nil, domain.ErrItemNotFound
	}
	records := make([]*entity.StockRecord, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		rec, err := uc.stockRepo.GetByItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

// TransferWithinItem mueve unidades entre dos estados del mismo ítem.
// La resolución de catálogo ocurre antes de la transacción; dentro de ella se
// bloquea la fila, se revalida y se asienta la bitácora. El total del registro
// no cambia.
func (uc *TransferUseCase) TransferWithinItem(ctx context.Context, input TransferInput) (*entity.StockRecord, error) {
	// Chequeos de forma, sin tocar estado
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !entity.IsValidState(input.FromState) || !entity.IsValidState(input.ToState) {
		return nil, domain.ErrInvalidInput
	}
	if input.FromState == input.ToState {
		return nil, domain.ErrNoOpTransfer
	}

	// Resolución de catálogo antes de cualquier bloqueo
	productID, err := uc.catalog.ProductOf(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if productID == "" {
		return nil, domain.ErrItemNotFound
	}

	now := time.Now()
	txID := uuid.New().String()

	var updated *entity.StockRecord
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		rec, err := stockRepo.GetByItemForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrItemNotFound
		}
		if input.ExpectedVersion != nil && *input.ExpectedVersion != rec.Version {
			return domain.ErrConcurrentModification
		}
		// Revalidación contra la fila bloqueada
		if err := domledger.ValidateTransfer(rec, input.FromState, input.ToState, input.Quantity); err != nil {
			return err
		}
		domledger.ApplyTransfer(rec, input.FromState, input.ToState, input.Quantity, now)
		if err := stockRepo.Upsert(ctx, rec); err != nil {
			return err
		}
		entry := &entity.AuditEntry{
			ID:               uuid.New().String(),
			TransactionID:    txID,
			Kind:             entity.AuditKindIntra,
			ProductID:        rec.ProductID,
			ItemID:           rec.ItemID(),
			FromState:        input.FromState,
			ToState:          input.ToState,
			Quantity:         input.Quantity,
			Reason:           input.Reason,
			ResultingVersion: rec.Version,
			CreatedAt:        now,
			CreatedBy:        input.UserID,
		}
		if _, err := auditRepo.Append(ctx, entry); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// TransferBetweenVariants mueve vendible entre dos variantes del mismo
// producto. Bloquea ambas filas siempre en orden lexicográfico de item_id,
// de modo que dos traslados inversos concurrentes no puedan interbloquearse.
func (uc *TransferUseCase) TransferBetweenVariants(ctx context.Context, input VariantTransferInput) (*entity.StockRecord, *entity.StockRecord, error) {
	if input.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidQuantity
	}
	if input.FromVariantID == input.ToVariantID {
		return nil, nil, domain.ErrNoOpTransfer
	}

	// Resolución de catálogo antes de cualquier bloqueo
	fromProduct, err := uc.catalog.ProductOf(ctx, input.FromVariantID)
	if err != nil {
		return nil, nil, err
	}
	toProduct, err := uc.catalog.ProductOf(ctx, input.ToVariantID)
	if err != nil {
		return nil, nil, err
	}
	if fromProduct == "" || toProduct == "" {
		return nil, nil, domain.ErrItemNotFound
	}
	if fromProduct != toProduct {
		return nil, nil, domain.ErrCrossProductTransfer
	}

	now := time.Now()
	txID := uuid.New().String()

	var updatedFrom, updatedTo *entity.StockRecord
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		// Orden global fijo de adquisición: primero el item_id menor
		first, second := input.FromVariantID, input.ToVariantID
		if strings.Compare(first, second) > 0 {
			first, second = second, first
		}
		firstRec, err := stockRepo.GetByItemForUpdate(ctx, first)
		if err != nil {
			return err
		}
		secondRec, err := stockRepo.GetByItemForUpdate(ctx, second)
		if err != nil {
			return err
		}
		if firstRec == nil || secondRec == nil {
			return domain.ErrItemNotFound
		}
		from, to := firstRec, secondRec
		if from.ItemID() != input.FromVariantID {
			from, to = secondRec, firstRec
		}
		if input.FromExpectedVersion != nil && *input.FromExpectedVersion != from.Version {
			return domain.ErrConcurrentModification
		}
		if input.ToExpectedVersion != nil && *input.ToExpectedVersion != to.Version {
			return domain.ErrConcurrentModification
		}
		// Revalidación contra las filas bloqueadas
		if err := domledger.ValidateVariantTransfer(from, to, input.Quantity); err != nil {
			return err
		}
		domledger.ApplyVariantTransfer(from, to, input.Quantity, now)
		if err := stockRepo.Upsert(ctx, from); err != nil {
			return err
		}
		if err := stockRepo.Upsert(ctx, to); err != nil {
			return err
		}
		entry := &entity.AuditEntry{
			ID:                 uuid.New().String(),
			TransactionID:      txID,
			Kind:               entity.AuditKindInter,
			ProductID:          from.ProductID,
			FromVariantID:      from.ItemID(),
			ToVariantID:        to.ItemID(),
			Quantity:           input.Quantity,
			Reason:             input.Reason,
			ResultingVersion:   from.Version,
			ToResultingVersion: to.Version,
			CreatedAt:          now,
			CreatedBy:          input.UserID,
		}
		if _, err := auditRepo.Append(ctx, entry); err != nil {
			return err
		}
		updatedFrom, updatedTo = from, to
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updatedFrom, updatedTo, nil
}

// AddNewStock registra una entrada de stock nuevo a un solo estado. Crea el
// registro si es la primera vez que el ítem recibe stock; si viene UnitCost,
// recalcula el costo promedio ponderado. Pasa por la misma disciplina de
// mutación atómica que los traslados, con su asiento en la bitácora.
func (uc *TransferUseCase) AddNewStock(ctx context.Context, input ReceiptInput) (*entity.StockRecord, error) {
	if err := domledger.ValidateReceipt(input.State, input.Quantity); err != nil {
		return nil, err
	}
	if input.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.UnitCost != nil && input.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	itemID := input.ProductID
	kind := entity.KindRegular
	if input.VariantID != "" {
		itemID = input.VariantID
		kind = entity.KindVariant
	}

	// El catálogo debe conocer el ítem y atribuirlo al producto declarado
	resolved, err := uc.catalog.ProductOf(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if resolved == "" {
		return nil, domain.ErrItemNotFound
	}
	if resolved != input.ProductID {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()

	var updated *entity.StockRecord
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRecordRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		rec, err := stockRepo.GetByItemForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if rec == nil {
			// Primera entrada: reclamar la fila vacía. No hay fila que
			// bloquear todavía, así que dos primeras entradas concurrentes
			// compiten por el insert; la que no gana relee con bloqueo la
			// fila ya confirmada y aplica su entrada encima, nunca en lugar.
			fresh := &entity.StockRecord{
				ProductID: input.ProductID,
				VariantID: input.VariantID,
				Kind:      kind,
				UnitCost:  decimal.Zero,
				UpdatedAt: now,
			}
			if _, err := stockRepo.CreateIfAbsent(ctx, fresh); err != nil {
				return err
			}
			rec, err = stockRepo.GetByItemForUpdate(ctx, itemID)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("registro de %s no disponible tras crearlo", itemID)
			}
		}
		if input.Warehouse != "" {
			rec.Warehouse = input.Warehouse
		}
		if input.Location != "" {
			rec.Location = input.Location
		}
		if input.ReorderLevel != nil && *input.ReorderLevel >= 0 {
			rec.ReorderLevel = *input.ReorderLevel
		}
		if input.UnitCost != nil {
			rec.UnitCost = domledger.WeightedAverageCost(rec.TotalStock(), rec.UnitCost, input.Quantity, *input.UnitCost)
		}
		domledger.ApplyReceipt(rec, input.State, input.Quantity, now)
		if err := stockRepo.Upsert(ctx, rec); err != nil {
			return err
		}
		entry := &entity.AuditEntry{
			ID:               uuid.New().String(),
			TransactionID:    txID,
			Kind:             entity.AuditKindReceipt,
			ProductID:        rec.ProductID,
			ItemID:           rec.ItemID(),
			ToState:          input.State,
			Quantity:         input.Quantity,
			Reason:           input.Reason,
			ResultingVersion: rec.Version,
			CreatedAt:        now,
			CreatedBy:        input.UserID,
		}
		if _, err := auditRepo.Append(ctx, entry); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
