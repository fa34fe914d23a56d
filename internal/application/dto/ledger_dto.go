package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest body para POST /api/stock/transfers (traslado intra-ítem).
// expected_version opcional habilita la detección de lost update: si la
// versión leída por el caller ya no es la actual, el traslado se rechaza.
type TransferRequest struct {
	ItemID          string `json:"item_id"`
	FromState       string `json:"from_state"`
	ToState         string `json:"to_state"`
	Quantity        int64  `json:"quantity"`
	Reason          string `json:"reason,omitempty"`
	ExpectedVersion *int64 `json:"expected_version,omitempty"`
}

// VariantTransferRequest body para POST /api/stock/variant-transfers
// (traslado de vendible entre variantes hermanas).
type VariantTransferRequest struct {
	FromVariantID       string `json:"from_variant_id"`
	ToVariantID         string `json:"to_variant_id"`
	Quantity            int64  `json:"quantity"`
	Reason              string `json:"reason,omitempty"`
	FromExpectedVersion *int64 `json:"from_expected_version,omitempty"`
	ToExpectedVersion   *int64 `json:"to_expected_version,omitempty"`
}

// ReceiptRequest body para POST /api/stock/receipts (entrada de stock nuevo).
type ReceiptRequest struct {
	ProductID    string           `json:"product_id"`
	VariantID    string           `json:"variant_id,omitempty"`
	State        string           `json:"state"`
	Quantity     int64            `json:"quantity"`
	Reason       string           `json:"reason,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	Warehouse    string           `json:"warehouse,omitempty"`
	Location     string           `json:"location,omitempty"`
	ReorderLevel *int64           `json:"reorder_level,omitempty"`
}

// StockRecordDTO representación HTTP de un registro del kardex.
// total_stock siempre se deriva de los cuatro estados al serializar.
type StockRecordDTO struct {
	ProductID    string          `json:"product_id"`
	VariantID    string          `json:"variant_id,omitempty"`
	Kind         string          `json:"kind"`
	ItemID       string          `json:"item_id"`
	Sellable     int64           `json:"sellable"`
	Damaged      int64           `json:"damaged"`
	Hold         int64           `json:"hold"`
	Transit      int64           `json:"transit"`
	TotalStock   int64           `json:"total_stock"`
	ReorderLevel int64           `json:"reorder_level"`
	Warehouse    string          `json:"warehouse,omitempty"`
	Location     string          `json:"location,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LowStock     bool            `json:"low_stock"`
	OutOfStock   bool            `json:"out_of_stock"`
	Version      int64           `json:"version"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AuditEntryDTO representación HTTP de un asiento de la bitácora.
type AuditEntryDTO struct {
	Seq                int64     `json:"seq"`
	ID                 string    `json:"id"`
	TransactionID      string    `json:"transaction_id"`
	Kind               string    `json:"kind"`
	ProductID          string    `json:"product_id"`
	ItemID             string    `json:"item_id,omitempty"`
	FromVariantID      string    `json:"from_variant_id,omitempty"`
	ToVariantID        string    `json:"to_variant_id,omitempty"`
	FromState          string    `json:"from_state,omitempty"`
	ToState            string    `json:"to_state,omitempty"`
	Quantity           int64     `json:"quantity"`
	Reason             string    `json:"reason,omitempty"`
	ResultingVersion   int64     `json:"resulting_version"`
	ToResultingVersion int64     `json:"to_resulting_version,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedBy          string    `json:"created_by,omitempty"`
}

// ReconcileResponse resultado de conciliar un ítem contra su bitácora.
type ReconcileResponse struct {
	ItemID     string          `json:"item_id"`
	Entries    int             `json:"entries"`
	Consistent bool            `json:"consistent"`
	Stored     *StockRecordDTO `json:"stored"`
	Replayed   *StockRecordDTO `json:"replayed"`
}
