package ledger

import "github.com/shopspring/decimal"

// WeightedAverageCost calcula el costo promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(currentQty int64, currentCost decimal.Decimal, receiptQty int64, receiptCost decimal.Decimal) decimal.Decimal {
	cur := decimal.NewFromInt(currentQty)
	rec := decimal.NewFromInt(receiptQty)
	sum := cur.Add(rec)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := cur.Mul(currentCost).Add(rec.Mul(receiptCost))
	return num.Div(sum)
}
