package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/kardex-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Transfers *ledger.TransferUseCase
	LowStock  *ledger.LowStockUseCase
	Reconcile *ledger.ReconcileUseCase
	JWTSecret string
}

// Router registra las rutas de la API. Todas las rutas del kardex requieren
// Bearer Token; las mutaciones exigen además rol de bodega.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/stock", AuthMiddleware(deps.JWTSecret))
	handler := NewLedgerHandler(deps.Transfers, deps.LowStock, deps.Reconcile)

	// Lecturas: cualquier rol autenticado
	protected.Get("/records/:productId", handler.GetStockRecord)
	protected.Get("/products/:productId", handler.GetProductStock)
	protected.Get("/low", handler.ListLowStock)
	protected.Get("/audit/:itemId", handler.AuditTrail)
	protected.Get("/reconcile/:itemId", handler.Reconcile)

	// Mutaciones: solo admin o bodeguero
	mutate := RequireRole("admin", "bodeguero")
	protected.Post("/transfers", mutate, handler.Transfer)
	protected.Post("/variant-transfers", mutate, handler.VariantTransfer)
	protected.Post("/receipts", mutate, handler.Receipt)
}
