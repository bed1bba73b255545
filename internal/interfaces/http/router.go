package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Orders     OrderService
	Planning   PlanService
	Lifecycle  LifecycleService
	BatchSheet BatchSheetService
	Catalog    CatalogService
	Suggestion SuggestionService
	JWTSecret  string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token;
// las escrituras sobre órdenes requieren rol admin o produccion.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	writer := RequireRole(RoleAdmin, RoleProduction)

	mfgHandler := NewManufacturingHandler(deps.Orders, deps.Planning, deps.Lifecycle, deps.BatchSheet)
	aiHandler := NewAIHandler(deps.Suggestion)

	// Rutas estáticas antes de /:id para que no las capture el parámetro
	orders := api.Group("/manufacturing-orders")
	orders.Post("/preview", mfgHandler.Preview)
	orders.Post("/formula-suggestion", writer, aiHandler.SuggestFormula)
	orders.Post("/", writer, mfgHandler.Create)
	orders.Get("/", mfgHandler.List)
	orders.Get("/:id", mfgHandler.GetByID)
	orders.Put("/:id", writer, mfgHandler.Update)
	orders.Delete("/:id", writer, mfgHandler.Delete)
	orders.Get("/:id/validation", mfgHandler.Validation)
	orders.Get("/:id/plan", mfgHandler.Plan)
	orders.Post("/:id/advance", writer, mfgHandler.Advance)
	orders.Get("/:id/batch-sheet", mfgHandler.BatchSheet)

	catalogHandler := NewCatalogHandler(deps.Catalog)
	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/branches", catalogHandler.ListBranches)
	api.Get("/branches/:id/inventory", catalogHandler.BranchInventory)
}
