package router

import (
	"go-inventory-api/internal/handler"
	"go-inventory-api/internal/middleware"
	"go-inventory-api/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handlers bundles everything the routes are served by.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	StockHistory *handler.StockHistoryHandler
	Dashboard    *handler.DashboardHandler
}

func Setup(app *fiber.App, h Handlers, auth middleware.Authenticator, hub *ws.Hub, log *zap.Logger) {
	requireAuth := middleware.RequireAuth(auth, log)
	requireAdmin := middleware.RequireAdmin()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Inventory API is running"})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		body := fiber.Map{"status": "ok"}
		if hub != nil {
			body["wsClients"] = hub.ClientCount()
		}
		return c.JSON(body)
	})

	api := app.Group("/api")

	// Users
	users := api.Group("/users")
	users.Post("/register", h.Auth.Register)
	users.Post("/register-admin", h.Auth.RegisterAdmin)
	users.Post("/login", h.Auth.Login)
	users.Get("/profile", requireAuth, h.User.GetProfile)
	users.Put("/profile", requireAuth, h.User.UpdateProfile)

	// Products
	products := api.Group("/products")
	products.Get("/", h.Product.GetProducts)
	products.Get("/:id", h.Product.GetProduct)
	products.Post("/", requireAuth, requireAdmin, h.Product.CreateProduct)
	products.Put("/:id", requireAuth, requireAdmin, h.Product.UpdateProduct)
	products.Delete("/:id", requireAuth, requireAdmin, h.Product.DeleteProduct)

	// Categories
	categories := api.Group("/categories")
	categories.Get("/", h.Category.GetCategories)
	categories.Get("/:id", h.Category.GetCategory)
	categories.Post("/", requireAuth, requireAdmin, h.Category.CreateCategory)
	categories.Put("/:id", requireAuth, requireAdmin, h.Category.UpdateCategory)
	categories.Delete("/:id", requireAuth, requireAdmin, h.Category.DeleteCategory)

	// Stock history
	history := api.Group("/stock-history")
	history.Get("/", h.StockHistory.GetStockHistory)
	history.Get("/:productId", h.StockHistory.GetProductStockHistory)
	history.Post("/", requireAuth, h.StockHistory.CreateStockHistory)

	// Dashboard
	dashboard := api.Group("/dashboard", requireAuth)
	dashboard.Get("/stats", h.Dashboard.GetDashboardStats)
	dashboard.Get("/stock-movement", h.Dashboard.GetStockMovement)

	// WebSocket Route
	if hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", websocket.New(func(c *websocket.Conn) {
			if !hub.Join(c) {
				return
			}
			defer hub.Leave(c)

			for {
				if _, _, err := c.ReadMessage(); err != nil {
					break
				}
			}
		}))
	}
}
