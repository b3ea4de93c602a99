package handler

import (
	"go-inventory-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHistoryHandler struct {
	service service.StockLedgerService
}

func NewStockHistoryHandler(s service.StockLedgerService) *StockHistoryHandler {
	return &StockHistoryHandler{service: s}
}

// GetStockHistory returns every ledger entry, newest first.
func (h *StockHistoryHandler) GetStockHistory(c *fiber.Ctx) error {
	entries, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

func (h *StockHistoryHandler) GetProductStockHistory(c *fiber.Ctx) error {
	id, err := parseID(c, "productId", "Product")
	if err != nil {
		return err
	}

	entries, err := h.service.ListForProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

// CreateStockHistory records a stock adjustment and moves the product quantity.
// POST /api/stock-history
func (h *StockHistoryHandler) CreateStockHistory(c *fiber.Ctx) error {
	var req service.RecordStockChangeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	entry, err := h.service.RecordStockChange(c.UserContext(), &req, actorID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}
