package handler

import (
	"strings"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service           service.ProductService
	lowStockThreshold int
}

func NewProductHandler(s service.ProductService, lowStockThreshold int) *ProductHandler {
	return &ProductHandler{service: s, lowStockThreshold: lowStockThreshold}
}

// GetProducts lists products.
// Query params: search, category, lowStock=true, sort, order=asc|desc
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filter := model.ProductFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		Category:   strings.TrimSpace(c.Query("category")),
		SortBy:     c.Query("sort"),
		Descending: strings.EqualFold(c.Query("order"), "desc"),
	}
	if c.QueryBool("lowStock") {
		filter.LowStockBelow = h.lowStockThreshold
	}

	products, err := h.service.ListProducts(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Product")
	if err != nil {
		return err
	}

	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, err := h.service.CreateProduct(c.UserContext(), &req, actorID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Product")
	if err != nil {
		return err
	}

	var req service.UpdateProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, &req, actorID(c))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Product")
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.UserContext(), id, actorID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product removed"})
}
