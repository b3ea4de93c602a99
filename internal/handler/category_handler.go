package handler

import (
	"go-inventory-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Category")
	if err != nil {
		return err
	}

	category, err := h.service.GetCategory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CreateCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category, err := h.service.CreateCategory(c.UserContext(), &req, actorID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Category")
	if err != nil {
		return err
	}

	var req service.UpdateCategoryRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	category, err := h.service.UpdateCategory(c.UserContext(), id, &req, actorID(c))
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// DeleteCategory fails with 409 while products still reference the category.
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "Category")
	if err != nil {
		return err
	}

	if err := h.service.DeleteCategory(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Category removed"})
}
