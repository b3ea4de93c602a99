package handler

import (
	"go-inventory-api/internal/apperror"
	"go-inventory-api/internal/middleware"
	"go-inventory-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	authService service.AuthService
}

func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// GetProfile returns the authenticated user.
// GET /api/users/profile
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return apperror.Auth("Not authorized, no token")
	}

	profile, err := h.authService.GetProfile(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// UpdateProfile changes name, email or password of the authenticated user.
// PUT /api/users/profile
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return apperror.Auth("Not authorized, no token")
	}

	var req service.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.UpdateProfile(c.UserContext(), user.ID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
