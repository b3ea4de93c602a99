package handler

import (
	"errors"

	"go-inventory-api/internal/apperror"
	"go-inventory-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var statusByKind = map[apperror.Kind]int{
	apperror.KindNotFound:         fiber.StatusNotFound,
	apperror.KindValidation:       fiber.StatusBadRequest,
	apperror.KindConflict:         fiber.StatusConflict,
	apperror.KindInvalidOperation: fiber.StatusUnprocessableEntity,
	apperror.KindAuth:             fiber.StatusUnauthorized,
	apperror.KindForbidden:        fiber.StatusForbidden,
	apperror.KindUnexpected:       fiber.StatusInternalServerError,
}

// StatusFor returns the HTTP status used for an error of the given kind.
func StatusFor(kind apperror.Kind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler is the single place where errors leave the API. Every failure
// becomes a {message} body; validation failures also carry the field list.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			appErr = apperror.Unexpected(err)
		}

		status := StatusFor(appErr.Kind)
		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(appErr.Err))
		}

		body := fiber.Map{"message": appErr.Message}
		if len(appErr.Fields) > 0 {
			body["errors"] = appErr.Fields
		}
		return c.Status(status).JSON(body)
	}
}

func parseID(c *fiber.Ctx, param, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		// a malformed id can never match a record
		return uuid.Nil, apperror.NotFound(what + " not found")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.Validation("Invalid JSON")
	}
	return nil
}

// actorID is the id of the authenticated caller, nil on public routes.
func actorID(c *fiber.Ctx) *uuid.UUID {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil
	}
	id := user.ID
	return &id
}
