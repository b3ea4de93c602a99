package service

import (
	"errors"

	"go-inventory-api/internal/apperror"
	"go-inventory-api/pkg/validator"

	"gorm.io/gorm"
)

const (
	msgProductNotFound  = "Product not found"
	msgCategoryNotFound = "Category not found"
	msgUserNotFound     = "User not found"
	msgNegativeStock    = "Stock quantity cannot be negative"
	msgStockTooLarge    = "Stock quantity is too large"
	msgInvalidLogin     = "Invalid email or password"
)

// validate runs the struct rules and converts failures into a validation error
// whose message is the first failing field.
func validate(req interface{}) error {
	errs := validator.ValidateStruct(req)
	if len(errs) == 0 {
		return nil
	}

	fields := make([]apperror.FieldError, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, apperror.FieldError{Field: e.FailedField, Message: e.Message()})
	}
	return apperror.Validation(fields[0].Message, fields...)
}

// storeError maps a repository failure: a missing row becomes NotFound with
// the given message, a unique violation becomes Conflict, anything else is
// Unexpected.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Conflict("A record with the same unique value already exists")
	default:
		return apperror.Unexpected(err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
