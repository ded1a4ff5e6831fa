package service

import (
	"errors"
	"time"

	"it-inventory/internal/apperror"
	"it-inventory/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// validate runs the struct tags of req and converts failures to a ValidationError.
func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &apperror.ValidationError{Fields: validator.ToMap(errs)}
	}
	return nil
}

// storeError translates store failures into the apperror taxonomy.
// uniqueField names the field reported for duplicate keys.
func storeError(err error, entity, uniqueField, uniqueMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Validation(uniqueField, uniqueMsg)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.Reference(entity, "The "+entity+" is referenced by other records.")
	default:
		return err
	}
}

func parseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, apperror.Validation(field, "The "+field+" must be a valid identifier.")
	}
	return id, nil
}

func parseOptionalID(field string, s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := parseID(field, *s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(field, s string, loc *time.Location) (time.Time, error) {
	t, err := validator.ParseDate(s, loc)
	if err != nil {
		return time.Time{}, apperror.Validation(field, "The "+field+" is not a valid date.")
	}
	return t, nil
}

// emptyToNil normalizes optional text so blank inputs are stored as NULL.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
