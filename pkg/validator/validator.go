package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
	Message     string
}

// MessageProvider lets a request override messages per "field.tag" key,
// e.g. "asset_tag.required".
type MessageProvider interface {
	Messages() map[string]string
}

var validate = validator.New()

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var ErrInvalidDate = errors.New("invalid date")

// ParseDate accepts a calendar date, a local date-time or an RFC 3339 timestamp.
// Values without a zone are read in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func init() {
	// Report JSON names so messages match the request body
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})

	validate.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String(), time.UTC)
		return err == nil
	})

	// Numeric tags (gte, lte) on decimals compare the float value
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var out []*ErrorResponse
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*ErrorResponse{{FailedField: "", Tag: "invalid", Message: err.Error()}}
	}

	var overrides map[string]string
	if mp, ok := data.(MessageProvider); ok {
		overrides = mp.Messages()
	}

	for _, err := range verrs {
		var element ErrorResponse
		element.FailedField = err.Field()
		element.Tag = err.Tag()
		element.Value = err.Param()
		element.Message = overrides[element.FailedField+"."+element.Tag]
		if element.Message == "" {
			element.Message = defaultMessage(element.FailedField, element.Tag, element.Value)
		}
		out = append(out, &element)
	}
	return out
}

// ToMap keeps the first message per field.
func ToMap(errs []*ErrorResponse) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, seen := fields[e.FailedField]; !seen {
			fields[e.FailedField] = e.Message
		}
	}
	return fields
}

func defaultMessage(field, tag, param string) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch tag {
	case "required", "uuid_required":
		return fmt.Sprintf("The %s field is required.", label)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", label)
	case "min", "gte":
		return fmt.Sprintf("The %s must be at least %s.", label, param)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", label, param)
	case "uuid":
		return fmt.Sprintf("The %s must be a valid identifier.", label)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "date":
		return fmt.Sprintf("The %s is not a valid date.", label)
	default:
		return fmt.Sprintf("The %s field failed on the '%s' rule.", label, tag)
	}
}
