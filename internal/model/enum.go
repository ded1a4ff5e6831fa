package model

import (
	"database/sql/driver"
	"fmt"
)

// scanEnum reads a string column into dst, rejecting anything parse refuses.
func scanEnum[T ~string](value interface{}, parse func(string) (T, error), dst *T) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*dst = ""
		return nil
	default:
		return fmt.Errorf("unsupported type %T for enum column", value)
	}
	parsed, err := parse(raw)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

// valueEnum refuses to persist values outside the enumeration.
func valueEnum[T ~string](v T, parse func(string) (T, error)) (driver.Value, error) {
	if _, err := parse(string(v)); err != nil {
		return nil, err
	}
	return string(v), nil
}
