package city

import (
	"errors"
	"fmt"
)

var (
	ErrCityNotFound = errors.New("city not found")
	ErrInvalidLimit = errors.New("invalid limit")
)

// NotFoundError carries the name the caller asked for, as typed.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("City '%s' not found", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrCityNotFound
}
