package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSpectrum   = errors.New("invalid spectrum")
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrInsufficientData  = errors.New("insufficient data")
	ErrDivideByZero      = errors.New("divide by zero")
	ErrConfiguration     = errors.New("configuration error")
	ErrNotFound          = errors.New("not found")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrConfiguration
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsDataError reports whether the error stems from the spectrum data itself
// rather than parameters or configuration.
func IsDataError(err error) bool {
	return errors.Is(err, ErrInvalidSpectrum) || errors.Is(err, ErrDivideByZero)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "analysis failure"
	}
	return strings.Join(parts, ": ")
}
