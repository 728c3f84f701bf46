package model

import (
	"errors"
	"fmt"
)

// ErrNoSymbols is returned when the user did not enter any symbol.
var ErrNoSymbols = errors.New("You didn't input a stock ticker/symbol. At least one symbol is required to run this program.")

// MalformedDataError reports an upstream record that is missing a field or
// carries a value that cannot be parsed.
type MalformedDataError struct {
	Date  string
	Field string
	Value string
	Cause error
}

func (e *MalformedDataError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("malformed data: bad date key %q: %v", e.Date, e.Cause)
	case e.Cause == nil:
		return fmt.Sprintf("malformed data: %s is missing field %q", e.Date, e.Field)
	default:
		return fmt.Sprintf("malformed data: %s field %q has value %q: %v", e.Date, e.Field, e.Value, e.Cause)
	}
}

func (e *MalformedDataError) Unwrap() error { return e.Cause }

// InsufficientDataError reports a series too short for the requested statistic.
type InsufficientDataError struct {
	Required int
	Actual   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need at least %d points, got %d", e.Required, e.Actual)
}

// SymbolNotFoundError is returned when the data source does not recognize a symbol.
type SymbolNotFoundError struct {
	Symbol  string
	Message string
}

func (e *SymbolNotFoundError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("symbol %q not found", e.Symbol)
	}
	return fmt.Sprintf("symbol %q not found: %s", e.Symbol, e.Message)
}

func IsMalformedData(err error) bool {
	var e *MalformedDataError
	return errors.As(err, &e)
}

func IsInsufficientData(err error) bool {
	var e *InsufficientDataError
	return errors.As(err, &e)
}

func IsSymbolNotFound(err error) bool {
	var e *SymbolNotFoundError
	return errors.As(err, &e)
}
