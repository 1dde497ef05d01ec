package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the KPI engine. Callers should check with errors.Is or
// the Is* helpers below rather than comparing messages.
var (
	// ErrNoUsableData means a build produced zero rows after cleaning.
	// The prior canonical dataset, if any, is left untouched.
	ErrNoUsableData = errors.New("no usable rows after cleaning")

	// ErrNoData means a query was made against an unbuilt or empty dataset.
	ErrNoData = errors.New("no data loaded")

	// ErrSchema means a required column is missing where no safe default
	// exists. Most column-presence problems degrade to skip behavior instead
	// of raising this.
	ErrSchema = errors.New("dataset schema error")

	// ErrInvalidFilter means a filter bound is malformed or unsatisfiable.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrCostConfig means a cost configuration update was malformed.
	// Referencing an unknown aircraft model is NOT this error: the cost
	// table auto-creates a default entry instead.
	ErrCostConfig = errors.New("invalid cost configuration")
)

// WrapNoUsableData wraps ErrNoUsableData with a formatted message.
func WrapNoUsableData(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNoUsableData, fmt.Sprintf(format, args...))
}

// WrapSchema wraps ErrSchema with a formatted message.
func WrapSchema(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSchema, fmt.Sprintf(format, args...))
}

// WrapInvalidFilter wraps ErrInvalidFilter with a formatted message.
func WrapInvalidFilter(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidFilter, fmt.Sprintf(format, args...))
}

// WrapCostConfig wraps ErrCostConfig with a formatted message.
func WrapCostConfig(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCostConfig, fmt.Sprintf(format, args...))
}

// IsNoUsableData checks if the error is or wraps ErrNoUsableData.
func IsNoUsableData(err error) bool {
	return errors.Is(err, ErrNoUsableData)
}

// IsNoData checks if the error is or wraps ErrNoData.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}

// IsInvalidFilter checks if the error is or wraps ErrInvalidFilter.
func IsInvalidFilter(err error) bool {
	return errors.Is(err, ErrInvalidFilter)
}

// IsCostConfig checks if the error is or wraps ErrCostConfig.
func IsCostConfig(err error) bool {
	return errors.Is(err, ErrCostConfig)
}
