package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors
	ErrNoResultTable  = errors.New("no result table set")
	ErrNoKeyColumns   = errors.New("no key columns configured")
	ErrColumnNotFound = errors.New("column index out of range")

	// Column type errors
	ErrNotNominal = errors.New("column is not nominal")
	ErrNotNumeric = errors.New("column is not numeric")

	// Data integrity errors
	ErrMissingValue      = errors.New("missing value in required column")
	ErrMissingGroup      = errors.New("no rows for dataset")
	ErrGroupSizeMismatch = errors.New("mismatched run counts")
)

// Error constructors with context

func NewMissingValueError(column string, rowText string) error {
	return fmt.Errorf("%w %q in row [%s]", ErrMissingValue, column, rowText)
}

func NewMissingGroupError(label string, dataset string) error {
	return fmt.Errorf("%w %q in resultset %q", ErrMissingGroup, dataset, label)
}

func NewSizeMismatchError(labelA, labelB, dataset string, countA, countB int) error {
	return fmt.Errorf("%w for dataset %q: %q has %d runs, %q has %d",
		ErrGroupSizeMismatch, dataset, labelA, countA, labelB, countB)
}

func NewColumnTypeError(sentinel error, index int, name string) error {
	return fmt.Errorf("%w: column %d (%s)", sentinel, index, name)
}

// Error checking helpers

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrNoResultTable) ||
		errors.Is(err, ErrNoKeyColumns) ||
		errors.Is(err, ErrNotNominal)
}

func IsDataIntegrityError(err error) bool {
	return errors.Is(err, ErrMissingValue) ||
		errors.Is(err, ErrMissingGroup) ||
		errors.Is(err, ErrGroupSizeMismatch) ||
		errors.Is(err, ErrNotNumeric)
}
