package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrAggregation  = errors.New("aggregation failed")
)

// aggregationError keeps both the sentinel and the cause in the chain.
func aggregationError(report string, err error) error {
	return fmt.Errorf("%w: error generating %s: %w", ErrAggregation, report, err)
}
