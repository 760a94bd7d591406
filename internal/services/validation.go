package services

import "time"

func validateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return ErrInvalidDateRange
	}
	return nil
}

func validateTargetRange(min, max *int) error {
	if min != nil && max != nil && *min > *max {
		return ErrInvalidTargetRange
	}
	return nil
}

func intPtrEqual(a *int, b int) bool {
	return a != nil && *a == b
}

func ptr[T any](v T) *T {
	return &v
}
