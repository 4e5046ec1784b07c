package services

import "errors"

var (
	// ErrProductNotFound is returned when a product id does not resolve in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidReview wraps the validation errors of a rejected review.
	ErrInvalidReview = errors.New("invalid review")
)
