package models

import "errors"

// Common errors used throughout the application
var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCardNotFound       = errors.New("credit card not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownAccountType = errors.New("unknown account type")
)
