package services

import "errors"

var (
	ErrNoCardSelected = errors.New("select a payment method")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrNotSignedIn    = errors.New("sign in required")
	ErrWrongAccount   = errors.New("not available for this account type")
	ErrStaleResult    = errors.New("superseded by a newer search")
)
