package domain

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrUnsupported = errors.New("operation not supported by venue")
	ErrEmptyBook   = errors.New("empty order book")
)
