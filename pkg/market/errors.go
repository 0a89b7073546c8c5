package market

import "errors"

var (
	// ErrNoHistory indicates the provider had no usable price history.
	ErrNoHistory = errors.New("market: no price history")
	// ErrUnknownSource indicates an unrecognized provider source name.
	ErrUnknownSource = errors.New("market: unknown history source")
)
