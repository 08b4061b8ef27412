package pipeline

import (
	"errors"
	"strings"
)

// ErrMalformedAddress is returned when an address has no second comma
// separated component.
var ErrMalformedAddress = errors.New("malformed address: no street component")

// ParseStreet returns the trimmed second comma separated component of
// address, which by convention holds the street ("Москва, улица Арбат, 10"
// gives "улица Арбат"). An empty second component gives an empty street.
func ParseStreet(address string) (string, error) {
	parts := strings.SplitN(address, ",", 3)
	if len(parts) < 2 {
		return "", ErrMalformedAddress
	}
	return strings.TrimSpace(parts[1]), nil
}
