package repository

import "context"

// AddressRepository defines the contract for resolving a street address to
// an AIN through the open-data endpoint.
type AddressRepository interface {
	// ResolveAIN returns the AIN of the first row with an exact house-number
	// match and a case-insensitive street-name prefix match. It returns
	// ErrNoMatch when no row qualifies and an *UpstreamError when the lookup
	// itself failed; the two are deliberately distinguishable.
	ResolveAIN(ctx context.Context, houseNumber, streetName string) (string, error)
}
