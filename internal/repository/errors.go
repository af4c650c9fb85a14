package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the upstream call succeeded but returned no usable
	// record for the requested identity.
	ErrNotFound = errors.New("no record found")

	// ErrNoMatch means the address lookup completed but no row satisfied the
	// house-number and street-name criteria. Distinct from an UpstreamError
	// so callers can tell an absent address from an unreachable service.
	ErrNoMatch = errors.New("no matching address row")

	// ErrMissingCoordinates means a parcel record lacks the latitude or
	// longitude required for the spatial zoning query.
	ErrMissingCoordinates = errors.New("parcel record does not contain latitude/longitude")
)

// UpstreamError wraps a failed call to one of the external data sources.
// StatusCode is zero for transport-level failures.
type UpstreamError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream returned status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
