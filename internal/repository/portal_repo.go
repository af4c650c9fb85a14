package repository

import (
	"context"

	"github.com/user/parcel-service/internal/entity"
)

// PortalRepository defines the contract for the browser-driven zoning portal.
type PortalRepository interface {
	// Scrape drives one portal session for an address and returns the
	// normalized record. A section that cannot be located degrades to an
	// entry in the record's SectionErrors; a failure before any section is
	// reached aborts the session. One attempt per call, no retries.
	Scrape(ctx context.Context, houseNumber, streetName string) (*entity.ScrapedZoningRecord, error)
}

// ArtifactRepository defines the contract for durable scrape exports.
type ArtifactRepository interface {
	// WriteScrape writes one record to a freshly created artifact and returns
	// its path.
	WriteScrape(record *entity.ScrapedZoningRecord) (string, error)
	// WriteCombined writes a record together with its resolved AIN.
	WriteCombined(ain string, record *entity.ScrapedZoningRecord) (string, error)
}
