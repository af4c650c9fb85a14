package repository

import (
	"context"

	"github.com/user/parcel-service/internal/entity"
)

// ZoningRepository defines the contract for the GIS zoning layer.
type ZoningRepository interface {
	// QueryPoint runs a point-intersection query at WGS84 lat/lon and returns
	// the first intersecting polygon's attributes, or (nil, nil) when no
	// polygon intersects. With overlapping zones, first-wins by server order.
	QueryPoint(ctx context.Context, lat, lon float64) (*entity.ZoneAttributes, error)
}
