package repository

import (
	"context"

	"github.com/user/parcel-service/internal/entity"
)

// ParcelRepository defines the contract for the county assessor parcel API.
type ParcelRepository interface {
	// FetchDetail retrieves the raw parcel record for an AIN. It returns
	// (nil, nil) when the response carries no Parcel object.
	FetchDetail(ctx context.Context, ain string) (*entity.ParcelDetail, error)
}
