package usecase

import (
	"context"
	"fmt"

	"github.com/user/parcel-service/internal/entity"
	"github.com/user/parcel-service/internal/repository"
)

// ZoningLookup defines the interface for zoning summaries by AIN.
type ZoningLookup interface {
	GetZoning(ctx context.Context, ain string) (*entity.ZoningSummary, error)
}

type zoningLookupUseCase struct {
	parcelRepo repository.ParcelRepository
	zoningRepo repository.ZoningRepository
}

// NewZoningLookup creates a new ZoningLookup use case. It composes the
// assessor fetch (reused, not cached) with the Z-NET point query.
func NewZoningLookup(parcelRepo repository.ParcelRepository, zoningRepo repository.ZoningRepository) ZoningLookup {
	return &zoningLookupUseCase{
		parcelRepo: parcelRepo,
		zoningRepo: zoningRepo,
	}
}

func (uc *zoningLookupUseCase) GetZoning(ctx context.Context, ain string) (*entity.ZoningSummary, error) {
	detail, err := uc.parcelRepo.FetchDetail(ctx, ain)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("parcel %s: %w", ain, repository.ErrNotFound)
	}

	lat, okLat := detail.Latitude.Float()
	lon, okLon := detail.Longitude.Float()
	if !okLat || !okLon {
		return nil, fmt.Errorf("parcel %s: %w", ain, repository.ErrMissingCoordinates)
	}

	zone, err := uc.zoningRepo.QueryPoint(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	summary := &entity.ZoningSummary{
		AIN:               detail.AIN,
		SitusAddress:      joinSitus(detail.SitusStreet, detail.SitusCity, detail.SitusZipCode),
		Latitude:          &lat,
		Longitude:         &lon,
		UseType:           detail.UseType,
		AssessorZoningPDB: detail.ZoningPDB,
	}
	if summary.AIN == "" {
		summary.AIN = ain
	}

	// The four znet fields are all-or-nothing.
	if zone != nil {
		summary.ZnetZone = &zone.Zone
		summary.ZnetZoneDescription = &zone.Description
		summary.ZnetZoneCategory = &zone.Category
		summary.ZnetTitle22URL = &zone.Title22URL
	}

	return summary, nil
}
