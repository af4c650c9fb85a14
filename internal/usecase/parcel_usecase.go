package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/user/parcel-service/internal/entity"
	"github.com/user/parcel-service/internal/repository"
)

// ParcelLookup defines the interface for assessor parcel summaries.
type ParcelLookup interface {
	GetParcel(ctx context.Context, ain string) (*entity.ParcelSummary, error)
}

type parcelLookupUseCase struct {
	parcelRepo repository.ParcelRepository
}

// NewParcelLookup creates a new ParcelLookup use case.
func NewParcelLookup(parcelRepo repository.ParcelRepository) ParcelLookup {
	return &parcelLookupUseCase{parcelRepo: parcelRepo}
}

func (uc *parcelLookupUseCase) GetParcel(ctx context.Context, ain string) (*entity.ParcelSummary, error) {
	detail, err := uc.parcelRepo.FetchDetail(ctx, ain)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("parcel %s: %w", ain, repository.ErrNotFound)
	}
	return BuildParcelSummary(detail), nil
}

// BuildParcelSummary flattens a raw parcel record into its summary form.
// Aggregates sum over subparts when any exist and fall back to the
// parcel-level scalars only when the subpart list is empty; the two paths
// never both contribute. Malformed numerics contribute exactly zero.
func BuildParcelSummary(p *entity.ParcelDetail) *entity.ParcelSummary {
	summary := &entity.ParcelSummary{
		AIN:                 p.AIN,
		SitusAddress:        joinSitus(p.SitusStreet, p.SitusCity, p.SitusZipCode),
		UseType:             p.UseType,
		Zoning:              p.ZoningPDB,
		LegalDescription:    p.LegalDescription,
		QualityClass:        p.QualityClass,
		YearBuiltList:       []string{},
		SubpartsDesignTypes: []entity.SubpartDesign{},
	}

	if lat, ok := p.Latitude.Float(); ok {
		summary.Latitude = &lat
	}
	if lon, ok := p.Longitude.Float(); ok {
		summary.Longitude = &lon
	}

	yearBuilt := make(map[string]struct{})
	for _, sp := range p.SubParts {
		summary.TotalSqftPDB += sp.SqftMain.Int()
		if yb := sp.YearBuilt.String(); yb != "" {
			yearBuilt[yb] = struct{}{}
		}
		summary.NumUnits += sp.NumOfUnits.Int()
		summary.Beds += sp.NumOfBeds.Int()
		summary.Baths += sp.NumOfBaths.Int()
		summary.SubpartsDesignTypes = append(summary.SubpartsDesignTypes, entity.SubpartDesign{
			DesignType: sp.DesignType,
			D1:         sp.DesignType1stDigit.String(),
			D2:         sp.DesignType2ndDigit.String(),
			D3:         sp.DesignType3rdDigit.String(),
			D4:         sp.DesignType4thDigit.String(),
		})
	}

	if len(p.SubParts) == 0 {
		summary.TotalSqftPDB = p.SqftMain.Int()
		summary.NumUnits = p.NumOfUnits.Int()
		summary.Beds = p.NumOfBeds.Int()
		summary.Baths = p.NumOfBaths.Int()
		if yb := p.YearBuilt.String(); yb != "" {
			yearBuilt[yb] = struct{}{}
		}
	}

	for yb := range yearBuilt {
		summary.YearBuiltList = append(summary.YearBuiltList, yb)
	}
	sort.Strings(summary.YearBuiltList)

	// Land dimensions only when both width and depth are present.
	if w, d := p.LandWidth.String(), p.LandDepth.String(); w != "" && d != "" {
		summary.LandWidthDepth = fmt.Sprintf("%s' x %s'", w, d)
	}

	return summary
}

func joinSitus(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ", ")
}
