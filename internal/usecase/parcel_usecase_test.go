package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/user/parcel-service/internal/entity"
	"github.com/user/parcel-service/internal/repository"
)

type fakeParcelRepo struct {
	detail *entity.ParcelDetail
	err    error
}

func (f *fakeParcelRepo) FetchDetail(ctx context.Context, ain string) (*entity.ParcelDetail, error) {
	return f.detail, f.err
}

func TestBuildParcelSummarySubpartAggregation(t *testing.T) {
	tests := []struct {
		name     string
		detail   *entity.ParcelDetail
		wantSqft int
		wantUnit int
		wantBeds int
	}{
		{
			name: "sums parsed subpart values",
			detail: &entity.ParcelDetail{
				SubParts: []entity.SubPart{
					{SqftMain: "200", NumOfUnits: "1", NumOfBeds: "2"},
					{SqftMain: "300", NumOfUnits: "2", NumOfBeds: "3"},
				},
			},
			wantSqft: 500,
			wantUnit: 3,
			wantBeds: 5,
		},
		{
			name: "unparsable values contribute exactly zero",
			detail: &entity.ParcelDetail{
				SubParts: []entity.SubPart{
					{SqftMain: "200", NumOfUnits: "one"},
					{SqftMain: "n/a", NumOfUnits: "2"},
					{SqftMain: "", NumOfUnits: ""},
				},
			},
			wantSqft: 200,
			wantUnit: 2,
		},
		{
			name: "no subparts falls back to parcel-level scalars",
			detail: &entity.ParcelDetail{
				SqftMain:   "1500",
				NumOfUnits: "4",
				NumOfBeds:  "8",
			},
			wantSqft: 1500,
			wantUnit: 4,
			wantBeds: 8,
		},
		{
			name: "subparts present means parcel-level scalars never contribute",
			detail: &entity.ParcelDetail{
				SqftMain:   "9999",
				NumOfUnits: "99",
				SubParts: []entity.SubPart{
					{SqftMain: "100", NumOfUnits: "1"},
				},
			},
			wantSqft: 100,
			wantUnit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildParcelSummary(tt.detail)
			if got.TotalSqftPDB != tt.wantSqft {
				t.Errorf("TotalSqftPDB = %d, want %d", got.TotalSqftPDB, tt.wantSqft)
			}
			if got.NumUnits != tt.wantUnit {
				t.Errorf("NumUnits = %d, want %d", got.NumUnits, tt.wantUnit)
			}
			if got.Beds != tt.wantBeds {
				t.Errorf("Beds = %d, want %d", got.Beds, tt.wantBeds)
			}
		})
	}
}

func TestBuildParcelSummaryYearBuiltSortedDeduplicated(t *testing.T) {
	detail := &entity.ParcelDetail{
		SubParts: []entity.SubPart{
			{YearBuilt: "1987"},
			{YearBuilt: "1954"},
			{YearBuilt: "1987"},
			{YearBuilt: ""},
			{YearBuilt: "1954"},
		},
	}
	got := BuildParcelSummary(detail)
	want := []string{"1954", "1987"}
	if !reflect.DeepEqual(got.YearBuiltList, want) {
		t.Errorf("YearBuiltList = %v, want %v", got.YearBuiltList, want)
	}
}

func TestBuildParcelSummarySitusAndLand(t *testing.T) {
	tests := []struct {
		name      string
		detail    *entity.ParcelDetail
		wantSitus string
		wantLand  string
	}{
		{
			name: "joins non-empty situs parts",
			detail: &entity.ParcelDetail{
				SitusStreet:  " 1617 COSMO ST ",
				SitusCity:    "LOS ANGELES CA",
				SitusZipCode: "90028",
			},
			wantSitus: "1617 COSMO ST, LOS ANGELES CA, 90028",
		},
		{
			name: "skips empty situs parts",
			detail: &entity.ParcelDetail{
				SitusStreet:  "1617 COSMO ST",
				SitusZipCode: "90028",
			},
			wantSitus: "1617 COSMO ST, 90028",
		},
		{
			name:     "land dimensions only when both present",
			detail:   &entity.ParcelDetail{LandWidth: "50", LandDepth: "150"},
			wantLand: "50' x 150'",
		},
		{
			name:   "missing depth means absent land dimensions",
			detail: &entity.ParcelDetail{LandWidth: "50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildParcelSummary(tt.detail)
			if got.SitusAddress != tt.wantSitus {
				t.Errorf("SitusAddress = %q, want %q", got.SitusAddress, tt.wantSitus)
			}
			if got.LandWidthDepth != tt.wantLand {
				t.Errorf("LandWidthDepth = %q, want %q", got.LandWidthDepth, tt.wantLand)
			}
		})
	}
}

func TestBuildParcelSummaryCoordinates(t *testing.T) {
	got := BuildParcelSummary(&entity.ParcelDetail{Latitude: "34.101", Longitude: "-118.326"})
	if got.Latitude == nil || *got.Latitude != 34.101 {
		t.Errorf("Latitude = %v, want 34.101", got.Latitude)
	}
	if got.Longitude == nil || *got.Longitude != -118.326 {
		t.Errorf("Longitude = %v, want -118.326", got.Longitude)
	}

	got = BuildParcelSummary(&entity.ParcelDetail{})
	if got.Latitude != nil || got.Longitude != nil {
		t.Errorf("expected nil coordinates, got %v / %v", got.Latitude, got.Longitude)
	}
}

func TestGetParcelEndToEnd(t *testing.T) {
	repo := &fakeParcelRepo{detail: &entity.ParcelDetail{
		AIN: "5846022043",
		SubParts: []entity.SubPart{
			{SqftMain: "200", NumOfUnits: "1", DesignType: "Apartment"},
			{SqftMain: "300", NumOfUnits: "2", DesignType: "Apartment"},
		},
	}}
	uc := NewParcelLookup(repo)

	got, err := uc.GetParcel(context.Background(), "5846022043")
	if err != nil {
		t.Fatalf("GetParcel() error = %v", err)
	}
	if got.TotalSqftPDB != 500 {
		t.Errorf("TotalSqftPDB = %d, want 500", got.TotalSqftPDB)
	}
	if got.NumUnits != 3 {
		t.Errorf("NumUnits = %d, want 3", got.NumUnits)
	}
	if len(got.SubpartsDesignTypes) != 2 {
		t.Errorf("SubpartsDesignTypes length = %d, want 2", len(got.SubpartsDesignTypes))
	}
}

func TestGetParcelNotFound(t *testing.T) {
	uc := NewParcelLookup(&fakeParcelRepo{})
	_, err := uc.GetParcel(context.Background(), "123")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetParcel() error = %v, want ErrNotFound", err)
	}
}
