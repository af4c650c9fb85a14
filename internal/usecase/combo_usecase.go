package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/user/parcel-service/internal/entity"
)

// ComboLookup defines the interface for combined parcel+zoning views.
type ComboLookup interface {
	GetCombined(ctx context.Context, ain string) (*entity.CombinedResult, error)
	GetCombinedBatch(ctx context.Context, ains []string) []entity.BatchItem
}

type comboLookupUseCase struct {
	parcels     ParcelLookup
	zoning      ZoningLookup
	concurrency int
}

// NewComboLookup creates a new ComboLookup use case. Batch lookups fan out
// across at most concurrency workers.
func NewComboLookup(parcels ParcelLookup, zoning ZoningLookup, concurrency int) ComboLookup {
	if concurrency < 1 {
		concurrency = 1
	}
	return &comboLookupUseCase{
		parcels:     parcels,
		zoning:      zoning,
		concurrency: concurrency,
	}
}

// GetCombined sequences the parcel and zoning lookups independently; nothing
// cross-validates their coordinates or zoning codes.
func (uc *comboLookupUseCase) GetCombined(ctx context.Context, ain string) (*entity.CombinedResult, error) {
	parcel, err := uc.parcels.GetParcel(ctx, ain)
	if err != nil {
		return nil, err
	}
	zoning, err := uc.zoning.GetZoning(ctx, ain)
	if err != nil {
		return nil, err
	}
	return &entity.CombinedResult{
		AIN:    ain,
		Parcel: parcel,
		Zoning: zoning,
	}, nil
}

// GetCombinedBatch resolves each AIN under a bounded worker pool. Results
// keep input order; a failed item carries its error inline and never aborts
// the rest.
func (uc *comboLookupUseCase) GetCombinedBatch(ctx context.Context, ains []string) []entity.BatchItem {
	results := make([]entity.BatchItem, len(ains))

	workers := uc.concurrency
	if workers > len(ains) {
		workers = len(ains)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				ain := ains[idx]
				combined, err := uc.GetCombined(ctx, ain)
				if err != nil {
					slog.Warn("Batch item failed", "ain", ain, "error", err)
					results[idx] = entity.BatchItem{AIN: ain, Error: err.Error()}
					continue
				}
				results[idx] = entity.BatchItem{
					AIN:    ain,
					Parcel: combined.Parcel,
					Zoning: combined.Zoning,
				}
			}
		}()
	}

	for i := range ains {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
