package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/parcel-service/internal/entity"
	"github.com/user/parcel-service/internal/repository"
	"github.com/user/parcel-service/pkg/metrics"
)

// PortalScrape defines the interface for zoning-portal scrape sessions.
type PortalScrape interface {
	// Scrape runs one portal session and writes the result to a CSV
	// artifact, returning the record and the artifact path.
	Scrape(ctx context.Context, houseNumber, streetName string) (*entity.ScrapedZoningRecord, string, error)
}

type portalScrapeUseCase struct {
	portalRepo repository.PortalRepository
	artifacts  repository.ArtifactRepository
}

// NewPortalScrape creates a new PortalScrape use case.
func NewPortalScrape(portalRepo repository.PortalRepository, artifacts repository.ArtifactRepository) PortalScrape {
	return &portalScrapeUseCase{
		portalRepo: portalRepo,
		artifacts:  artifacts,
	}
}

func (uc *portalScrapeUseCase) Scrape(ctx context.Context, houseNumber, streetName string) (*entity.ScrapedZoningRecord, string, error) {
	start := time.Now()
	record, err := uc.portalRepo.Scrape(ctx, houseNumber, streetName)
	metrics.ScrapeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ScrapesTotal.WithLabelValues("failure").Inc()
		return nil, "", err
	}

	for section, reason := range record.SectionErrors {
		metrics.ScrapeSectionFailures.WithLabelValues(section).Inc()
		slog.Warn("Portal section not scraped", "section", section, "reason", reason)
	}

	path, err := uc.artifacts.WriteScrape(record)
	if err != nil {
		metrics.ScrapesTotal.WithLabelValues("failure").Inc()
		return nil, "", fmt.Errorf("failed to write scrape artifact: %w", err)
	}

	metrics.ScrapesTotal.WithLabelValues("success").Inc()
	slog.Info("Portal scrape complete",
		"house_number", houseNumber,
		"street_name", streetName,
		"artifact", path,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return record, path, nil
}
