// Command zimas is the address-only front-end: one portal scrape per run,
// with best-effort AIN enrichment via the open-data resolver.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/user/parcel-service/internal/adapter/assessor"
	"github.com/user/parcel-service/internal/adapter/csvexport"
	"github.com/user/parcel-service/internal/adapter/opendata"
	"github.com/user/parcel-service/internal/adapter/zimas"
	"github.com/user/parcel-service/internal/adapter/znet"
	"github.com/user/parcel-service/internal/repository"
	"github.com/user/parcel-service/internal/usecase"
	"github.com/user/parcel-service/pkg/config"
	"github.com/user/parcel-service/pkg/logger"
	"github.com/user/parcel-service/pkg/metrics"
)

func main() {
	app := &cli.App{
		Name:      "zimas",
		Usage:     "scrape the ZIMAS portal for one address",
		ArgsUsage: "<house-number> <street-name>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "visible", Usage: "run the browser headful"},
			&cli.IntFlag{Name: "slow", Usage: "per-action delay in milliseconds", Value: 0},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowAppHelp(c)
		return errors.New("house number and street name are required")
	}
	house := c.Args().Get(0)
	street := strings.Join(c.Args().Slice()[1:], " ")

	cfg := config.Load()
	logLevel := slog.LevelWarn
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(os.Stderr, logLevel)
	metrics.Init()

	layout := zimas.DefaultLayout()
	if cfg.ZimasLayoutFile != "" {
		loaded, err := zimas.LoadLayout(cfg.ZimasLayoutFile)
		if err != nil {
			return err
		}
		layout = loaded
	}

	scraper, err := zimas.NewScraper(zimas.Options{
		URL:      cfg.ZimasURL,
		Timeout:  cfg.ZimasTimeout,
		Headless: cfg.ZimasHeadless && !c.Bool("visible"),
		SlowMo:   time.Duration(c.Int("slow")) * time.Millisecond,
		Layout:   layout,
	})
	if err != nil {
		return err
	}

	portal := usecase.NewPortalScrape(scraper, csvexport.NewWriter(cfg.ArtifactDir))
	record, path, err := portal.Scrape(c.Context, house, street)
	if err != nil {
		return err
	}

	printJSON(record)
	fmt.Fprintln(os.Stderr, "Artifact:", path)

	// Best-effort AIN enrichment; failures here are information, never fatal.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	resolver := opendata.NewResolver(cfg.OpenDataURL, httpClient)
	ain, err := resolver.ResolveAIN(c.Context, house, street)
	switch {
	case errors.Is(err, repository.ErrNoMatch):
		fmt.Fprintln(os.Stderr, "No AIN found for this address.")
		return nil
	case err != nil:
		fmt.Fprintln(os.Stderr, "AIN lookup unavailable:", err)
		return nil
	}
	fmt.Fprintln(os.Stderr, "AIN:", ain)

	parcelRepo := assessor.NewClient(cfg.AssessorBaseURL, httpClient)
	zoningRepo := znet.NewClient(cfg.ZoningQueryURL, httpClient)
	parcels := usecase.NewParcelLookup(parcelRepo)
	zoning := usecase.NewZoningLookup(parcelRepo, zoningRepo)
	combos := usecase.NewComboLookup(parcels, zoning, cfg.BatchConcurrency)

	combined, err := combos.GetCombined(c.Context, ain)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Combined lookup failed:", err)
		return nil
	}
	printJSON(combined)
	return nil
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to encode JSON:", err)
		return
	}
	fmt.Println(string(out))
}
