// Command explorer is the full interactive front-end: combined parcel and
// zoning lookup by AIN, or by address via the open-data resolver plus a
// portal scrape for the same address.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"github.com/user/parcel-service/internal/adapter/assessor"
	"github.com/user/parcel-service/internal/adapter/csvexport"
	"github.com/user/parcel-service/internal/adapter/opendata"
	"github.com/user/parcel-service/internal/adapter/zimas"
	"github.com/user/parcel-service/internal/adapter/znet"
	"github.com/user/parcel-service/internal/entity"
	"github.com/user/parcel-service/internal/repository"
	"github.com/user/parcel-service/internal/usecase"
	"github.com/user/parcel-service/pkg/config"
	"github.com/user/parcel-service/pkg/logger"
	"github.com/user/parcel-service/pkg/metrics"
)

func main() {
	app := &cli.App{
		Name:  "explorer",
		Usage: "combined LA County parcel, zoning, and overlay lookup",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ain", Usage: "Assessor Identification Number"},
			&cli.StringFlag{Name: "house", Usage: "house number (address mode)"},
			&cli.StringFlag{Name: "street", Usage: "street name (address mode)"},
			&cli.BoolFlag{Name: "raw", Usage: "print raw JSON instead of tables"},
			&cli.BoolFlag{Name: "csv", Usage: "write a combined CSV export row (address mode)"},
			&cli.BoolFlag{Name: "visible", Usage: "run the portal browser headful"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()
	logLevel := slog.LevelWarn
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(os.Stderr, logLevel)
	metrics.Init()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	parcelRepo := assessor.NewClient(cfg.AssessorBaseURL, httpClient)
	zoningRepo := znet.NewClient(cfg.ZoningQueryURL, httpClient)
	resolver := opendata.NewResolver(cfg.OpenDataURL, httpClient)

	parcels := usecase.NewParcelLookup(parcelRepo)
	zoning := usecase.NewZoningLookup(parcelRepo, zoningRepo)
	combos := usecase.NewComboLookup(parcels, zoning, cfg.BatchConcurrency)

	ctx := c.Context

	ain := strings.TrimSpace(c.String("ain"))
	house := strings.TrimSpace(c.String("house"))
	street := strings.TrimSpace(c.String("street"))

	if ain == "" && house == "" && street == "" {
		if prompt("Lookup by [1] AIN or [2] address? ") == "2" {
			house = prompt("House number: ")
			street = prompt("Street name: ")
		} else {
			ain = prompt("AIN: ")
		}
	}

	var record *entity.ScrapedZoningRecord
	if ain == "" {
		if house == "" {
			house = prompt("House number: ")
		}
		if street == "" {
			street = prompt("Street name: ")
		}

		resolved, err := resolver.ResolveAIN(ctx, house, street)
		switch {
		case errors.Is(err, repository.ErrNoMatch):
			return fmt.Errorf("address %s %s not found in the open-data index", house, street)
		case err != nil:
			return fmt.Errorf("address lookup unavailable: %w", err)
		}
		fmt.Println("AIN found:", resolved)
		ain = resolved

		// Address mode also scrapes the portal for the same address; a
		// scrape failure is reported but never blocks the combined lookup.
		rec, path, err := scrapePortal(c, cfg, house, street)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Portal scrape failed:", err)
		} else {
			fmt.Println("Scrape artifact:", path)
			record = rec
		}
	}

	combined, err := combos.GetCombined(ctx, ain)
	if err != nil {
		return err
	}

	if c.Bool("raw") {
		printJSON(combined)
		if record != nil {
			printJSON(record)
		}
	} else {
		renderParcel(combined.Parcel)
		renderZoning(combined.Zoning)
		if record != nil {
			renderOverlays(record)
		}
	}

	if c.Bool("csv") && record != nil {
		path, err := csvexport.NewWriter(cfg.ArtifactDir).WriteCombined(ain, record)
		if err != nil {
			return fmt.Errorf("combined export: %w", err)
		}
		fmt.Println("Combined export:", path)
	}
	return nil
}

func scrapePortal(c *cli.Context, cfg *config.Config, house, street string) (*entity.ScrapedZoningRecord, string, error) {
	layout := zimas.DefaultLayout()
	if cfg.ZimasLayoutFile != "" {
		loaded, err := zimas.LoadLayout(cfg.ZimasLayoutFile)
		if err != nil {
			return nil, "", err
		}
		layout = loaded
	}

	scraper, err := zimas.NewScraper(zimas.Options{
		URL:      cfg.ZimasURL,
		Timeout:  cfg.ZimasTimeout,
		Headless: cfg.ZimasHeadless && !c.Bool("visible"),
		SlowMo:   cfg.ZimasSlowMo,
		Layout:   layout,
	})
	if err != nil {
		return nil, "", err
	}

	portal := usecase.NewPortalScrape(scraper, csvexport.NewWriter(cfg.ArtifactDir))
	return portal.Scrape(c.Context, house, street)
}

func renderParcel(p *entity.ParcelSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Parcel " + p.AIN)
	t.AppendRows([]table.Row{
		{"Situs address", p.SitusAddress},
		{"Use type", p.UseType},
		{"PDB zoning", p.Zoning},
		{"Legal description", p.LegalDescription},
		{"Quality class", p.QualityClass},
		{"Total sqft (PDB)", p.TotalSqftPDB},
		{"Land W x D", orNA(p.LandWidthDepth)},
		{"Year built", strings.Join(p.YearBuiltList, ", ")},
		{"Units / beds / baths", fmt.Sprintf("%d / %d / %d", p.NumUnits, p.Beds, p.Baths)},
		{"Coordinates", coords(p.Latitude, p.Longitude)},
	})
	t.Render()

	if len(p.SubpartsDesignTypes) > 0 {
		dt := table.NewWriter()
		dt.SetOutputMirror(os.Stdout)
		dt.SetTitle("Subpart design types")
		dt.AppendHeader(table.Row{"Design Type", "D1", "D2", "D3", "D4"})
		for _, d := range p.SubpartsDesignTypes {
			dt.AppendRow(table.Row{d.DesignType, d.D1, d.D2, d.D3, d.D4})
		}
		dt.Render()
	}
}

func renderZoning(z *entity.ZoningSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Zoning " + z.AIN)
	t.AppendRows([]table.Row{
		{"Situs address", z.SitusAddress},
		{"Use type", z.UseType},
		{"PDB zoning", z.AssessorZoningPDB},
		{"Z-NET zone", orNAPtr(z.ZnetZone)},
		{"Z-NET description", orNAPtr(z.ZnetZoneDescription)},
		{"Z-NET category", orNAPtr(z.ZnetZoneCategory)},
		{"Title 22", municodeURL(z.ZnetTitle22URL)},
		{"Coordinates", coords(z.Latitude, z.Longitude)},
	})
	t.Render()
}

func renderOverlays(rec *entity.ScrapedZoningRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("ZIMAS overlays — %s %s", rec.HouseNumber, rec.StreetName))
	for _, name := range entity.OverlayAttributeNames {
		t.AppendRow(table.Row{strings.ReplaceAll(name, "_", " "), rec.Attributes[name]})
	}
	t.Render()

	for section, reason := range rec.SectionErrors {
		fmt.Fprintf(os.Stderr, "Section %s not scraped: %s\n", section, reason)
	}
}

func municodeURL(nodeID *string) string {
	if nodeID == nil || *nodeID == "" {
		return "n/a"
	}
	return "https://library.municode.com/ca/los_angeles_county/codes/code_of_ordinances?nodeId=" + *nodeID
}

func coords(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.6f, %.6f", *lat, *lon)
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}

func orNAPtr(s *string) string {
	if s == nil {
		return "n/a"
	}
	return orNA(*s)
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to encode JSON:", err)
		return
	}
	fmt.Println(string(out))
}

func prompt(label string) string {
	fmt.Print(label)
	sc := bufio.NewScanner(os.Stdin)
	if sc.Scan() {
		return strings.TrimSpace(sc.Text())
	}
	return ""
}
