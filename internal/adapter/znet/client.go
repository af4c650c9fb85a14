// Package znet implements the Z-NET GIS zoning-layer query client.
package znet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/user/parcel-service/internal/entity"
	"github.com/user/parcel-service/internal/repository"
	"github.com/user/parcel-service/pkg/metrics"
)

const service = "znet"

type Client struct {
	queryURL string
	http     *http.Client
}

// NewClient creates a zoning client against the given layer query URL.
func NewClient(queryURL string, httpClient *http.Client) repository.ZoningRepository {
	return &Client{
		queryURL: queryURL,
		http:     httpClient,
	}
}

// QueryPoint runs a point-intersection query in WGS84 and returns the first
// intersecting polygon's four named attributes, or (nil, nil) when the
// feature list is empty.
func (c *Client) QueryPoint(ctx context.Context, lat, lon float64) (*entity.ZoneAttributes, error) {
	params := url.Values{
		"f":              {"json"},
		"geometry":       {formatCoord(lon) + "," + formatCoord(lat)}, // x,y = lon,lat
		"geometryType":   {"esriGeometryPoint"},
		"inSR":           {"4326"},
		"spatialRel":     {"esriSpatialRelIntersects"},
		"outFields":      {"ZONE,Z_DESC,Z_CATEGORY,TITLE_22"},
		"returnGeometry": {"false"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.queryURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(service, "error").Inc()
		return nil, &repository.UpstreamError{Service: service, Err: err}
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(service, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &repository.UpstreamError{Service: service, StatusCode: resp.StatusCode}
	}

	var payload struct {
		Features []struct {
			Attributes struct {
				Zone      string `json:"ZONE"`
				ZDesc     string `json:"Z_DESC"`
				ZCategory string `json:"Z_CATEGORY"`
				Title22   string `json:"TITLE_22"`
			} `json:"attributes"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &repository.UpstreamError{Service: service, Err: err}
	}

	if len(payload.Features) == 0 {
		return nil, nil
	}

	attrs := payload.Features[0].Attributes
	return &entity.ZoneAttributes{
		Zone:        attrs.Zone,
		Description: attrs.ZDesc,
		Category:    attrs.ZCategory,
		Title22URL:  attrs.Title22,
	}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
