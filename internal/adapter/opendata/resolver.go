// Package opendata implements the address-to-AIN resolver against the LA
// City open-data rows endpoint.
package opendata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/user/parcel-service/internal/repository"
	"github.com/user/parcel-service/pkg/metrics"
)

const service = "opendata"

type Resolver struct {
	rowsURL string
	http    *http.Client
}

// NewResolver creates a resolver against the given rows endpoint.
func NewResolver(rowsURL string, httpClient *http.Client) repository.AddressRepository {
	return &Resolver{
		rowsURL: rowsURL,
		http:    httpClient,
	}
}

// ResolveAIN filters the endpoint by address and then linearly scans the
// returned rows for an exact house-number match plus a case-insensitive
// street-name prefix match. A transport or HTTP failure surfaces as an
// *UpstreamError; an exhausted scan surfaces as ErrNoMatch.
func (r *Resolver) ResolveAIN(ctx context.Context, houseNumber, streetName string) (string, error) {
	params := url.Values{
		"house_number": {houseNumber},
		"street_name":  {streetName},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.rowsURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := r.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(service, "error").Inc()
		return "", &repository.UpstreamError{Service: service, Err: err}
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(service, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &repository.UpstreamError{Service: service, StatusCode: resp.StatusCode}
	}

	var payload struct {
		Rows []map[string]any `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &repository.UpstreamError{Service: service, Err: err}
	}

	prefix := strings.ToUpper(streetName)
	for _, row := range payload.Rows {
		if rowString(row, "house_number") != houseNumber {
			continue
		}
		if !strings.HasPrefix(strings.ToUpper(rowString(row, "street_name")), prefix) {
			continue
		}
		if ain := rowString(row, "ain"); ain != "" {
			return ain, nil
		}
	}

	return "", fmt.Errorf("address %s %s: %w", houseNumber, streetName, repository.ErrNoMatch)
}

// rowString reads a row value tolerantly; the endpoint is loose about types.
func rowString(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
