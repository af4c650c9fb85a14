// Package assessor implements the LA County assessor parcel-detail client.
package assessor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/user/parcel-service/internal/entity"
	"github.com/user/parcel-service/internal/repository"
	"github.com/user/parcel-service/pkg/metrics"
)

const service = "assessor"

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an assessor client against the given portal base URL.
func NewClient(baseURL string, httpClient *http.Client) repository.ParcelRepository {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// FetchDetail issues a single GET to the parcel-detail endpoint for an AIN.
func (c *Client) FetchDetail(ctx context.Context, ain string) (*entity.ParcelDetail, error) {
	params := url.Values{"ain": {ain}}
	endpoint := c.baseURL + "/api/parceldetail?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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
		Parcel *entity.ParcelDetail `json:"Parcel"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &repository.UpstreamError{Service: service, Err: err}
	}
	return payload.Parcel, nil
}
