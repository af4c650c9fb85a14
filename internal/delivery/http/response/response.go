package response

import "github.com/user/parcel-service/internal/entity"

// BatchComboResponse wraps the per-AIN results of a batch combined lookup.
// The list is always the same length and order as the requested AINs.
type BatchComboResponse struct {
	Results []entity.BatchItem `json:"results"`
}
