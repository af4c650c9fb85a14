package entity

// ZoneAttributes are the four named output fields of the Z-NET zoning layer.
type ZoneAttributes struct {
	Zone        string `json:"zone"`
	Description string `json:"zone_description"`
	Category    string `json:"zone_category"`
	Title22URL  string `json:"title_22_url"`
}

// ZoningSummary merges assessor parcel info with the Z-NET spatial match.
// The four znet_* fields are all-or-nothing: populated together from the
// first intersecting polygon, all null when nothing intersects.
type ZoningSummary struct {
	AIN                 string   `json:"ain"`
	SitusAddress        string   `json:"situs_address"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	UseType             string   `json:"use_type"`
	AssessorZoningPDB   string   `json:"assessor_zoning_pdb"`
	ZnetZone            *string  `json:"znet_zone"`
	ZnetZoneDescription *string  `json:"znet_zone_description"`
	ZnetZoneCategory    *string  `json:"znet_zone_category"`
	ZnetTitle22URL      *string  `json:"znet_title_22_url"`
}

// CombinedResult composes the parcel and zoning views for one AIN. The two
// are fetched independently; nothing reconciles their coordinates or codes.
type CombinedResult struct {
	AIN    string         `json:"ain"`
	Parcel *ParcelSummary `json:"parcel"`
	Zoning *ZoningSummary `json:"zoning"`
}

// BatchItem is one entry of a batch combined lookup. Error is non-empty and
// Parcel/Zoning are null when that item failed; other items are unaffected.
type BatchItem struct {
	AIN    string         `json:"ain"`
	Parcel *ParcelSummary `json:"parcel"`
	Zoning *ZoningSummary `json:"zoning"`
	Error  string         `json:"error,omitempty"`
}
