package entity

// NotFoundSentinel is substituted for any flat attribute whose section or key
// could not be located on the portal page.
const NotFoundSentinel = "Not found"

// OverlayAttributeNames lists the flat-record attributes in export order.
// CSV artifacts and the declarative field remapping both follow this order.
var OverlayAttributeNames = []string{
	"General_Plan_Land_Use",
	"Occupancy",
	"Community_Plan_Area",
	"Liquefaction_Zone",
	"Flood_Zone",
	"Specific_Plan",
	"High_Quality_Transit_Corridor_within_half_mile",
	"California_Building_Codes",
	"Alquist_Priolo_Fault_Zone",
	"Hillside_Area_Zoning_Code",
	"Special_Land_Use_or_Zoning",
	"Historic_Preservation_Review",
	"HistoricPlacesLA",
	"CDO_Community_Design_Overlay",
	"RFA_Residential_Floor_Area_District",
	"Airport_Hazard",
	"Coastal_Zone",
	"Very_High_Fire_Hazard_Severity_Zone",
	"Special_Grading_Area",
	"Wildland_Urban_Interface_WUI",
}

// ScrapeDebug echoes the scrape input back to the caller on both the success
// and the error path.
type ScrapeDebug struct {
	SessionID       string `json:"session_id"`
	HouseNumber     string `json:"house_number"`
	StreetNameInput string `json:"street_name_input"`
	StreetNameClean string `json:"street_name_clean"`
}

// ScrapedZoningRecord is the result of one portal scrape. It is keyed by
// house number + street name, not AIN, and carries no identity across
// invocations: every call produces a fresh record even for the same address.
//
// Sections holds the raw per-section label/value maps; Attributes is the flat
// remapped record over OverlayAttributeNames. A section that could not be
// located or extracted appears in SectionErrors while the remaining sections
// still contribute.
type ScrapedZoningRecord struct {
	HouseNumber   string                       `json:"house_number"`
	StreetName    string                       `json:"street_name"`
	Attributes    map[string]string            `json:"overlay_zones_data"`
	Sections      map[string]map[string]string `json:"-"`
	SectionErrors map[string]string            `json:"section_errors,omitempty"`
	Debug         ScrapeDebug                  `json:"_debug"`
}
