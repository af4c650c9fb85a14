package zimas

import (
	"fmt"
	"os"

	"github.com/user/parcel-service/internal/entity"
	"gopkg.in/yaml.v3"
)

// SectionSpec declares one scrapeable portal section: the tab label that
// activates it and the keywords that identify the frame carrying its content.
type SectionSpec struct {
	Name     string   `yaml:"name"`
	TabText  string   `yaml:"tab_text"`
	Keywords []string `yaml:"keywords"`
}

// FieldSpec declares how one flat attribute is produced: either a fixed
// value, or a lookup of Key inside the named section's scraped rows.
type FieldSpec struct {
	Attribute string `yaml:"attribute"`
	Section   string `yaml:"section,omitempty"`
	Key       string `yaml:"key,omitempty"`
	Fixed     string `yaml:"fixed,omitempty"`
}

// Layout is a versioned description of the portal page structure. Known
// page-layout revisions are data, not code: a revision that moves a field
// changes a layout file, and a field whose section no longer exists fails
// validation loudly instead of degrading silently.
type Layout struct {
	Version  string        `yaml:"version"`
	Sections []SectionSpec `yaml:"sections"`
	Fields   []FieldSpec   `yaml:"fields"`
}

// LoadLayout reads and validates a layout from a YAML file.
func LoadLayout(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout file: %w", err)
	}
	var l Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse layout file: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("layout %q: %w", path, err)
	}
	return &l, nil
}

// Validate checks internal consistency and that the fields produce exactly
// the canonical attribute set.
func (l *Layout) Validate() error {
	sections := make(map[string]bool, len(l.Sections))
	for i, s := range l.Sections {
		if s.Name == "" || s.TabText == "" {
			return fmt.Errorf("section %d: name and tab_text are required", i)
		}
		if sections[s.Name] {
			return fmt.Errorf("duplicate section %q", s.Name)
		}
		sections[s.Name] = true
	}

	canonical := make(map[string]bool, len(entity.OverlayAttributeNames))
	for _, name := range entity.OverlayAttributeNames {
		canonical[name] = true
	}

	seen := make(map[string]bool, len(l.Fields))
	for _, f := range l.Fields {
		if f.Attribute == "" {
			return fmt.Errorf("field with empty attribute")
		}
		if !canonical[f.Attribute] {
			return fmt.Errorf("field %q is not a known overlay attribute", f.Attribute)
		}
		if seen[f.Attribute] {
			return fmt.Errorf("duplicate field %q", f.Attribute)
		}
		seen[f.Attribute] = true
		if f.Fixed == "" {
			if !sections[f.Section] {
				return fmt.Errorf("field %q references unknown section %q", f.Attribute, f.Section)
			}
			if f.Key == "" {
				return fmt.Errorf("field %q: key is required unless fixed", f.Attribute)
			}
		}
	}
	for _, name := range entity.OverlayAttributeNames {
		if !seen[name] {
			return fmt.Errorf("missing field for attribute %q", name)
		}
	}
	return nil
}

// Remap projects the per-section row maps onto the flat attribute record,
// substituting the sentinel for any value not found at its declared path.
func (l *Layout) Remap(sections map[string]map[string]string) map[string]string {
	flat := make(map[string]string, len(l.Fields))
	for _, f := range l.Fields {
		if f.Fixed != "" {
			flat[f.Attribute] = f.Fixed
			continue
		}
		if v, ok := sections[f.Section][f.Key]; ok && v != "" {
			flat[f.Attribute] = v
			continue
		}
		flat[f.Attribute] = entity.NotFoundSentinel
	}
	return flat
}

// DefaultLayout is the built-in description of the current ZIMAS page.
func DefaultLayout() *Layout {
	return &Layout{
		Version: "zimas-2024",
		Sections: []SectionSpec{
			{Name: "Jurisdictional", TabText: "Jurisdictional", Keywords: []string{"Community Plan Area", "Council District"}},
			{Name: "Planning_and_Zoning", TabText: "Planning and Zoning", Keywords: []string{"Zoning", "General Plan Land Use"}},
			{Name: "Additional", TabText: "Additional", Keywords: []string{"Airport Hazard", "Very High Fire Hazard"}},
			{Name: "Environmental", TabText: "Environmental", Keywords: []string{"Santa Monica Mountains", "Biological Resource"}},
			{Name: "Seismic_Hazards", TabText: "Seismic Hazards", Keywords: []string{"Nearest Fault", "Slip Rate"}},
		},
		Fields: []FieldSpec{
			{Attribute: "General_Plan_Land_Use", Section: "Planning_and_Zoning", Key: "General_Plan_Land_Use"},
			{Attribute: "Occupancy", Fixed: "Not listed in ZIMAS"},
			{Attribute: "Community_Plan_Area", Section: "Jurisdictional", Key: "Community_Plan_Area"},
			{Attribute: "Liquefaction_Zone", Section: "Seismic_Hazards", Key: "Liquefaction"},
			{Attribute: "Flood_Zone", Section: "Additional", Key: "Flood_Zone"},
			{Attribute: "Specific_Plan", Section: "Planning_and_Zoning", Key: "Specific_Plan_Area"},
			{Attribute: "High_Quality_Transit_Corridor_within_half_mile", Section: "Planning_and_Zoning", Key: "High_Quality_Transit_Corridor_within_1_2_mile"},
			{Attribute: "California_Building_Codes", Fixed: "Not listed in ZIMAS"},
			{Attribute: "Alquist_Priolo_Fault_Zone", Section: "Seismic_Hazards", Key: "Alquist_Priolo_Fault_Zone"},
			{Attribute: "Hillside_Area_Zoning_Code", Section: "Planning_and_Zoning", Key: "Hillside_Area_Zoning_Code"},
			{Attribute: "Special_Land_Use_or_Zoning", Section: "Planning_and_Zoning", Key: "Special_Land_Use_Zoning"},
			{Attribute: "Historic_Preservation_Review", Section: "Planning_and_Zoning", Key: "Historic_Preservation_Review"},
			{Attribute: "HistoricPlacesLA", Section: "Planning_and_Zoning", Key: "HistoricPlacesLA"},
			{Attribute: "CDO_Community_Design_Overlay", Section: "Planning_and_Zoning", Key: "CDO_Community_Design_Overlay"},
			{Attribute: "RFA_Residential_Floor_Area_District", Section: "Planning_and_Zoning", Key: "RFA_Residential_Floor_Area_District"},
			{Attribute: "Airport_Hazard", Section: "Additional", Key: "Airport_Hazard"},
			{Attribute: "Coastal_Zone", Section: "Additional", Key: "Coastal_Zone"},
			{Attribute: "Very_High_Fire_Hazard_Severity_Zone", Section: "Additional", Key: "Very_High_Fire_Hazard_Severity_Zone"},
			{Attribute: "Special_Grading_Area", Section: "Additional", Key: "Special_Grading_Area_BOE_Basic_Grid_Map_A_13372"},
			{Attribute: "Wildland_Urban_Interface_WUI", Section: "Environmental", Key: "Wildland_Urban_Interface_WUI"},
		},
	}
}
