package entity

// ParcelDetail mirrors the Parcel object of the assessor parcel-detail API.
// All scalar fields are decoded tolerantly; the upstream payload mixes
// strings and numbers freely.
type ParcelDetail struct {
	AIN              string     `json:"AIN"`
	Latitude         FlexString `json:"Latitude"`
	Longitude        FlexString `json:"Longitude"`
	SitusStreet      string     `json:"SitusStreet"`
	SitusCity        string     `json:"SitusCity"`
	SitusZipCode     string     `json:"SitusZipCode"`
	UseType          string     `json:"UseType"`
	ZoningPDB        string     `json:"ZoningPDB"`
	LegalDescription string     `json:"LegalDescription"`
	QualityClass     string     `json:"QualityClass"`
	SqftMain         FlexString `json:"SqftMain"`
	YearBuilt        FlexString `json:"YearBuilt"`
	NumOfUnits       FlexString `json:"NumOfUnits"`
	NumOfBeds        FlexString `json:"NumOfBeds"`
	NumOfBaths       FlexString `json:"NumOfBaths"`
	LandWidth        FlexString `json:"LandWidth"`
	LandDepth        FlexString `json:"LandDepth"`
	SubParts         []SubPart  `json:"SubParts"`
}

// SubPart is one structural component of a parcel's improvement, e.g. one of
// several buildings. Aggregates on ParcelSummary sum over these.
type SubPart struct {
	SqftMain           FlexString `json:"SqftMain"`
	YearBuilt          FlexString `json:"YearBuilt"`
	NumOfUnits         FlexString `json:"NumOfUnits"`
	NumOfBeds          FlexString `json:"NumOfBeds"`
	NumOfBaths         FlexString `json:"NumOfBaths"`
	DesignType         string     `json:"DesignType"`
	DesignType1stDigit FlexString `json:"DesignType1stDigit"`
	DesignType2ndDigit FlexString `json:"DesignType2ndDigit"`
	DesignType3rdDigit FlexString `json:"DesignType3rdDigit"`
	DesignType4thDigit FlexString `json:"DesignType4thDigit"`
}

// SubpartDesign is the per-subpart design-type record carried on the summary.
type SubpartDesign struct {
	DesignType string `json:"design_type"`
	D1         string `json:"d1"`
	D2         string `json:"d2"`
	D3         string `json:"d3"`
	D4         string `json:"d4"`
}

// ParcelSummary is the flat assessor view of one parcel. Counts are sums over
// subparts when any exist; otherwise they fall back to the parcel-level
// scalars. The two paths never both contribute.
type ParcelSummary struct {
	AIN                 string          `json:"ain"`
	Latitude            *float64        `json:"latitude"`
	Longitude           *float64        `json:"longitude"`
	SitusAddress        string          `json:"situs_address"`
	UseType             string          `json:"use_type"`
	Zoning              string          `json:"zoning"`
	LegalDescription    string          `json:"legal_description"`
	QualityClass        string          `json:"quality_class"`
	TotalSqftPDB        int             `json:"total_sqft_pdb"`
	LandWidthDepth      string          `json:"land_width_depth,omitempty"`
	YearBuiltList       []string        `json:"year_built_list"`
	NumUnits            int             `json:"num_units"`
	Beds                int             `json:"beds"`
	Baths               int             `json:"baths"`
	SubpartsDesignTypes []SubpartDesign `json:"subparts_design_types"`
}
