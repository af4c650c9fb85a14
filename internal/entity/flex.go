package entity

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString decodes a JSON string, number, or null into a string. The
// assessor API is inconsistent about numeric fields (square footage and unit
// counts arrive as strings on some parcels and numbers on others), so every
// field we aggregate over tolerates both.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(trimmed)
	return nil
}

func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}

// Int parses the value as an integer. Malformed or empty values contribute
// exactly zero, mirroring the tolerant aggregation over assessor subparts.
func (f FlexString) Int() int {
	n, err := strconv.Atoi(f.String())
	if err != nil {
		return 0
	}
	return n
}

// Float parses the value as a float64, reporting whether a usable number was
// present at all. Coordinates use this to distinguish absent from zero.
func (f FlexString) Float() (float64, bool) {
	v, err := strconv.ParseFloat(f.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
