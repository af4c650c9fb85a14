package zimas

import "testing"

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Flood Zone", "Flood_Zone"},
		{"High Quality Transit Corridor (within 1/2 mile)", "High_Quality_Transit_Corridor_within_1_2_mile"},
		{"  Nearest Fault\n(Distance in km) ", "Nearest_Fault_Distance_in_km"},
		{"CDO: Community Design Overlay", "CDO_Community_Design_Overlay"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeLabel(tt.in); got != tt.want {
			t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractRows(t *testing.T) {
	html := `<html><body><table>
		<tr><th>Flood Zone</th><td>None</td></tr>
		<tr><td>Airport Hazard</td><td>None</td><td>ignored third cell</td></tr>
		<tr><td>Nearest Fault (Distance in km)</td><td>1.52</td></tr>
		<tr><td>Nearest Fault (Distance in km)</td><td>Hollywood Fault</td></tr>
		<tr><td>Empty Value</td><td>  </td></tr>
		<tr><td>Lonely cell</td></tr>
	</table></body></html>`

	rows, err := ExtractRows(html)
	if err != nil {
		t.Fatalf("ExtractRows() error = %v", err)
	}

	want := map[string]string{
		"Flood_Zone":                   "None",
		"Airport_Hazard":               "None",
		"Nearest_Fault_Distance_in_km": "1.52",
		// Repeated label keeps both values, the second under a suffixed key.
		"Nearest_Fault_Distance_in_km_2": "Hollywood Fault",
	}
	if len(rows) != len(want) {
		t.Errorf("got %d rows, want %d: %v", len(rows), len(want), rows)
	}
	for k, v := range want {
		if rows[k] != v {
			t.Errorf("rows[%q] = %q, want %q", k, rows[k], v)
		}
	}
}

func TestChooseFrame(t *testing.T) {
	snapshots := []string{
		`<html><body>Search results</body></html>`,
		`<html><body><table><tr><td>Community Plan Area</td><td>Hollywood</td></tr></table></body></html>`,
		`<html><body>nearest fault details</body></html>`,
	}

	tests := []struct {
		name     string
		keywords []string
		want     int
	}{
		{"matches frame text case-insensitively", []string{"COMMUNITY PLAN AREA"}, 1},
		{"later frame", []string{"Nearest Fault"}, 2},
		{"no keyword hit falls back to main frame", []string{"Liquefaction"}, 0},
		{"first matching frame wins", []string{"Search", "Nearest Fault"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseFrame(snapshots, tt.keywords); got != tt.want {
				t.Errorf("ChooseFrame() = %d, want %d", got, tt.want)
			}
		})
	}
}
