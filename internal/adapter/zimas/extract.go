package zimas

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var nonAlnum = regexp.MustCompile(`[^0-9a-zA-Z]+`)

// NormalizeLabel collapses runs of non-alphanumeric characters into single
// underscores: "High Quality Transit Corridor (within 1/2 mile)" becomes
// "High_Quality_Transit_Corridor_within_1_2_mile".
func NormalizeLabel(label string) string {
	collapsed := strings.Join(strings.Fields(label), " ")
	return strings.Trim(nonAlnum.ReplaceAllString(collapsed, "_"), "_")
}

// ExtractRows scans every table row in an HTML snapshot and records
// label/value pairs from the first two cells. Duplicate labels within a
// snapshot get a numeric suffix in encounter order.
func ExtractRows(html string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	data := make(map[string]string)
	counts := make(map[string]int)
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		label := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if label == "" || value == "" {
			return
		}
		key := NormalizeLabel(label)
		if key == "" {
			return
		}
		counts[key]++
		if counts[key] > 1 {
			key = fmt.Sprintf("%s_%d", key, counts[key])
		}
		data[key] = value
	})

	return data, nil
}

// ChooseFrame returns the index of the first frame snapshot whose visible
// text contains any of the keywords, defaulting to the main frame (index 0).
// Ambiguity between multiple matching frames resolves to the first.
func ChooseFrame(snapshots []string, keywords []string) int {
	for i, html := range snapshots {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			continue
		}
		body := strings.ToUpper(doc.Find("body").Text())
		for _, kw := range keywords {
			if strings.Contains(body, strings.ToUpper(kw)) {
				return i
			}
		}
	}
	return 0
}
