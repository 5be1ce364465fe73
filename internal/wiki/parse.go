package wiki

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Bio holds the attributes extracted from one article. Any field may be
// empty when the article doesn't carry it.
type Bio struct {
	HometownCity  string
	HometownState string
	HighSchool    string
	College       string
}

// Empty reports whether nothing at all was extracted.
func (b Bio) Empty() bool {
	return b == Bio{}
}

// Complete reports whether every attribute was found.
func (b Bio) Complete() bool {
	return b.HometownCity != "" && b.HometownState != "" && b.HighSchool != "" && b.College != ""
}

var (
	parenPattern = regexp.MustCompile(`\([^)]*\)`)
	// "... born ... in City, State ..." in running text. The state is one
	// or two capitalized words so the match stops before trailing prose.
	bornInPattern = regexp.MustCompile(`born[^.]*?\bin ([A-Z][A-Za-z.'-]+(?: [A-Z][A-Za-z.'-]+)*), ([A-Z][a-z]+(?: [A-Z][a-z]+)?)`)
)

// extractBio pulls biographical attributes from an article document.
// Strategy 1 reads the infobox rows; strategy 2 falls back to a regex over
// the lead paragraphs for the birthplace.
func extractBio(doc *goquery.Document) Bio {
	var bio Bio

	doc.Find("table.infobox tr").Each(func(i int, row *goquery.Selection) {
		header := strings.TrimSpace(row.Find("th").First().Text())
		cell := row.Find("td").First()
		if cell.Length() == 0 {
			return
		}

		switch {
		case strings.EqualFold(header, "Born"):
			if bio.HometownCity == "" {
				bio.HometownCity, bio.HometownState = hometownFromBorn(cell.Text())
			}
		case strings.EqualFold(header, "High school"):
			if bio.HighSchool == "" {
				bio.HighSchool = cellValue(cell)
			}
		case strings.EqualFold(header, "College"):
			if bio.College == "" {
				bio.College = cellValue(cell)
			}
		}
	})

	if bio.HometownCity == "" {
		doc.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
			text := parenPattern.ReplaceAllString(p.Text(), "")
			if m := bornInPattern.FindStringSubmatch(text); m != nil {
				bio.HometownCity = strings.TrimSpace(m[1])
				bio.HometownState = abbreviateState(strings.TrimSpace(m[2]))
				return false
			}
			// Only the lead paragraphs mention the birthplace.
			return i < 5
		})
	}

	return bio
}

// cellValue prefers the first link text in an infobox cell, falling back
// to the cell's own text. Footnote markers like [1] are stripped.
func cellValue(cell *goquery.Selection) string {
	value := strings.TrimSpace(cell.Find("a").First().Text())
	if value == "" {
		value = strings.TrimSpace(cell.Text())
	}
	if idx := strings.IndexByte(value, '['); idx > 0 {
		value = strings.TrimSpace(value[:idx])
	}
	return value
}

// hometownFromBorn extracts "City, State" from an infobox Born cell, which
// typically reads like "June 2, 1995 (age 30) Springfield, Illinois, U.S.".
func hometownFromBorn(text string) (city, state string) {
	text = parenPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)

	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	// Drop a trailing country.
	if len(parts) > 0 {
		switch strings.ToUpper(strings.Trim(parts[len(parts)-1], ". ")) {
		case "US", "USA", "UNITED STATES":
			parts = parts[:len(parts)-1]
		}
	}
	if len(parts) < 2 {
		return "", ""
	}

	state = parts[len(parts)-1]
	city = cityToken(parts[len(parts)-2])
	if city == "" || state == "" || strings.ContainsAny(state, "0123456789") {
		return "", ""
	}
	return city, abbreviateState(state)
}

// cityToken drops the date remnants that share a comma segment with the
// city ("1995 Springfield" → "Springfield").
func cityToken(segment string) string {
	var kept []string
	for _, f := range strings.Fields(segment) {
		trimmed := strings.TrimLeft(f, "0123456789")
		if trimmed == "" {
			kept = nil
			continue
		}
		if trimmed != f {
			// Year glued onto the city by the markup ("1995Springfield").
			kept = nil
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, " ")
}

// stateAbbreviations maps full US state names to their postal codes, which
// is what the dashboard's state filter uses.
var stateAbbreviations = map[string]string{
	"Alabama": "AL", "Alaska": "AK", "Arizona": "AZ", "Arkansas": "AR",
	"California": "CA", "Colorado": "CO", "Connecticut": "CT", "Delaware": "DE",
	"Florida": "FL", "Georgia": "GA", "Hawaii": "HI", "Idaho": "ID",
	"Illinois": "IL", "Indiana": "IN", "Iowa": "IA", "Kansas": "KS",
	"Kentucky": "KY", "Louisiana": "LA", "Maine": "ME", "Maryland": "MD",
	"Massachusetts": "MA", "Michigan": "MI", "Minnesota": "MN", "Mississippi": "MS",
	"Missouri": "MO", "Montana": "MT", "Nebraska": "NE", "Nevada": "NV",
	"New Hampshire": "NH", "New Jersey": "NJ", "New Mexico": "NM", "New York": "NY",
	"North Carolina": "NC", "North Dakota": "ND", "Ohio": "OH", "Oklahoma": "OK",
	"Oregon": "OR", "Pennsylvania": "PA", "Rhode Island": "RI", "South Carolina": "SC",
	"South Dakota": "SD", "Tennessee": "TN", "Texas": "TX", "Utah": "UT",
	"Vermont": "VT", "Virginia": "VA", "Washington": "WA", "West Virginia": "WV",
	"Wisconsin": "WI", "Wyoming": "WY", "District of Columbia": "DC",
}

// abbreviateState converts a full state name to its postal code, leaving
// anything it doesn't recognize (already-abbreviated codes, non-US regions)
// untouched.
func abbreviateState(state string) string {
	if abbrev, ok := stateAbbreviations[state]; ok {
		return abbrev
	}
	return state
}
