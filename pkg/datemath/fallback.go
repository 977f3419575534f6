package datemath

import (
	"regexp"
	"strconv"
	"time"
)

// D.M or D/M, optional 4-digit year, optional "в", then HH:MM.
var strictPattern = regexp.MustCompile(`(\d{1,2})[./](\d{1,2})(?:[./](\d{4}))?\s*(?:в\s*)?(\d{1,2}:\d{2})`)

// Tried in order; day always precedes month.
var strictLayouts = []struct {
	sep    string
	layout string
}{
	{".", "2.1.2006 15:04"},
	{"/", "2/1/2006 15:04"},
}

// parseStrict finds the first D.M[.YYYY] [в] HH:MM occurrence in text.
// Without an explicit year the current year of now is used.
func (p *Parser) parseStrict(text string, now time.Time) (time.Time, bool) {
	m := strictPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	year := now.In(p.location).Year()
	if m[3] != "" {
		y, err := strconv.Atoi(m[3])
		if err != nil {
			return time.Time{}, false
		}
		year = y
	}
	yearStr := strconv.Itoa(year)

	for _, l := range strictLayouts {
		candidate := m[1] + l.sep + m[2] + l.sep + yearStr + " " + m[4]
		t, err := time.ParseInLocation(l.layout, candidate, p.location)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
