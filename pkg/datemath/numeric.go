package datemath

import (
	"regexp"
	"strconv"
	"time"
)

// A standalone D.M or D/M token with an optional 4-digit year and no time part.
var numericDatePattern = regexp.MustCompile(`(?:^|[^\d./:])(\d{1,2})[./](\d{1,2})(?:[./](\d{4}))?(?:$|[^\d./:])`)

type numericDate struct {
	day, month, year int // year is 0 when not written
}

// findNumericDate returns the first token whose components form a plausible
// day and month. "10.30" is left to the natural parser as a clock time.
func findNumericDate(text string, dayFirst bool) (numericDate, bool) {
	m := numericDatePattern.FindStringSubmatch(text)
	if m == nil {
		return numericDate{}, false
	}

	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	d := numericDate{day: a, month: b}
	if !dayFirst {
		d.day, d.month = b, a
	}
	if m[3] != "" {
		d.year, _ = strconv.Atoi(m[3])
	}

	if d.month < 1 || d.month > 12 || d.day < 1 || d.day > 31 {
		return numericDate{}, false
	}
	return d, true
}

func (d numericDate) matches(t time.Time) bool {
	if d.year != 0 && t.Year() != d.year {
		return false
	}
	return t.Day() == d.day && int(t.Month()) == d.month
}

// resolve builds midnight of the date. Without a year the current one is used,
// moved to the next year when preferFuture and the date has passed.
func (d numericDate) resolve(now time.Time, loc *time.Location, preferFuture bool) (time.Time, bool) {
	year := d.year
	if year == 0 {
		year = now.Year()
	}

	t, ok := d.at(year, loc)
	if !ok {
		return time.Time{}, false
	}
	if d.year == 0 && preferFuture && t.Before(now) {
		return d.at(year+1, loc)
	}
	return t, true
}

// at rejects dates that time.Date would normalize, such as 31.02.
func (d numericDate) at(year int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, time.Month(d.month), d.day, 0, 0, 0, 0, loc)
	if t.Day() != d.day || int(t.Month()) != d.month {
		return time.Time{}, false
	}
	return t, true
}
