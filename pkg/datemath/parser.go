package datemath

import (
	"fmt"
	"strings"
	"time"
)

// Parser turns free text into a concrete timestamp.
// A natural-language parser is tried first, then a strict D.M HH:MM pattern.
// With day-first ordering a D.M HH:MM match is always read by the strict pattern.
type Parser struct {
	location     *time.Location
	natural      NaturalParser
	order        string // DMY, MDY or YMD
	preferFuture bool
}

// NewParser creates a Parser backed by go-dateparser.
func NewParser(opts Options) (*Parser, error) {
	loc, err := loadLocation(opts.Timezone)
	if err != nil {
		return nil, err
	}
	if len(opts.Languages) == 0 {
		opts.Languages = []string{DefaultLanguage}
	}

	natural, err := newDateparserAdapter(opts, loc)
	if err != nil {
		return nil, err
	}
	return &Parser{
		location:     loc,
		natural:      natural,
		order:        normalizeOrder(opts.DateOrder),
		preferFuture: opts.PreferFuture,
	}, nil
}

// NewParserWith creates a Parser around a custom natural-language parser.
// A nil natural parser disables the first stage. Dates are day-first and future-biased.
func NewParserWith(natural NaturalParser, timezone string) (*Parser, error) {
	loc, err := loadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Parser{location: loc, natural: natural, order: DefaultDateOrder, preferFuture: true}, nil
}

func normalizeOrder(order string) string {
	if order == "" {
		return DefaultDateOrder
	}
	return strings.ToUpper(order)
}

func loadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || strings.EqualFold(timezone, DefaultTimezone) {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// Location returns the zone timestamps are resolved in.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Extract returns the timestamp mentioned in text, resolved relative to now.
func (p *Parser) Extract(text string, now time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	if p.order == DefaultDateOrder && strictPattern.MatchString(text) {
		return p.parseStrict(text, now)
	}

	if p.natural != nil {
		if t, ok := p.parseNatural(text, now); ok {
			return t, true
		}
	}

	return p.parseStrict(text, now)
}

// parseNatural runs the natural-language stage. When text holds a numeric
// D.M[.YYYY] date, a result on another day is discarded and the date itself
// is used at midnight.
func (p *Parser) parseNatural(text string, now time.Time) (time.Time, bool) {
	t, ok := p.natural.Parse(text, now)
	if p.order == "YMD" {
		return t, ok
	}

	d, found := findNumericDate(text, p.order == DefaultDateOrder)
	if !found {
		return t, ok
	}
	if ok && d.matches(t.In(p.location)) {
		return t, true
	}
	return d.resolve(now.In(p.location), p.location, p.preferFuture)
}
