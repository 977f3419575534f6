package datemath

import (
	"fmt"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

type dateparserAdapter struct {
	cfg dps.Configuration
}

func newDateparserAdapter(opts Options, loc *time.Location) (*dateparserAdapter, error) {
	cfg := dps.Configuration{
		Languages:       opts.Languages,
		DefaultTimezone: loc,
	}

	switch strings.ToUpper(opts.DateOrder) {
	case "", "DMY":
		cfg.DateOrder = dps.DMY
	case "MDY":
		cfg.DateOrder = dps.MDY
	case "YMD":
		cfg.DateOrder = dps.YMD
	default:
		return nil, fmt.Errorf("unsupported date order %q", opts.DateOrder)
	}

	if opts.PreferFuture {
		cfg.PreferredDateSource = dps.Future
	}

	return &dateparserAdapter{cfg: cfg}, nil
}

// Parse runs go-dateparser with CurrentTime pinned to now.
func (a *dateparserAdapter) Parse(text string, now time.Time) (time.Time, bool) {
	cfg := a.cfg
	cfg.CurrentTime = now.In(a.cfg.DefaultTimezone)

	dt, err := dps.Parse(&cfg, text)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, false
	}
	return dt.Time.In(a.cfg.DefaultTimezone), true
}
