package datemath

import "time"

// Options configures the extractor. Zero values take the defaults below.
type Options struct {
	Languages    []string // natural-language locales, e.g. "ru"
	DateOrder    string   // DMY, MDY or YMD
	PreferFuture bool     // resolve incomplete dates to the next occurrence
	Timezone     string   // IANA name or "Local"
}

const (
	DefaultLanguage  = "ru"
	DefaultDateOrder = "DMY"
	DefaultTimezone  = "Local"
)

// NaturalParser resolves free text into a timestamp relative to now.
// ok is false when nothing recognizable was found.
type NaturalParser interface {
	Parse(text string, now time.Time) (t time.Time, ok bool)
}

// DefaultOptions returns the settings the bot ships with.
func DefaultOptions() Options {
	return Options{
		Languages:    []string{DefaultLanguage},
		DateOrder:    DefaultDateOrder,
		PreferFuture: true,
		Timezone:     DefaultTimezone,
	}
}
