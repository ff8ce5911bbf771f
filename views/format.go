package views

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale decides how numbers and times are written for one reader.
type Locale struct {
	Tag      language.Tag
	Location *time.Location

	layout string
}

var (
	supportedTags = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.German,
		language.French,
		language.Spanish,
		language.Russian,
		language.Japanese,
		language.Chinese,
	}
	// Indexed like supportedTags.
	createdLayouts = []string{
		"1/2/2006, 3:04:05 PM",
		"02/01/2006, 15:04:05",
		"2.1.2006, 15:04:05",
		"02/01/2006 15:04:05",
		"2/1/2006, 15:04:05",
		"02.01.2006, 15:04:05",
		"2006/1/2 15:04:05",
		"2006/1/2 15:04:05",
	}
	matcher = language.NewMatcher(supportedTags)
)

// DefaultLocale is American English in the process's local time zone.
func DefaultLocale() Locale {
	return Locale{Tag: language.AmericanEnglish, Location: time.Local, layout: createdLayouts[0]}
}

// NewLocale picks the closest supported locale for an Accept-Language
// header value. Unknown or empty input yields DefaultLocale.
func NewLocale(acceptLanguage string) Locale {
	loc := DefaultLocale()
	if strings.TrimSpace(acceptLanguage) == "" {
		return loc
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return loc
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return loc
	}
	loc.Tag = supportedTags[idx]
	loc.layout = createdLayouts[idx]
	return loc
}

// FormatConfidence writes a [0,1] confidence as a percentage with one
// decimal place, e.g. 0.873 -> "87.3%".
func (l Locale) FormatConfidence(confidence float64) string {
	return message.NewPrinter(l.Tag).Sprintf("%.1f%%", confidence*100)
}

// FormatCreated writes t in the locale's date-time convention, converted to
// the locale's time zone.
func (l Locale) FormatCreated(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	layout := l.layout
	if layout == "" {
		layout = createdLayouts[0]
	}
	zone := l.Location
	if zone == nil {
		zone = time.Local
	}
	return t.In(zone).Format(layout)
}
