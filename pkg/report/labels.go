package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/inspekt/pkg/core"
)

// Locale selects the report labels.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleDutch   Locale = "nl"
)

// Labels holds every piece of fixed text in a report.
type Labels struct {
	Title       string
	Technician  string
	Description string
	Location    string
	Category    string
	Date        string
	Photo       string
	Placeholder string
	Categories  map[core.Category]string
}

var labels = map[Locale]Labels{
	LocaleEnglish: {
		Title:       "Photo Metadata",
		Technician:  "Technician",
		Description: "Description",
		Location:    "Location",
		Category:    "Category",
		Date:        "Timestamp",
		Photo:       "Photo",
		Placeholder: "N/A",
		Categories: map[core.Category]string{
			core.CategoryGroundCables: "Ground cables",
			core.CategoryAerialCables: "Aerial cables",
			core.CategoryWaterPipes:   "Water pipes",
			core.CategoryGasPipes:     "Gas pipes",
		},
	},
	LocaleDutch: {
		Title:       "Foto Metadata",
		Technician:  "Monteur",
		Description: "Beschrijving",
		Location:    "Locatie",
		Category:    "Categorie",
		Date:        "Tijdstip",
		Photo:       "Foto",
		Placeholder: "N.V.T.",
		Categories: map[core.Category]string{
			core.CategoryGroundCables: "Grondkabels",
			core.CategoryAerialCables: "Luchtkabels",
			core.CategoryWaterPipes:   "Waterleidingen",
			core.CategoryGasPipes:     "Gasleidingen",
		},
	},
}

// ParseLocale accepts a supported locale tag. Empty means English; region
// suffixes such as "nl-BE" are ignored.
func ParseLocale(s string) (Locale, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	if s == "" {
		return LocaleEnglish, nil
	}
	if _, ok := labels[Locale(s)]; !ok {
		return "", fmt.Errorf("unsupported locale %q", s)
	}
	return Locale(s), nil
}

// LabelsFor returns the labels of l, falling back to English.
func LabelsFor(l Locale) Labels {
	if lb, ok := labels[l]; ok {
		return lb
	}
	return labels[LocaleEnglish]
}

// CategoryName is the display name of c, or the placeholder when c is
// outside the closed set.
func (l Labels) CategoryName(c core.Category) string {
	if name, ok := l.Categories[c]; ok {
		return name
	}
	return l.Placeholder
}

// Value returns s, or the placeholder when s is empty.
func (l Labels) Value(s string) string {
	if strings.TrimSpace(s) == "" {
		return l.Placeholder
	}
	return s
}
