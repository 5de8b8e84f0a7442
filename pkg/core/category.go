package core

import (
	"fmt"
	"strings"
)

// Category is the closed set of inspected infrastructure kinds.
type Category int

const (
	// CategoryUnknown marks a stored value outside the closed set.
	// It is never written, only surfaced when reading stray data.
	CategoryUnknown Category = iota
	CategoryGroundCables
	CategoryAerialCables
	CategoryWaterPipes
	CategoryGasPipes
)

var categoryNames = map[Category]string{
	CategoryGroundCables: "GroundCables",
	CategoryAerialCables: "AerialCables",
	CategoryWaterPipes:   "WaterPipes",
	CategoryGasPipes:     "GasPipes",
}

// categoryAliases maps normalized spellings, including the Dutch picker
// labels used by older captures, to categories.
var categoryAliases = map[string]Category{
	"groundcables":   CategoryGroundCables,
	"grondkabels":    CategoryGroundCables,
	"aerialcables":   CategoryAerialCables,
	"luchtkabels":    CategoryAerialCables,
	"waterpipes":     CategoryWaterPipes,
	"waterleidingen": CategoryWaterPipes,
	"gaspipes":       CategoryGasPipes,
	"gasleidingen":   CategoryGasPipes,
}

// Categories returns the closed set in picker order.
func Categories() []Category {
	return []Category{CategoryGroundCables, CategoryAerialCables, CategoryWaterPipes, CategoryGasPipes}
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory normalizes s (case, spaces, dashes and underscores are
// ignored) and maps it onto the closed set.
func ParseCategory(s string) (Category, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))

	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	return CategoryUnknown, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// MarshalText implements encoding.TextMarshaler. Stray values encode as
// "Unknown" so records read from disk can always be listed.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. "Unknown" decodes back
// to CategoryUnknown; any other value outside the closed set is rejected.
func (c *Category) UnmarshalText(text []byte) error {
	if string(text) == "Unknown" {
		*c = CategoryUnknown
		return nil
	}
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
