package core

import (
	"fmt"
	"strings"
)

// Normalize returns a copy of f ready to be committed: free text is kept as
// typed apart from surrounding whitespace, and the category must belong to
// the closed set. Escaping is left to the report renderers.
func (f FormState) Normalize() (FormState, error) {
	if !f.Category.Valid() {
		return FormState{}, fmt.Errorf("%w: %s", ErrInvalidCategory, f.Category)
	}
	return FormState{
		TechnicianName: strings.TrimSpace(f.TechnicianName),
		Description:    strings.TrimSpace(f.Description),
		LocationLabel:  strings.TrimSpace(f.LocationLabel),
		Category:       f.Category,
	}, nil
}
