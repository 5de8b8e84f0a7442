package export

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/aretw0/inspekt/pkg/core"
)

// Naming selects how report files are named.
type Naming string

const (
	// NamingTimestamp names reports metadata_<token>.<ext>.
	NamingTimestamp Naming = "timestamp"
	// NamingDescriptive names reports <technician>_<category>_<DD-MM-YYYY>.<ext>.
	NamingDescriptive Naming = "descriptive"
)

// ParseNaming accepts "timestamp" or "descriptive". Empty means timestamp.
func ParseNaming(s string) (Naming, error) {
	switch Naming(strings.ToLower(strings.TrimSpace(s))) {
	case "", NamingTimestamp:
		return NamingTimestamp, nil
	case NamingDescriptive:
		return NamingDescriptive, nil
	}
	return "", fmt.Errorf("unknown naming strategy %q (want timestamp or descriptive)", s)
}

const unknownTechnician = "unknown"

// MaxTechnicianRunes caps the technician segment of descriptive names so the
// full file name, suffix included, stays under the 255-byte NAME_MAX even
// with four-byte runes.
const MaxTechnicianRunes = 48

// BaseName returns the file name stem for rec without extension or
// collision suffix.
func (n Naming) BaseName(rec core.CaptureRecord, loc *time.Location) string {
	if n != NamingDescriptive {
		return "metadata_" + rec.CreatedAt.String()
	}
	if loc == nil {
		loc = time.UTC
	}

	technician := truncate(sanitize(rec.TechnicianName), MaxTechnicianRunes)
	if technician == "" {
		technician = unknownTechnician
	}
	date := rec.CreatedAt.Time().In(loc).Format("02-01-2006")
	return technician + "_" + sanitize(rec.Category.String()) + "_" + date
}

// FileName returns the name of the attempt-th candidate (1-based):
// the first has no suffix, later ones end in _2, _3, ...
func FileName(base, ext string, attempt int) string {
	if attempt <= 1 {
		return base + ext
	}
	return fmt.Sprintf("%s_%d%s", base, attempt, ext)
}

// sanitize keeps letters, digits, dashes and dots; runs of anything else
// collapse into a single underscore.
func sanitize(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return strings.Trim(b.String(), "._")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.Trim(string(r[:n]), "._")
}
