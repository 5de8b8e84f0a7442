package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/inspekt/pkg/core"
)

// DateStyle selects how a record's token is printed in the report.
type DateStyle string

const (
	// DateISO prints the UTC instant with millisecond precision.
	DateISO DateStyle = "iso"
	// DateDMY prints the calendar day in the configured time zone.
	DateDMY DateStyle = "dmy"
)

// Date layouts.
const (
	ISOLayout = "2006-01-02T15:04:05.000Z"
	DMYLayout = "02-01-2006"
)

// ParseDateStyle accepts "iso" or "dmy" (case-insensitive). Empty means iso.
func ParseDateStyle(s string) (DateStyle, error) {
	switch DateStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", DateISO:
		return DateISO, nil
	case DateDMY:
		return DateDMY, nil
	}
	return "", fmt.Errorf("unknown date style %q (want iso or dmy)", s)
}

// FormatDate renders tok in style. The result depends only on its arguments;
// iso ignores loc because the layout is always UTC.
func FormatDate(tok core.Token, style DateStyle, loc *time.Location) string {
	t := tok.Time()
	if style == DateDMY {
		if loc == nil {
			loc = time.UTC
		}
		return t.In(loc).Format(DMYLayout)
	}
	return t.UTC().Format(ISOLayout)
}
