package events

import (
	"strings"
	"time"

	"github.com/fec-cms/console/internal/apperr"
)

// ErrSlugUnavailable is returned when the start date or region code is missing.
var ErrSlugUnavailable = apperr.NewUnprocessable("slug unavailable: event date or region not selected")

// GenerateSlug builds "{yyyy}-{mon}-{code}-con" from the start date and the
// region code. The code is lowercased and reduced to [a-z0-9].
func GenerateSlug(start time.Time, regionCode string) (string, error) {
	if start.IsZero() || start.Year() < 1000 || start.Year() > 9999 {
		return "", ErrSlugUnavailable
	}
	code := reduceCode(regionCode)
	if code == "" {
		return "", ErrSlugUnavailable
	}
	month := strings.ToLower(start.Month().String()[:3])
	return start.Format("2006") + "-" + month + "-" + code + "-con", nil
}

func reduceCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(code) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
