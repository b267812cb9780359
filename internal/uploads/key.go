package uploads

import (
	"strings"

	"github.com/google/uuid"

	"github.com/fec-cms/console/internal/apperr"
)

// ErrMissingSlug is returned when a prefix cannot be built yet.
var ErrMissingSlug = apperr.NewUnprocessable("select an organization and fill in the slug before uploading")

// EventPrefix is the folder of an event's media.
func EventPrefix(orgSlug, eventSlug string) (string, error) {
	orgSlug, eventSlug = strings.TrimSpace(orgSlug), strings.TrimSpace(eventSlug)
	if orgSlug == "" || eventSlug == "" {
		return "", ErrMissingSlug
	}
	return "organizations/" + orgSlug + "/" + eventSlug + "/", nil
}

// OrganizationPrefix is the folder of an organization's media.
func OrganizationPrefix(slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", ErrMissingSlug
	}
	return "organizations/" + slug + "/", nil
}

// Key builds "{prefix}{name}-{id}.{ext}", or "{prefix}{id}.{ext}" without a name.
func Key(prefix, name, id, ext string) string {
	name = sanitize(name)
	base := id
	if name != "" {
		base = name + "-" + id
	}
	return prefix + base + "." + ext
}

// NewID returns a fresh object id.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// sanitize keeps names path-safe.
func sanitize(name string) string {
	name = strings.TrimSpace(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '?', '#', '%':
			return '_'
		}
		return r
	}, name)
}
