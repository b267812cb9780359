package events

import (
	"strings"
	"time"

	"github.com/fec-cms/console/internal/models"
)

// TimestampLayout is the canonical wire format for event times.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ToWirePayload converts a draft into the create/update body. It is pure:
// unset optional values become null and the organizer fields fold into one
// list led by the primary organizer.
func ToWirePayload(d Draft) models.EditableEvent {
	w := models.EditableEvent{
		ID:            nullable(d.ID),
		Name:          strings.TrimSpace(d.Name),
		Slug:          d.Slug,
		StartAt:       FormatTimestamp(d.StartAt),
		EndAt:         FormatTimestamp(d.EndAt),
		Status:        d.Status,
		Scale:         d.Scale,
		Type:          nullable(d.Type),
		LocationType:  nullable(d.LocationType),
		Source:        nullable(d.Source),
		Address:       nullable(d.Address),
		AddressLat:    nullable(d.AddressLat),
		AddressLon:    nullable(d.AddressLon),
		RegionID:      d.RegionID,
		Thumbnail:     nullable(d.Thumbnail),
		Detail:        nullable(d.Detail),
		FeatureIDs:    nonEmpty(d.FeatureIDs),
		Organizations: FoldOrganizations(d.Organization, d.Organizations),
	}
	if len(d.Poster) > 0 {
		w.Poster = &models.Poster{All: append([]string(nil), d.Poster...)}
	}
	if len(d.Media.Images)+len(d.Media.Videos)+len(d.Media.Lives) > 0 {
		w.Media = &models.EventMedia{
			Images: nonEmpty(d.Media.Images),
			Videos: nonEmpty(d.Media.Videos),
			Lives:  nonEmpty(d.Media.Lives),
		}
	}
	if len(d.Features.Self) > 0 {
		w.Features = &models.EventFeatures{Self: append([]string(nil), d.Features.Self...)}
	}
	w.Sources = nonEmpty(d.Sources)
	w.TicketChannels = nonEmpty(d.TicketChannels)
	return w
}

// FoldOrganizations builds the organizer list: primary first with
// isPrimary true, then each distinct co-organizer other than the primary.
func FoldOrganizations(primary string, co []string) []models.OrganizationRef {
	refs := make([]models.OrganizationRef, 0, len(co)+1)
	seen := map[string]bool{}
	if primary != "" {
		refs = append(refs, models.OrganizationRef{ID: primary, IsPrimary: true})
		seen[primary] = true
	}
	for _, id := range co {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, models.OrganizationRef{ID: id})
	}
	return refs
}

// FormatTimestamp renders t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func nonEmpty[T any](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	return append([]T(nil), in...)
}
