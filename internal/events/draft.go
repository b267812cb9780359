package events

import (
	"time"

	"github.com/fec-cms/console/internal/form"
	"github.com/fec-cms/console/internal/models"
)

// Draft is the fully populated editable state of one event form.
type Draft struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name" validate:"notblank"`
	Slug           string                 `json:"slug" validate:"required,slug"`
	StartAt        time.Time              `json:"startAt" validate:"required"`
	EndAt          time.Time              `json:"endAt" validate:"required,gtefield=StartAt"`
	Status         string                 `json:"status" validate:"required,oneof=scheduled postponed rescheduled movedOnline cancelled"`
	Scale          string                 `json:"scale" validate:"required,oneof=cosy small medium large xlarge xxlarge mega"`
	Type           string                 `json:"type" validate:"omitempty,oneof=all-in-con comic-market suit-only-con travel-con fandom-meetup"`
	LocationType   string                 `json:"locationType" validate:"omitempty,oneof=hotel venue online"`
	Address        string                 `json:"address"`
	AddressLat     string                 `json:"addressLat" validate:"omitempty,latitude"`
	AddressLon     string                 `json:"addressLon" validate:"omitempty,longitude"`
	RegionID       string                 `json:"regionId" validate:"required"`
	Organization   string                 `json:"organization" validate:"required"`
	Organizations  []string               `json:"organizations"`
	Thumbnail      string                 `json:"thumbnail"`
	Poster         []string               `json:"poster"`
	Media          models.EventMedia      `json:"media"`
	Detail         string                 `json:"detail"`
	Source         string                 `json:"source"`
	Features       models.EventFeatures   `json:"features"`
	FeatureIDs     []string               `json:"featureIds"`
	Sources        []models.EventSource   `json:"sources" validate:"dive"`
	TicketChannels []models.TicketChannel `json:"ticketChannels" validate:"dive"`
}

// Initialize maps an optional fetched event into a draft where every field
// holds a value. now decides the default day and timezone.
func Initialize(existing *models.Event, now time.Time) Draft {
	day := func(hour int) time.Time {
		return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	}

	d := Draft{
		StartAt:        day(10),
		EndAt:          day(18),
		Status:         models.EventStatusScheduled,
		Scale:          models.EventScaleCosy,
		Type:           models.EventTypeAllInCon,
		LocationType:   models.LocationHotel,
		Thumbnail:      models.ThumbnailDefault,
		Organizations:  []string{},
		Poster:         []string{},
		Media:          emptyMedia(),
		Features:       models.EventFeatures{Self: []string{}},
		FeatureIDs:     []string{},
		Sources:        []models.EventSource{},
		TicketChannels: []models.TicketChannel{},
	}
	if existing == nil {
		return d
	}

	e := existing
	d.ID = e.ID
	d.Name = e.Name
	d.Slug = e.Slug
	if e.StartAt != nil {
		d.StartAt = *e.StartAt
	}
	if e.EndAt != nil {
		d.EndAt = *e.EndAt
	}
	d.Status = or(e.Status, d.Status)
	d.Scale = or(e.Scale, d.Scale)
	d.Type = or(deref(e.Type), d.Type)
	d.LocationType = or(deref(e.LocationType), d.LocationType)
	d.Address = deref(e.Address)
	d.AddressLat = deref(e.AddressLat)
	d.AddressLon = deref(e.AddressLon)
	d.RegionID = deref(e.RegionID)
	if d.RegionID == "" && e.Region != nil {
		d.RegionID = e.Region.ID
	}
	d.Thumbnail = or(deref(e.Thumbnail), d.Thumbnail)
	d.Detail = deref(e.Detail)
	d.Source = deref(e.Source)

	if e.Organization != nil {
		d.Organization = e.Organization.ID
	}
	for _, o := range e.Organizations {
		if o.ID != "" && o.ID != d.Organization && !contains(d.Organizations, o.ID) {
			d.Organizations = append(d.Organizations, o.ID)
		}
	}
	if e.Poster != nil {
		d.Poster = append(d.Poster, e.Poster.All...)
	}
	if e.Media != nil {
		d.Media.Images = append(d.Media.Images, e.Media.Images...)
		d.Media.Videos = append(d.Media.Videos, e.Media.Videos...)
		d.Media.Lives = append(d.Media.Lives, e.Media.Lives...)
	}
	if e.Features != nil {
		d.Features.Self = append(d.Features.Self, e.Features.Self...)
	}
	for _, f := range e.CommonFeatures {
		d.FeatureIDs = append(d.FeatureIDs, f.ID)
	}
	d.Sources = append(d.Sources, e.Sources...)
	d.TicketChannels = append(d.TicketChannels, e.TicketChannels...)
	return d
}

// SetField applies one field edit and returns the new draft.
func SetField(d Draft, path string, value interface{}) (Draft, error) {
	return form.SetField(d.filled(), path, value)
}

// filled replaces nil lists so every list path is addressable.
func (d Draft) filled() Draft {
	if d.Organizations == nil {
		d.Organizations = []string{}
	}
	if d.Poster == nil {
		d.Poster = []string{}
	}
	if d.Media.Images == nil {
		d.Media.Images = []models.MediaItem{}
	}
	if d.Media.Videos == nil {
		d.Media.Videos = []models.MediaItem{}
	}
	if d.Media.Lives == nil {
		d.Media.Lives = []models.MediaItem{}
	}
	if d.Features.Self == nil {
		d.Features.Self = []string{}
	}
	if d.FeatureIDs == nil {
		d.FeatureIDs = []string{}
	}
	if d.Sources == nil {
		d.Sources = []models.EventSource{}
	}
	if d.TicketChannels == nil {
		d.TicketChannels = []models.TicketChannel{}
	}
	return d
}

// MoveSource reorders the source rows.
func MoveSource(d Draft, from, to int) (Draft, error) {
	rows, err := form.Move(d.Sources, from, to)
	if err != nil {
		return d, err
	}
	d.Sources = rows
	return d, nil
}

// RemoveSource drops one source row.
func RemoveSource(d Draft, i int) (Draft, error) {
	rows, err := form.Remove(d.Sources, i)
	if err != nil {
		return d, err
	}
	d.Sources = rows
	return d, nil
}

// MoveTicketChannel reorders the ticket channel rows.
func MoveTicketChannel(d Draft, from, to int) (Draft, error) {
	rows, err := form.Move(d.TicketChannels, from, to)
	if err != nil {
		return d, err
	}
	d.TicketChannels = rows
	return d, nil
}

// RemoveTicketChannel drops one ticket channel row.
func RemoveTicketChannel(d Draft, i int) (Draft, error) {
	rows, err := form.Remove(d.TicketChannels, i)
	if err != nil {
		return d, err
	}
	d.TicketChannels = rows
	return d, nil
}

func emptyMedia() models.EventMedia {
	return models.EventMedia{
		Images: []models.MediaItem{},
		Videos: []models.MediaItem{},
		Lives:  []models.MediaItem{},
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
