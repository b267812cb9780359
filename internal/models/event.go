package models

import "time"

// Event statuses follow schema.org EventStatusType.
const (
	EventStatusScheduled   = "scheduled"
	EventStatusPostponed   = "postponed"
	EventStatusRescheduled = "rescheduled"
	EventStatusMovedOnline = "movedOnline"
	EventStatusCancelled   = "cancelled"
)

// Event scales, ordered by attendance.
const (
	EventScaleCosy    = "cosy"
	EventScaleSmall   = "small"
	EventScaleMedium  = "medium"
	EventScaleLarge   = "large"
	EventScaleXLarge  = "xlarge"
	EventScaleXXLarge = "xxlarge"
	EventScaleMega    = "mega"
)

// Event types.
const (
	EventTypeAllInCon     = "all-in-con"
	EventTypeComicMarket  = "comic-market"
	EventTypeSuitOnlyCon  = "suit-only-con"
	EventTypeTravelCon    = "travel-con"
	EventTypeFandomMeetup = "fandom-meetup"
)

// Event location types.
const (
	LocationHotel  = "hotel"
	LocationVenue  = "venue"
	LocationOnline = "online"
)

// Ticket channel types.
const (
	TicketWxMiniProgram = "wxMiniProgram"
	TicketURL           = "url"
	TicketQRCode        = "qrcode"
	TicketApp           = "app"
)

// Thumbnail presets offered next to the uploader.
const (
	ThumbnailDefault   = "fec-event-default-cover.png"
	ThumbnailBlank     = "fec-event-blank-cover.png"
	ThumbnailCancelled = "fec-event-cancel-cover.png"
)

// ThumbnailPresets lists the preset covers in the order the editor offers them.
var ThumbnailPresets = []string{ThumbnailDefault, ThumbnailBlank, ThumbnailCancelled}

// EventScales lists every scale from smallest to largest.
var EventScales = []string{
	EventScaleCosy, EventScaleSmall, EventScaleMedium, EventScaleLarge,
	EventScaleXLarge, EventScaleXXLarge, EventScaleMega,
}

// Event is the detail record returned by the backend.
type Event struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	StartAt        *time.Time      `json:"startAt"`
	EndAt          *time.Time      `json:"endAt"`
	Status         string          `json:"status"`
	Scale          string          `json:"scale"`
	Type           *string         `json:"type"`
	LocationType   *string         `json:"locationType"`
	Source         *string         `json:"source"`
	Address        *string         `json:"address"`
	AddressLat     *string         `json:"addressLat"`
	AddressLon     *string         `json:"addressLon"`
	AddressExtra   *AddressExtra   `json:"addressExtra"`
	RegionID       *string         `json:"regionId"`
	Region         *Region         `json:"region,omitempty"`
	Thumbnail      *string         `json:"thumbnail"`
	Poster         *Poster         `json:"poster"`
	Media          *EventMedia     `json:"media"`
	Detail         *string         `json:"detail"`
	Features       *EventFeatures  `json:"features"`
	CommonFeatures []Feature       `json:"commonFeatures"`
	Organization   *Organization   `json:"organization"`
	Organizations  []Organization  `json:"organizations"`
	Sources        []EventSource   `json:"sources"`
	TicketChannels []TicketChannel `json:"ticketChannels"`
}

// AddressExtra carries denormalized city info.
type AddressExtra struct {
	City     *string `json:"city"`
	CitySlug *string `json:"citySlug"`
}

// Poster holds the gallery image keys.
type Poster struct {
	All []string `json:"all"`
}

// MediaItem is one image, video or live stream entry.
type MediaItem struct {
	URL         string `json:"url" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// EventMedia groups media rows by kind.
type EventMedia struct {
	Images []MediaItem `json:"images" validate:"dive"`
	Videos []MediaItem `json:"videos" validate:"dive"`
	Lives  []MediaItem `json:"lives" validate:"dive"`
}

// EventFeatures holds the free-text tags an event assigns itself.
type EventFeatures struct {
	Self []string `json:"self"`
}

// EventSource cites where event information came from.
type EventSource struct {
	Name        string `json:"name" validate:"notblank"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description"`
}

// TicketChannel is one way to buy tickets.
type TicketChannel struct {
	Type      string `json:"type" validate:"required,oneof=wxMiniProgram url qrcode app"`
	Name      string `json:"name" validate:"notblank"`
	URL       string `json:"url" validate:"required"`
	Available bool   `json:"available"`
}

// OrganizationRef links an event to an organizer.
type OrganizationRef struct {
	ID        string `json:"id"`
	IsPrimary bool   `json:"isPrimary"`
}

// EditableEvent is the wire shape accepted by create and update.
type EditableEvent struct {
	ID             *string           `json:"id,omitempty"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	StartAt        string            `json:"startAt"`
	EndAt          string            `json:"endAt"`
	Status         string            `json:"status"`
	Scale          string            `json:"scale"`
	Type           *string           `json:"type"`
	LocationType   *string           `json:"locationType"`
	Source         *string           `json:"source"`
	Address        *string           `json:"address"`
	AddressLat     *string           `json:"addressLat"`
	AddressLon     *string           `json:"addressLon"`
	RegionID       string            `json:"regionId"`
	Thumbnail      *string           `json:"thumbnail"`
	Poster         *Poster           `json:"poster"`
	Media          *EventMedia       `json:"media"`
	Detail         *string           `json:"detail"`
	Features       *EventFeatures    `json:"features"`
	FeatureIDs     []string          `json:"featureIds"`
	Organizations  []OrganizationRef `json:"organizations"`
	Sources        []EventSource     `json:"sources"`
	TicketChannels []TicketChannel   `json:"ticketChannels"`
}

// EventListParams are the query parameters of GET /events.
type EventListParams struct {
	Current   int
	PageSize  int
	Search    string
	OrgSearch string
	SortField string
	SortOrder string
}
