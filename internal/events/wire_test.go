package events

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fec-cms/console/internal/models"
)

var shanghai = time.FixedZone("CST", 8*3600)

func str(s string) *string { return &s }

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func scenarioDraft(t *testing.T) Draft {
	d := Initialize(nil, time.Date(2025, 1, 1, 9, 0, 0, 0, shanghai))
	d.Name = "Test Con"
	d.Slug = "2025-jan-bjs-con"
	d.Organization = "org-1"
	d.RegionID = "region-1"
	d.StartAt = mustTime(t, "2025-01-10T10:00:00Z")
	d.EndAt = mustTime(t, "2025-01-12T18:00:00Z")
	d.Status = models.EventStatusScheduled
	d.Scale = models.EventScaleSmall
	return d
}

func TestScenarioSingleOrganizer(t *testing.T) {
	w := ToWirePayload(scenarioDraft(t))

	assert.Equal(t, []models.OrganizationRef{{ID: "org-1", IsPrimary: true}}, w.Organizations)
	assert.Equal(t, "2025-01-10T10:00:00.000Z", w.StartAt)
	assert.Equal(t, "2025-01-12T18:00:00.000Z", w.EndAt)
}

func TestExactlyOnePrimaryOrganizer(t *testing.T) {
	cases := [][]string{
		nil,
		{},
		{"org-2"},
		{"org-2", "org-3"},
		{"org-1"},
		{"org-2", "org-1", "org-2", ""},
	}
	for i, co := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			d := scenarioDraft(t)
			d.Organizations = co
			refs := ToWirePayload(d).Organizations

			primaries := 0
			for _, r := range refs {
				if r.IsPrimary {
					primaries++
				}
			}
			require.Equal(t, 1, primaries)
			assert.Equal(t, "org-1", refs[0].ID)
			assert.True(t, refs[0].IsPrimary)

			ids := map[string]bool{}
			for _, r := range refs {
				assert.False(t, ids[r.ID], "duplicate %s", r.ID)
				ids[r.ID] = true
			}
		})
	}
}

func TestOptionalFieldsAreNull(t *testing.T) {
	d := scenarioDraft(t)
	d.Type = ""
	d.LocationType = ""
	d.Thumbnail = ""
	w := ToWirePayload(d)

	raw, err := json.Marshal(w)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))

	for _, k := range []string{"type", "locationType", "source", "address", "addressLat", "addressLon",
		"thumbnail", "poster", "media", "detail", "features", "featureIds", "sources", "ticketChannels"} {
		v, ok := m[k]
		assert.True(t, ok, "%s should be present", k)
		assert.Nil(t, v, "%s should be null", k)
	}
	assert.NotContains(t, m, "id")
	for k, v := range m {
		assert.NotEqual(t, "", v, "%s sent as empty string", k)
	}
}

func TestWireIsPure(t *testing.T) {
	d := scenarioDraft(t)
	d.Organizations = []string{"org-2"}
	d.Sources = []models.EventSource{{Name: "site", URL: "https://a.example"}}

	first := ToWirePayload(d)
	first.Sources[0].Name = "mutated"
	second := ToWirePayload(d)

	assert.Equal(t, "site", d.Sources[0].Name)
	assert.Equal(t, "site", second.Sources[0].Name)
	assert.Equal(t, []string{"org-2"}, d.Organizations)
}

func TestRoundTrip(t *testing.T) {
	start := mustTime(t, "2025-01-10T02:00:00Z")
	end := mustTime(t, "2025-01-12T10:00:00Z")
	e := &models.Event{
		ID:           "e1",
		Name:         "Test Con",
		Slug:         "2025-jan-bjs-con",
		StartAt:      &start,
		EndAt:        &end,
		Status:       models.EventStatusPostponed,
		Scale:        models.EventScaleMedium,
		Type:         str(models.EventTypeComicMarket),
		LocationType: str(models.LocationVenue),
		Source:       str("https://source.example"),
		Address:      str("1 Expo Road"),
		AddressLat:   str("39.9"),
		AddressLon:   str("116.4"),
		RegionID:     str("region-1"),
		Thumbnail:    str("organizations/fec/2025-jan-bjs-con/cover.png"),
		Poster:       &models.Poster{All: []string{"p1.png"}},
		Media:        &models.EventMedia{Images: []models.MediaItem{{URL: "i.png", Title: "hall"}}},
		Detail:       str("details"),
		Features:     &models.EventFeatures{Self: []string{"night-party"}},
		CommonFeatures: []models.Feature{
			{ID: "f1", Name: "fursuit"},
			{ID: "f2", Name: "dealers"},
		},
		Organization:   &models.Organization{ID: "org-1", Slug: "fec"},
		Organizations:  []models.Organization{{ID: "org-1"}, {ID: "org-2"}},
		Sources:        []models.EventSource{{Name: "weibo", URL: "https://weibo.example"}},
		TicketChannels: []models.TicketChannel{{Type: models.TicketURL, Name: "shop", URL: "https://shop.example", Available: true}},
	}

	w := ToWirePayload(Initialize(e, time.Now()))

	require.NotNil(t, w.ID)
	assert.Equal(t, "e1", *w.ID)
	assert.Equal(t, e.Name, w.Name)
	assert.Equal(t, e.Slug, w.Slug)
	assert.Equal(t, "2025-01-10T02:00:00.000Z", w.StartAt)
	assert.Equal(t, "2025-01-12T10:00:00.000Z", w.EndAt)
	assert.Equal(t, e.Status, w.Status)
	assert.Equal(t, e.Scale, w.Scale)
	assert.Equal(t, e.Type, w.Type)
	assert.Equal(t, e.LocationType, w.LocationType)
	assert.Equal(t, e.Source, w.Source)
	assert.Equal(t, e.Address, w.Address)
	assert.Equal(t, e.AddressLat, w.AddressLat)
	assert.Equal(t, e.AddressLon, w.AddressLon)
	assert.Equal(t, *e.RegionID, w.RegionID)
	assert.Equal(t, e.Thumbnail, w.Thumbnail)
	assert.Equal(t, e.Poster, w.Poster)
	assert.Equal(t, e.Media.Images, w.Media.Images)
	assert.Equal(t, e.Detail, w.Detail)
	assert.Equal(t, e.Features, w.Features)
	assert.Equal(t, []string{"f1", "f2"}, w.FeatureIDs)
	assert.Equal(t, []models.OrganizationRef{{ID: "org-1", IsPrimary: true}, {ID: "org-2"}}, w.Organizations)
	assert.Equal(t, e.Sources, w.Sources)
	assert.Equal(t, e.TicketChannels, w.TicketChannels)
}

func TestInitializeDefaults(t *testing.T) {
	now := time.Date(2025, 3, 4, 21, 30, 0, 0, shanghai)
	d := Initialize(nil, now)

	assert.Equal(t, time.Date(2025, 3, 4, 10, 0, 0, 0, shanghai), d.StartAt)
	assert.Equal(t, time.Date(2025, 3, 4, 18, 0, 0, 0, shanghai), d.EndAt)
	assert.Equal(t, models.EventStatusScheduled, d.Status)
	assert.Equal(t, models.EventScaleCosy, d.Scale)
	assert.Equal(t, models.EventTypeAllInCon, d.Type)
	assert.Equal(t, models.LocationHotel, d.LocationType)
	assert.Equal(t, models.ThumbnailDefault, d.Thumbnail)
	assert.NotNil(t, d.Organizations)
	assert.NotNil(t, d.Sources)
	assert.NotNil(t, d.TicketChannels)
	assert.NotNil(t, d.Features.Self)
	assert.NotNil(t, d.Media.Lives)
	assert.Empty(t, d.ID)
}

func TestInitializeFallsBackToRegionObject(t *testing.T) {
	d := Initialize(&models.Event{ID: "e1", Region: &models.Region{ID: "r9"}}, time.Now())
	assert.Equal(t, "r9", d.RegionID)
}
