package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fec-cms/console/internal/models"
)

func TestScenarioDraftIsValid(t *testing.T) {
	assert.Empty(t, Validate(scenarioDraft(t)))
}

func TestRequiredFieldsReportEach(t *testing.T) {
	for _, field := range []string{"name", "slug", "organization", "regionId"} {
		t.Run(field, func(t *testing.T) {
			d, err := SetField(scenarioDraft(t), field, "")
			require.NoError(t, err)

			errs := Validate(d)
			assert.Contains(t, errs, field)
			assert.Len(t, errs, 1)
		})
	}
}

func TestAllViolationsAtOnce(t *testing.T) {
	d := Initialize(nil, time.Now())
	errs := Validate(d)

	for _, k := range []string{"name", "slug", "organization", "regionId"} {
		assert.Contains(t, errs, k)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	d := scenarioDraft(t)
	d.Name = " "
	d.Slug = "Not A Slug"
	d.Sources = []models.EventSource{{Name: "", URL: "nope"}}

	first := Validate(d)
	second := Validate(d)
	assert.Equal(t, first, second)
	assert.Equal(t, first.Error(), second.Error())
}

func TestSlugPattern(t *testing.T) {
	for slug, ok := range map[string]bool{
		"2025-jan-bjs-con": true,
		"abc123":           true,
		"Upper":            false,
		"with space":       false,
		"under_score":      false,
		"点":                false,
	} {
		d := scenarioDraft(t)
		d.Slug = slug
		_, bad := Validate(d)["slug"]
		assert.Equal(t, !ok, bad, slug)
	}
}

func TestEndBeforeStart(t *testing.T) {
	d := scenarioDraft(t)
	d.EndAt = d.StartAt.Add(-time.Hour)
	assert.Contains(t, Validate(d), "endAt")

	d.EndAt = d.StartAt
	assert.NotContains(t, Validate(d), "endAt")
}

func TestEnums(t *testing.T) {
	d := scenarioDraft(t)
	d.Status = "maybe"
	d.Scale = "huge"
	d.Type = "party"
	d.LocationType = "beach"
	errs := Validate(d)
	for _, k := range []string{"status", "scale", "type", "locationType"} {
		assert.Contains(t, errs, k)
	}
}

func TestCoordinates(t *testing.T) {
	d := scenarioDraft(t)
	d.AddressLat = "91"
	d.AddressLon = "116.4"
	errs := Validate(d)
	assert.Contains(t, errs, "addressLat")
	assert.NotContains(t, errs, "addressLon")
}

func TestRowsNeedTheirFields(t *testing.T) {
	d := scenarioDraft(t)
	d.Sources = []models.EventSource{{Name: "ok", URL: "https://ok.example"}, {}}
	d.TicketChannels = []models.TicketChannel{{Type: "fax"}}
	d.Media.Videos = []models.MediaItem{{Title: "teaser"}}

	errs := Validate(d)

	assert.Contains(t, errs, "sources.1.name")
	assert.Contains(t, errs, "sources.1.url")
	assert.NotContains(t, errs, "sources.0.url")
	assert.Contains(t, errs, "ticketChannels.0.type")
	assert.Contains(t, errs, "ticketChannels.0.name")
	assert.Contains(t, errs, "ticketChannels.0.url")
	assert.Contains(t, errs, "media.videos.0.url")
	assert.Len(t, errs.Field("sources"), 2)
}

func TestCoOrganizerMayNotRepeatPrimary(t *testing.T) {
	d := scenarioDraft(t)
	d.Organizations = []string{"org-2", "org-1"}
	assert.Contains(t, Validate(d), "organizations")

	d.Organizations = []string{"org-2"}
	assert.NotContains(t, Validate(d), "organizations")
}

func TestMinimalDraftSendsNoEmptyStrings(t *testing.T) {
	d := scenarioDraft(t)
	require.Empty(t, Validate(d))

	w := ToWirePayload(d)
	assert.Nil(t, w.Address)
	assert.Nil(t, w.Detail)
	assert.Nil(t, w.Sources)
	assert.Nil(t, w.ID)
}

func TestRowHelpers(t *testing.T) {
	d := scenarioDraft(t)
	d.Sources = []models.EventSource{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	d.TicketChannels = []models.TicketChannel{{Name: "x"}, {Name: "y"}}

	moved, err := MoveSource(d, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, "c", moved.Sources[0].Name)
	assert.Equal(t, "a", d.Sources[0].Name)

	removed, err := RemoveTicketChannel(d, 0)
	require.NoError(t, err)
	assert.Len(t, removed.TicketChannels, 1)
	assert.Equal(t, "y", removed.TicketChannels[0].Name)

	_, err = MoveTicketChannel(d, 0, 5)
	assert.Error(t, err)
}

func TestSetFieldOnDecodedDraftWithNullLists(t *testing.T) {
	var d Draft
	d, err := SetField(d, "sources.0", models.EventSource{Name: "n", URL: "https://u.example"})
	require.NoError(t, err)
	assert.Len(t, d.Sources, 1)

	d, err = SetField(d, "features.self.0", "night-party")
	require.NoError(t, err)
	assert.Equal(t, []string{"night-party"}, d.Features.Self)

	_, err = SetField(d, "bogus", 1)
	assert.Error(t, err)
}
