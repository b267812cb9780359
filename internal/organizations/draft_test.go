package organizations

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fec-cms/console/internal/form"
	"github.com/fec-cms/console/internal/models"
)

func str(s string) *string { return &s }

func validDraft() Draft {
	d := Initialize(nil)
	d.Name = "Furry Event China"
	d.Slug = "fec"
	return d
}

func TestInitializeDefaults(t *testing.T) {
	d := Initialize(nil)
	assert.Equal(t, models.OrgStatusActive, d.Status)
	assert.Empty(t, d.ID)
}

func TestInitializeFromExisting(t *testing.T) {
	d := Initialize(&models.Organization{
		ID:           "o1",
		Slug:         "fec",
		Name:         "FEC",
		Status:       models.OrgStatusInactive,
		Type:         str(models.OrgTypeAgency),
		Website:      str("https://fec.example"),
		CreationTime: str("2019-06-01T00:00:00.000Z"),
	})
	assert.Equal(t, "o1", d.ID)
	assert.Equal(t, models.OrgStatusInactive, d.Status)
	assert.Equal(t, models.OrgTypeAgency, d.Type)
	assert.Equal(t, "2019-06-01", d.CreationTime)
	assert.Empty(t, Validate(d).Field("creationTime"))
}

func TestSlugLockedOnceCreated(t *testing.T) {
	d := validDraft()
	next, err := SetField(d, "slug", "fec-2")
	require.NoError(t, err)
	assert.Equal(t, "fec-2", next.Slug)

	d.ID = "o1"
	_, err = SetField(d, "slug", "other")
	assert.ErrorIs(t, err, form.ErrImmutableField)

	next, err = SetField(d, "name", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", next.Name)
	assert.Equal(t, "fec", next.Slug)
}

func TestIDCannotBeCleared(t *testing.T) {
	d := validDraft()
	d.ID = "o1"

	_, err := SetField(d, "id", "")
	assert.ErrorIs(t, err, form.ErrImmutableField)
}

func TestCheckSlug(t *testing.T) {
	d := validDraft()
	d.ID = "o1"

	assert.NoError(t, CheckSlug(d, &models.Organization{ID: "o1", Slug: "fec"}))
	assert.NoError(t, CheckSlug(d, &models.Organization{ID: "o1"}))

	d.Slug = "renamed"
	assert.ErrorIs(t, CheckSlug(d, &models.Organization{ID: "o1", Slug: "fec"}), form.ErrImmutableField)
}

func TestValidate(t *testing.T) {
	assert.Empty(t, Validate(validDraft()))

	d := validDraft()
	d.Name = "  "
	d.Slug = "FEC!"
	d.Status = "gone"
	d.Type = "company"
	d.ContactMail = "not-mail"
	d.Website = "fec"
	d.Wikifur = "nope"
	d.CreationTime = "June 2019"

	errs := Validate(d)
	assert.Equal(t, []string{"contactMail", "creationTime", "name", "slug", "status", "type", "website", "wikifur"}, errs.Keys())
}

func TestWireOmitsEmptyOptionals(t *testing.T) {
	d := validDraft()
	d.Name = "  FEC  "
	d.Weibo = "https://weibo.example/fec"

	raw, err := json.Marshal(ToWirePayload(d))
	require.NoError(t, err)

	assert.JSONEq(t, `{"slug":"fec","name":"FEC","status":"active","weibo":"https://weibo.example/fec"}`, string(raw))
}
