package organizations

import (
	"fmt"
	"strings"

	"github.com/fec-cms/console/internal/form"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/pkg/validation"
)

// DateLayout is the format of creationTime.
const DateLayout = "2006-01-02"

// Draft is the editable state of one organization form.
type Draft struct {
	ID           string `json:"id"`
	Slug         string `json:"slug" validate:"required,slug,max=64"`
	Name         string `json:"name" validate:"notblank,max=255"`
	Status       string `json:"status" validate:"required,oneof=active inactive"`
	Type         string `json:"type" validate:"omitempty,oneof=personal agency"`
	Description  string `json:"description"`
	LogoURL      string `json:"logoUrl"`
	ContactMail  string `json:"contactMail" validate:"omitempty,email"`
	Website      string `json:"website" validate:"omitempty,url"`
	Twitter      string `json:"twitter" validate:"omitempty,url"`
	Weibo        string `json:"weibo" validate:"omitempty,url"`
	QQGroup      string `json:"qqGroup"`
	Bilibili     string `json:"bilibili" validate:"omitempty,url"`
	Wikifur      string `json:"wikifur" validate:"omitempty,url"`
	CreationTime string `json:"creationTime" validate:"omitempty,datetime=2006-01-02"`
}

// Initialize maps an optional fetched organization into a draft.
func Initialize(existing *models.Organization) Draft {
	d := Draft{Status: models.OrgStatusActive}
	if existing == nil {
		return d
	}
	o := existing
	d.ID = o.ID
	d.Slug = o.Slug
	d.Name = o.Name
	if o.Status != "" {
		d.Status = o.Status
	}
	d.Type = deref(o.Type)
	d.Description = deref(o.Description)
	d.LogoURL = deref(o.LogoURL)
	d.ContactMail = deref(o.ContactMail)
	d.Website = deref(o.Website)
	d.Twitter = deref(o.Twitter)
	d.Weibo = deref(o.Weibo)
	d.QQGroup = deref(o.QQGroup)
	d.Bilibili = deref(o.Bilibili)
	d.Wikifur = deref(o.Wikifur)
	d.CreationTime = day(deref(o.CreationTime))
	return d
}

// SetField applies one field edit. The slug is locked once the
// organization exists.
func SetField(d Draft, path string, value interface{}) (Draft, error) {
	if path == "id" || (path == "slug" && d.ID != "") {
		return d, fmt.Errorf("%w: %s", form.ErrImmutableField, path)
	}
	return form.SetField(d, path, value)
}

// CheckSlug fails when d would rename the stored organization.
func CheckSlug(d Draft, stored *models.Organization) error {
	if stored == nil || stored.Slug == "" {
		return nil
	}
	if strings.TrimSpace(d.Slug) != stored.Slug {
		return fmt.Errorf("%w: slug", form.ErrImmutableField)
	}
	return nil
}

// Validate returns every violation of d.
func Validate(d Draft) validation.Errors {
	return validation.Struct(d)
}

// ToWirePayload converts a draft into the create/update body. Empty
// optional values are omitted.
func ToWirePayload(d Draft) models.EditableOrganization {
	return models.EditableOrganization{
		ID:           optional(d.ID),
		Slug:         strings.TrimSpace(d.Slug),
		Name:         strings.TrimSpace(d.Name),
		Status:       d.Status,
		Description:  optional(d.Description),
		Type:         optional(d.Type),
		LogoURL:      optional(d.LogoURL),
		ContactMail:  optional(d.ContactMail),
		Website:      optional(d.Website),
		Twitter:      optional(d.Twitter),
		Weibo:        optional(d.Weibo),
		QQGroup:      optional(d.QQGroup),
		Bilibili:     optional(d.Bilibili),
		Wikifur:      optional(d.Wikifur),
		CreationTime: optional(d.CreationTime),
	}
}

// day keeps the date part of a backend timestamp.
func day(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
