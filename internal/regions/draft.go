package regions

import (
	"strings"

	"github.com/fec-cms/console/internal/form"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/pkg/validation"
)

// Defaults for a new region.
const (
	DefaultType  = models.RegionState
	DefaultLevel = 2
)

// Draft is the editable state of one region form. The parent/level
// relation is enforced by the backend.
type Draft struct {
	ID            string   `json:"id"`
	Name          string   `json:"name" validate:"notblank"`
	Code          string   `json:"code" validate:"notblank,max=32"`
	Type          string   `json:"type" validate:"required,oneof=country state city"`
	Level         int      `json:"level" validate:"gte=1"`
	ParentID      string   `json:"parentId"`
	CountryCode   string   `json:"countryCode" validate:"omitempty,max=8"`
	IsOverseas    bool     `json:"isOverseas"`
	AddressFormat string   `json:"addressFormat"`
	LocalName     string   `json:"localName"`
	Timezone      string   `json:"timezone" validate:"omitempty,timezone"`
	LanguageCode  string   `json:"languageCode"`
	CurrencyCode  string   `json:"currencyCode" validate:"omitempty,len=3"`
	PhoneCode     string   `json:"phoneCode"`
	Latitude      *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,longitude"`
	SortOrder     int      `json:"sortOrder" validate:"gte=0"`
	Remark        string   `json:"remark"`
}

// Initialize maps an optional fetched region into a draft.
func Initialize(existing *models.Region) Draft {
	d := Draft{Type: DefaultType, Level: DefaultLevel}
	if existing == nil {
		return d
	}
	r := existing
	d.ID = r.ID
	d.Name = r.Name
	d.Code = r.Code
	if r.Type != "" {
		d.Type = r.Type
	}
	if r.Level > 0 {
		d.Level = r.Level
	}
	d.ParentID = deref(r.ParentID)
	d.CountryCode = deref(r.CountryCode)
	d.IsOverseas = r.IsOverseas
	d.AddressFormat = deref(r.AddressFormat)
	d.LocalName = deref(r.LocalName)
	d.Timezone = deref(r.Timezone)
	d.LanguageCode = deref(r.LanguageCode)
	d.CurrencyCode = deref(r.CurrencyCode)
	d.PhoneCode = deref(r.PhoneCode)
	d.Latitude = r.Latitude
	d.Longitude = r.Longitude
	d.SortOrder = r.SortOrder
	d.Remark = deref(r.Remark)
	return d
}

// SetField applies one field edit.
func SetField(d Draft, path string, value interface{}) (Draft, error) {
	return form.SetField(d, path, value)
}

// Validate returns every violation of d.
func Validate(d Draft) validation.Errors {
	return validation.Struct(d)
}

// ToWirePayload converts a draft into the create/update body.
func ToWirePayload(d Draft) models.EditableRegion {
	return models.EditableRegion{
		Name:          strings.TrimSpace(d.Name),
		Code:          strings.TrimSpace(d.Code),
		Type:          d.Type,
		Level:         d.Level,
		ParentID:      nullable(d.ParentID),
		CountryCode:   nullable(d.CountryCode),
		IsOverseas:    d.IsOverseas,
		AddressFormat: nullable(d.AddressFormat),
		LocalName:     nullable(d.LocalName),
		Timezone:      nullable(d.Timezone),
		LanguageCode:  nullable(d.LanguageCode),
		CurrencyCode:  nullable(d.CurrencyCode),
		PhoneCode:     nullable(d.PhoneCode),
		Latitude:      copyFloat(d.Latitude),
		Longitude:     copyFloat(d.Longitude),
		SortOrder:     d.SortOrder,
		Remark:        nullable(d.Remark),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
