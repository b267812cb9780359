package features

import (
	"strings"

	"github.com/fec-cms/console/internal/form"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/pkg/validation"
)

// Draft is the editable state of one feature form.
type Draft struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"notblank,max=256"`
	Category    string `json:"category" validate:"required,oneof=event ability facility"`
	Description string `json:"description"`
}

// Initialize maps an optional fetched feature into a draft.
func Initialize(existing *models.Feature) Draft {
	if existing == nil {
		return Draft{Category: models.FeatureCategoryEvent}
	}
	d := Draft{ID: existing.ID, Name: existing.Name, Category: existing.Category}
	if existing.Description != nil {
		d.Description = *existing.Description
	}
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
func ToWirePayload(d Draft) models.EditableFeature {
	w := models.EditableFeature{
		Name:     strings.TrimSpace(d.Name),
		Category: d.Category,
	}
	if d.ID != "" {
		id := d.ID
		w.ID = &id
	}
	if desc := strings.TrimSpace(d.Description); desc != "" {
		w.Description = &desc
	}
	return w
}
