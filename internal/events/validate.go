package events

import (
	"github.com/go-playground/validator/v10"

	"github.com/fec-cms/console/pkg/validation"
)

func init() {
	validation.RegisterStructValidation(validateOrganizers, Draft{})
}

// Validate returns every violated field of d, or nil.
func Validate(d Draft) validation.Errors {
	return validation.Struct(d)
}

// co-organizers must not repeat the primary organizer
func validateOrganizers(sl validator.StructLevel) {
	d := sl.Current().Interface().(Draft)
	if d.Organization == "" {
		return
	}
	for _, id := range d.Organizations {
		if id == d.Organization {
			sl.ReportError(d.Organizations, "organizations", "Organizations", "excluded", "")
			return
		}
	}
}
