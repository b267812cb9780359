package models

import "time"

// Feature categories.
const (
	FeatureCategoryEvent    = "event"
	FeatureCategoryAbility  = "ability"
	FeatureCategoryFacility = "facility"
)

// FeatureCategoryLabels are the picker group titles per category.
var FeatureCategoryLabels = map[string]string{
	FeatureCategoryEvent:    "活动",
	FeatureCategoryAbility:  "能力",
	FeatureCategoryFacility: "设施",
}

// FeatureCategoryFallback groups features with an unknown category.
const FeatureCategoryFallback = "其他"

// Feature is a shared tag events can reference.
type Feature struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Description *string    `json:"description"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// EditableFeature is the wire shape accepted by create and update.
type EditableFeature struct {
	ID          *string `json:"id,omitempty"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
}
