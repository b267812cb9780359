package features

import "github.com/fec-cms/console/internal/models"

var categoryOrder = []string{
	models.FeatureCategoryEvent,
	models.FeatureCategoryAbility,
	models.FeatureCategoryFacility,
}

// Group is one picker section of features sharing a category.
type Group struct {
	Category string           `json:"category"`
	Label    string           `json:"label"`
	Features []models.Feature `json:"features"`
}

// Label returns the picker title of a category.
func Label(category string) string {
	if l, ok := models.FeatureCategoryLabels[category]; ok {
		return l
	}
	return models.FeatureCategoryFallback
}

// GroupByCategory splits features into groups in the fixed category order,
// followed by one fallback group for unknown categories. Empty groups are
// left out and input order is kept inside each group.
func GroupByCategory(list []models.Feature) []Group {
	buckets := make(map[string][]models.Feature, len(categoryOrder)+1)
	for _, f := range list {
		key := f.Category
		if _, known := models.FeatureCategoryLabels[key]; !known {
			key = ""
		}
		buckets[key] = append(buckets[key], f)
	}

	groups := make([]Group, 0, len(buckets))
	for _, cat := range append(categoryOrder, "") {
		if len(buckets[cat]) == 0 {
			continue
		}
		groups = append(groups, Group{Category: cat, Label: Label(cat), Features: buckets[cat]})
	}
	return groups
}
