package lookup

import (
	"context"

	"github.com/fec-cms/console/internal/features"
	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/models"
)

// Organizations searches organizers by name and labels them "name (slug)".
func Organizations() Source[models.Organization] {
	return Source[models.Organization]{
		Kind: "organization",
		Search: func(ctx context.Context, api *gateway.Client, p models.ListParams) (*models.List[models.Organization], error) {
			return api.ListOrganizations(ctx, p)
		},
		Get: func(ctx context.Context, api *gateway.Client, id string) (*models.Organization, error) {
			return api.GetOrganization(ctx, id)
		},
		ID:    func(o models.Organization) string { return o.ID },
		Label: func(o models.Organization) string { return o.Name + " (" + o.Slug + ")" },
	}
}

// Regions searches regions by code and labels them "name (code)".
func Regions() Source[models.Region] {
	return Source[models.Region]{
		Kind: "region",
		Search: func(ctx context.Context, api *gateway.Client, p models.ListParams) (*models.List[models.Region], error) {
			return api.ListRegions(ctx, p)
		},
		Get: func(ctx context.Context, api *gateway.Client, id string) (*models.Region, error) {
			return api.GetRegion(ctx, id)
		},
		ID:    func(r models.Region) string { return r.ID },
		Label: func(r models.Region) string { return r.Name + " (" + r.Code + ")" },
	}
}

// Features searches features by name and groups them by category label.
func Features() Source[models.Feature] {
	return Source[models.Feature]{
		Kind: "feature",
		Search: func(ctx context.Context, api *gateway.Client, p models.ListParams) (*models.List[models.Feature], error) {
			return api.ListFeatures(ctx, p)
		},
		Get: func(ctx context.Context, api *gateway.Client, id string) (*models.Feature, error) {
			return api.GetFeature(ctx, id)
		},
		ID:    func(f models.Feature) string { return f.ID },
		Label: func(f models.Feature) string { return f.Name },
		Group: func(f models.Feature) string { return features.Label(f.Category) },
	}
}
