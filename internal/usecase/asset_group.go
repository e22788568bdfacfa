package usecase

import "slices"

// GroupedAssets is the presentation shape consumed by profile pages:
// one slice per known bucket, each already in display order. Buckets are
// always non-nil so the JSON output carries empty arrays, not nulls.
type GroupedAssets struct {
	Carousel  []Asset
	Polaroid  []Asset
	Instagram []Asset
}

// sortAssets orders by order ascending, breaking ties with the most
// recently updated first. The recency tie-break means touching an asset
// bumps it within its tier, which keeps duplicate orders visually stable.
func sortAssets(assets []Asset) {
	slices.SortStableFunc(assets, func(a, b Asset) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}

func groupAssets(assets []Asset) GroupedAssets {
	g := GroupedAssets{
		Carousel:  []Asset{},
		Polaroid:  []Asset{},
		Instagram: []Asset{},
	}

	sortAssets(assets)

	for _, a := range assets {
		switch a.Type {
		case AssetTypeCarousel:
			g.Carousel = append(g.Carousel, a)
		case AssetTypePolaroid:
			g.Polaroid = append(g.Polaroid, a)
		case AssetTypeInstagram:
			g.Instagram = append(g.Instagram, a)
		}
	}

	return g
}
