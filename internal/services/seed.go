package services

import "storefront/internal/domain"

func ptr[T any](v T) *T { return &v }

// DemoProducts is the starter catalog used when SEED_DEMO is enabled.
func DemoProducts() []domain.ProductInput {
	return []domain.ProductInput{
		{
			Name:        "The Little Star Who Could",
			Author:      "A. Lantern",
			Description: "An illustrated bedtime story about courage.",
			PriceCents:  ptr[int64](1299),
			Categories:  []string{"picture-books"},
			Tags:        []string{"bedtime", "ages-3-6"},
			Featured:    true,
		},
		{
			Name:           "Ocean Colouring Pack",
			Author:         "Studio Tide",
			Description:    "Printable colouring pages, instant download.",
			PriceCents:     ptr[int64](899),
			SalePriceCents: ptr[int64](599),
			Categories:     []string{"printables"},
			Tags:           []string{"colouring"},
		},
	}
}
