package repository

import "github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"

func height(ft float64) *float64 {
	return &ft
}

// DemoTrees returns the demo catalog inserted by the seed endpoint
func DemoTrees() []models.Tree {
	return []models.Tree{
		{
			Name:        "Fresh Douglas Fir",
			Size:        "Medium",
			Price:       59.99,
			HeightFt:    height(6),
			ImageURL:    "https://images.unsplash.com/photo-1543589077-47d81606c1bf",
			Description: "Soft needles and a sweet fragrance, cut this week.",
			Tags:        []string{"fresh", "classic"},
			InStock:     true,
		},
		{
			Name:        "Noble Fir",
			Size:        "Large",
			Price:       89.00,
			HeightFt:    height(8),
			Description: "Sturdy tiered branches for heavy ornaments.",
			Tags:        []string{"fresh", "premium"},
			InStock:     true,
		},
		{
			Name:        "Blue Spruce",
			Size:        "Large",
			Price:       79.50,
			HeightFt:    height(7.5),
			Description: "Silvery blue needles with excellent needle retention.",
			Tags:        []string{"premium"},
			InStock:     true,
		},
		{
			Name:        "Fraser Fir",
			Size:        "Medium",
			Price:       64.00,
			HeightFt:    height(6.5),
			Description: "Dark green needles with a silvery underside.",
			Tags:        []string{"fresh", "bestseller"},
			InStock:     true,
		},
		{
			Name:        "Balsam Fir",
			Size:        "Small",
			Price:       39.00,
			HeightFt:    height(4),
			Description: "Compact and fragrant, ideal for apartments.",
			Tags:        []string{"compact"},
			InStock:     false,
		},
		{
			Name:        "Tabletop Norway Spruce",
			Size:        "Small",
			Price:       24.50,
			HeightFt:    height(2.5),
			Description: "Potted tabletop tree that can be replanted.",
			Tags:        []string{"potted", "compact"},
			InStock:     true,
		},
	}
}
