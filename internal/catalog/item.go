package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Size is the tree size class used for catalog browsing
type Size string

const (
	SizeAll    Size = "All"
	SizeSmall  Size = "Small"
	SizeMedium Size = "Medium"
	SizeLarge  Size = "Large"
)

// Sizes lists the selector options in display order
var Sizes = []Size{SizeAll, SizeSmall, SizeMedium, SizeLarge}

// ParseSize matches a size name case-insensitively. An empty name selects all sizes.
func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SizeAll, nil
	}
	for _, size := range Sizes {
		if strings.EqualFold(s, string(size)) {
			return size, nil
		}
	}
	return "", fmt.Errorf("unknown size %q", s)
}

// Item is a purchasable tree as last fetched from the backend.
// Items are treated as immutable once fetched.
type Item struct {
	ID          string
	Name        string
	Size        Size
	Price       decimal.Decimal
	HeightFt    *float64
	ImageURL    string
	Description string
	Tags        []string
	InStock     bool
}
