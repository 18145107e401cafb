package revenue

import (
	"strings"

	"property-revenue-sync/internal/domain/reservation"
)

// Category is the room grouping used by the listing revenue breakdown. It is wider than
// reservation.Category: premium two-bedrooms and three-bedrooms are tracked separately.
type Category string

const (
	CategoryStudio       Category = "Studio"
	CategoryOneBR        Category = "1BR"
	CategoryTwoBR        Category = "2BR"
	CategoryTwoBRPremium Category = "2BR Premium"
	CategoryThreeBR      Category = "3BR"
)

// Categories lists the breakdown rows in display order.
var Categories = []Category{
	CategoryStudio,
	CategoryOneBR,
	CategoryTwoBR,
	CategoryTwoBRPremium,
	CategoryThreeBR,
}

func (c Category) String() string {
	return string(c)
}

func ParseCategory(raw string) (Category, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(trimmed, string(c)) {
			return c, true
		}
	}
	return "", false
}

// CategoryFor maps a synced reservation onto a breakdown row; ok is false for listings that
// fit none of them.
func CategoryFor(listingName string, base reservation.Category) (Category, bool) {
	lower := strings.ToLower(listingName)
	switch {
	case strings.Contains(lower, "3br") || strings.Contains(lower, "three bedroom") || strings.Contains(lower, "3 bedroom"):
		return CategoryThreeBR, true
	case base == reservation.CategoryTwoBR && strings.Contains(lower, "premium"):
		return CategoryTwoBRPremium, true
	}

	switch base {
	case reservation.CategoryStudio:
		return CategoryStudio, true
	case reservation.CategoryOneBR:
		return CategoryOneBR, true
	case reservation.CategoryTwoBR:
		return CategoryTwoBR, true
	default:
		return "", false
	}
}
