package revenue

import (
	"time"

	"property-revenue-sync/internal/pkg/money"
)

// Summary is the dashboard's headline revenue snapshot.
type Summary struct {
	ActualRevenue   float64
	ExpectedRevenue float64
	// TargetAchieved is a percentage of the target (or of expected revenue when no target is set).
	TargetAchieved float64
	// Occupancy is the percentage of known listings with a guest staying today.
	Occupancy    float64
	Reservations int
	Date         time.Time
}

// CategoryRevenue is one row of the listing-category breakdown.
type CategoryRevenue struct {
	Category        Category
	ActualRevenue   float64
	ExpectedRevenue float64
	Reservations    int
}

// RangeSummary aggregates synced reservations whose arrival falls within [Start, End].
type RangeSummary struct {
	Start           time.Time
	End             time.Time
	ActualRevenue   float64
	ExpectedRevenue float64
	Outstanding     float64
	Reservations    int
	ByCategory      []CategoryRevenue
}

// Achievement returns actual as a percentage of target, rounded to two decimals.
func Achievement(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return money.Round2(actual / target * 100)
}

// Occupancy returns occupied as a percentage of total, rounded to two decimals.
func Occupancy(occupied, total int) float64 {
	if total <= 0 {
		return 0
	}
	return money.Round2(float64(occupied) / float64(total) * 100)
}

// EmptyBreakdown returns a zero row per category in display order.
func EmptyBreakdown() []CategoryRevenue {
	rows := make([]CategoryRevenue, 0, len(Categories))
	for _, c := range Categories {
		rows = append(rows, CategoryRevenue{Category: c})
	}
	return rows
}
