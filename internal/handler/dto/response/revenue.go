package response

import (
	"time"

	"property-revenue-sync/internal/domain/revenue"
	"property-revenue-sync/internal/pkg/sanitize"
	"property-revenue-sync/internal/pkg/ttlcache"
	"property-revenue-sync/internal/usecase/aggregation"
)

const dateLayout = "2006-01-02"

// CacheMeta tags a cached aggregate with how it was served.
type CacheMeta struct {
	Cached     bool       `json:"cached"`
	Stale      bool       `json:"stale"`
	FetchedAt  *time.Time `json:"fetched_at,omitempty"`
	AgeSeconds float64    `json:"age_seconds"`
	Error      string     `json:"error,omitempty"`
}

type RevenueSummary struct {
	ActualRevenue   float64 `json:"actual_revenue"`
	ExpectedRevenue float64 `json:"expected_revenue"`
	TargetAchieved  float64 `json:"target_achieved"`
	Occupancy       float64 `json:"occupancy"`
	Reservations    int     `json:"reservations"`
	Date            string  `json:"date,omitempty"`
}

type RevenueResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Data    RevenueSummary `json:"data"`
	Cache   CacheMeta      `json:"cache"`
}

type CategoryRevenue struct {
	Category        string  `json:"category"`
	ActualRevenue   float64 `json:"actual_revenue"`
	ExpectedRevenue float64 `json:"expected_revenue"`
	Reservations    int     `json:"reservations"`
}

type CategoryListResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    []CategoryRevenue `json:"data"`
	Cache   CacheMeta         `json:"cache"`
}

type DateRange struct {
	StartDate       string            `json:"start_date"`
	EndDate         string            `json:"end_date"`
	ActualRevenue   float64           `json:"actual_revenue"`
	ExpectedRevenue float64           `json:"expected_revenue"`
	Outstanding     float64           `json:"outstanding"`
	Reservations    int               `json:"reservations"`
	ByCategory      []CategoryRevenue `json:"by_category"`
}

type DateRangeResponse struct {
	Success bool      `json:"success"`
	Data    DateRange `json:"data"`
}

type Cycle struct {
	Summary           RevenueSummary `json:"summary"`
	SnapshotRecordID  string         `json:"snapshot_record_id,omitempty"`
	SnapshotCreated   bool           `json:"snapshot_created"`
	CategoriesCreated int            `json:"categories_created"`
	CategoriesUpdated int            `json:"categories_updated"`
	CategoryErrors    int            `json:"category_errors"`
	Seeded            int            `json:"seeded,omitempty"`
}

type CycleResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    Cycle  `json:"data"`
}

func FromSummary(s revenue.Summary) RevenueSummary {
	out := RevenueSummary{
		ActualRevenue:   s.ActualRevenue,
		ExpectedRevenue: s.ExpectedRevenue,
		TargetAchieved:  s.TargetAchieved,
		Occupancy:       s.Occupancy,
		Reservations:    s.Reservations,
	}
	if !s.Date.IsZero() {
		out.Date = s.Date.Format(dateLayout)
	}
	return out
}

func FromCategories(rows []revenue.CategoryRevenue) []CategoryRevenue {
	out := make([]CategoryRevenue, len(rows))
	for i, r := range rows {
		out[i] = CategoryRevenue{
			Category:        string(r.Category),
			ActualRevenue:   r.ActualRevenue,
			ExpectedRevenue: r.ExpectedRevenue,
			Reservations:    r.Reservations,
		}
	}
	return out
}

func FromRevenueResult(res ttlcache.Result[revenue.Summary]) *RevenueResponse {
	return &RevenueResponse{
		Success: res.Success,
		Message: failureMessage(res.Success, res.Err),
		Data:    FromSummary(res.Value),
		Cache:   cacheMeta(res.Cached, res.Stale, res.FetchedAt, res.Age, res.Err),
	}
}

func FromCategoryResult(res ttlcache.Result[[]revenue.CategoryRevenue]) *CategoryListResponse {
	return &CategoryListResponse{
		Success: res.Success,
		Message: failureMessage(res.Success, res.Err),
		Data:    FromCategories(res.Value),
		Cache:   cacheMeta(res.Cached, res.Stale, res.FetchedAt, res.Age, res.Err),
	}
}

func FromRangeSummary(r revenue.RangeSummary) *DateRangeResponse {
	return &DateRangeResponse{
		Success: true,
		Data: DateRange{
			StartDate:       r.Start.Format(dateLayout),
			EndDate:         r.End.Format(dateLayout),
			ActualRevenue:   r.ActualRevenue,
			ExpectedRevenue: r.ExpectedRevenue,
			Outstanding:     r.Outstanding,
			Reservations:    r.Reservations,
			ByCategory:      FromCategories(r.ByCategory),
		},
	}
}

// FromCycleResult reports a revenue cycle. A partially failed cycle still carries what landed.
func FromCycleResult(res *aggregation.CycleResult, err error) *CycleResponse {
	out := &CycleResponse{Success: err == nil}
	if err != nil {
		out.Message = sanitize.Error(err)
	}
	if res == nil {
		return out
	}
	out.Data = Cycle{
		Summary:           FromSummary(res.Summary),
		SnapshotRecordID:  res.Snapshot.RecordID,
		SnapshotCreated:   res.Snapshot.Created,
		CategoriesCreated: res.Categories.Created,
		CategoriesUpdated: res.Categories.Updated,
		CategoryErrors:    res.Categories.Errors,
		Seeded:            res.Seeded,
	}
	return out
}

func cacheMeta(cached, stale bool, fetchedAt time.Time, age time.Duration, err error) CacheMeta {
	meta := CacheMeta{
		Cached:     cached,
		Stale:      stale,
		AgeSeconds: age.Seconds(),
	}
	if !fetchedAt.IsZero() {
		t := fetchedAt
		meta.FetchedAt = &t
	}
	if err != nil {
		meta.Error = sanitize.Error(err)
	}
	return meta
}

func failureMessage(success bool, err error) string {
	if success {
		return ""
	}
	if err == nil {
		return "Revenue data unavailable"
	}
	return "Revenue data unavailable: " + sanitize.Error(err)
}
