package aggregation

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"property-revenue-sync/internal/domain/reservation"
	"property-revenue-sync/internal/domain/revenue"
	"property-revenue-sync/internal/infra/store"
	"property-revenue-sync/internal/pkg/clock"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/pkg/errs"
	"property-revenue-sync/internal/pkg/money"
	"property-revenue-sync/internal/pkg/sanitize"
	"property-revenue-sync/internal/usecase/shared"
)

// UpsertResult reports whether an upsert patched an existing row or created one.
type UpsertResult struct {
	RecordID string `json:"recordId,omitempty"`
	Created  bool   `json:"created"`
}

// CategoryUpsertResult is the outcome of a breakdown upsert. Each category is written
// independently; Errors counts the rows that failed.
type CategoryUpsertResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

// Aggregator derives revenue figures from store contents and writes the snapshot rows back.
type Aggregator struct {
	store    shared.RecordStore
	tables   shared.Tables
	target   float64
	location *time.Location
	clock    clock.Clock
	logger   *slog.Logger
}

func NewAggregator(recordStore shared.RecordStore, tables shared.Tables, cfg config.RevenueConfig, clk clock.Clock, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		store:    recordStore,
		tables:   tables,
		target:   cfg.Target,
		location: cfg.Location(),
		clock:    clk,
		logger:   logger.With(slog.String("component", "revenue_aggregator")),
	}
}

func (a *Aggregator) today() time.Time {
	return clock.StartOfDay(a.clock.Now().In(a.location))
}

// ComputeRevenue reads the most recent snapshot row. An empty table yields a zero summary.
func (a *Aggregator) ComputeRevenue(ctx context.Context) (revenue.Summary, error) {
	records, err := a.store.ListAll(ctx, a.tables.Revenue, store.ListOptions{})
	if err != nil {
		return revenue.Summary{}, errs.Wrap(err, "read revenue table")
	}
	if len(records) == 0 {
		return revenue.Summary{}, nil
	}
	return summaryFromRecord(records[0], a.location), nil
}

// ComputeFromReservations builds today's summary and category breakdown from the synced
// reservation table.
func (a *Aggregator) ComputeFromReservations(ctx context.Context) (revenue.Summary, []revenue.CategoryRevenue, error) {
	reservations, err := a.readReservations(ctx)
	if err != nil {
		return revenue.Summary{}, nil, err
	}

	today := a.today()
	summary := revenue.Summary{Date: today, Reservations: len(reservations)}
	breakdown := revenue.EmptyBreakdown()
	index := make(map[revenue.Category]int, len(breakdown))
	for i, row := range breakdown {
		index[row.Category] = i
	}

	listings := make(map[string]bool)
	occupied := make(map[string]bool)
	for _, r := range reservations {
		summary.ActualRevenue += r.PaidAmount
		summary.ExpectedRevenue += r.TotalAmount

		listing := strings.TrimSpace(r.ListingName)
		if listing != "" {
			listings[listing] = true
			if r.IsStaying(today) {
				occupied[listing] = true
			}
		}

		if c, ok := revenue.CategoryFor(r.ListingName, r.ListingCategory); ok {
			row := &breakdown[index[c]]
			row.ActualRevenue += r.PaidAmount
			row.ExpectedRevenue += r.TotalAmount
			row.Reservations++
		}
	}

	summary.ActualRevenue = money.Round2(summary.ActualRevenue)
	summary.ExpectedRevenue = money.Round2(summary.ExpectedRevenue)
	target := a.target
	if target <= 0 {
		target = summary.ExpectedRevenue
	}
	summary.TargetAchieved = revenue.Achievement(summary.ActualRevenue, target)
	summary.Occupancy = revenue.Occupancy(len(occupied), len(listings))

	for i := range breakdown {
		breakdown[i].ActualRevenue = money.Round2(breakdown[i].ActualRevenue)
		breakdown[i].ExpectedRevenue = money.Round2(breakdown[i].ExpectedRevenue)
	}
	return summary, breakdown, nil
}

// UpsertTodaySnapshot patches the row for the current period or creates it. On dated tables the
// period is today; on undated ones the newest row stands for the current period.
func (a *Aggregator) UpsertTodaySnapshot(ctx context.Context, summary revenue.Summary) (UpsertResult, error) {
	records, err := a.store.ListAll(ctx, a.tables.Revenue, store.ListOptions{})
	if err != nil {
		return UpsertResult{}, errs.Mark(errs.Wrap(err, "read revenue table"), errs.ErrSnapshotUpsertFailed)
	}

	today := a.today()
	fields := snapshotFields(summary)
	if a.tables.RevenueDated {
		fields[shared.FieldSnapshotDate.Column()] = reservation.FormatDate(today)
	}

	existing, found := a.currentPeriodRow(records, today)
	if found {
		if err := a.store.Update(ctx, a.tables.Revenue, existing.ID, fields); err != nil {
			return UpsertResult{}, errs.Mark(errs.Wrap(err, "patch revenue snapshot"), errs.ErrSnapshotUpsertFailed)
		}
		return UpsertResult{RecordID: existing.ID}, nil
	}

	created, err := a.store.Create(ctx, a.tables.Revenue, fields)
	if err != nil {
		return UpsertResult{}, errs.Mark(errs.Wrap(err, "create revenue snapshot"), errs.ErrSnapshotUpsertFailed)
	}
	return UpsertResult{RecordID: created.ID, Created: true}, nil
}

func (a *Aggregator) currentPeriodRow(records []store.Record, today time.Time) (store.Record, bool) {
	if !a.tables.RevenueDated {
		if len(records) == 0 {
			return store.Record{}, false
		}
		return records[0], true
	}
	for _, rec := range records {
		day, err := reservation.ParseDate(shared.GetOrEmpty(rec, shared.FieldSnapshotDate), a.location)
		if err == nil && reservation.SameDay(day, today) {
			return rec, true
		}
	}
	return store.Record{}, false
}

// UpsertCategoryRevenue writes one row per category, keyed by the category name. When
// onlyMissing is set, rows that already exist are left alone.
func (a *Aggregator) UpsertCategoryRevenue(ctx context.Context, rows []revenue.CategoryRevenue, onlyMissing bool) (CategoryUpsertResult, error) {
	records, err := a.store.ListAll(ctx, a.tables.Categories, store.ListOptions{})
	if err != nil {
		return CategoryUpsertResult{}, errs.Mark(errs.Wrap(err, "read category table"), errs.ErrSnapshotUpsertFailed)
	}

	existing := make(map[revenue.Category]store.Record, len(records))
	for _, rec := range records {
		c, ok := revenue.ParseCategory(shared.GetOrEmpty(rec, shared.FieldCategory))
		if !ok {
			continue
		}
		if _, seen := existing[c]; !seen {
			existing[c] = rec
		}
	}

	var (
		result   CategoryUpsertResult
		failures []error
	)
	for _, row := range rows {
		fields := categoryFields(row)
		rec, found := existing[row.Category]
		switch {
		case found && onlyMissing:
			continue
		case found:
			err = a.store.Update(ctx, a.tables.Categories, rec.ID, fields)
		default:
			_, err = a.store.Create(ctx, a.tables.Categories, fields)
		}
		if err != nil {
			a.logger.Warn("category revenue upsert failed", "category", row.Category, "error", sanitize.Error(err))
			result.Errors++
			failures = append(failures, errs.Wrapf(err, "category %s", row.Category))
			continue
		}
		if found {
			result.Updated++
		} else {
			result.Created++
		}
	}

	if len(failures) > 0 {
		return result, errs.Mark(errs.Combine(failures...), errs.ErrSnapshotUpsertFailed)
	}
	return result, nil
}

// CategoryBreakdown reads the category table. Categories without a row read as zero.
func (a *Aggregator) CategoryBreakdown(ctx context.Context) ([]revenue.CategoryRevenue, error) {
	records, err := a.store.ListAll(ctx, a.tables.Categories, store.ListOptions{})
	if err != nil {
		return nil, errs.Wrap(err, "read category table")
	}

	rows := revenue.EmptyBreakdown()
	seen := make(map[revenue.Category]bool, len(rows))
	for _, rec := range records {
		c, ok := revenue.ParseCategory(shared.GetOrEmpty(rec, shared.FieldCategory))
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		for i := range rows {
			if rows[i].Category == c {
				rows[i].ActualRevenue = money.ParseOrZero(shared.GetOrEmpty(rec, shared.FieldActualRevenue))
				rows[i].ExpectedRevenue = money.ParseOrZero(shared.GetOrEmpty(rec, shared.FieldExpectedRevenue))
				rows[i].Reservations = parseCount(shared.GetOrEmpty(rec, shared.FieldReservations))
			}
		}
	}
	return rows, nil
}

// DateRange sums the synced reservations arriving within [start, end], both inclusive.
func (a *Aggregator) DateRange(ctx context.Context, start, end time.Time) (revenue.RangeSummary, error) {
	if end.Before(start) {
		return revenue.RangeSummary{}, errs.Wrapf(errs.ErrInvalidDateRange, "%s is after %s",
			reservation.FormatDate(start), reservation.FormatDate(end))
	}

	reservations, err := a.readReservations(ctx)
	if err != nil {
		return revenue.RangeSummary{}, err
	}

	out := revenue.RangeSummary{Start: start, End: end, ByCategory: revenue.EmptyBreakdown()}
	first, last := reservation.FormatDate(start), reservation.FormatDate(end)
	for _, r := range reservations {
		day := reservation.FormatDate(r.ArrivalDate)
		if day == "" || day < first || day > last {
			continue
		}
		out.Reservations++
		out.ActualRevenue += r.PaidAmount
		out.ExpectedRevenue += r.TotalAmount
		out.Outstanding += r.RemainingAmount

		if c, ok := revenue.CategoryFor(r.ListingName, r.ListingCategory); ok {
			for i := range out.ByCategory {
				if out.ByCategory[i].Category == c {
					out.ByCategory[i].ActualRevenue = money.Round2(out.ByCategory[i].ActualRevenue + r.PaidAmount)
					out.ByCategory[i].ExpectedRevenue = money.Round2(out.ByCategory[i].ExpectedRevenue + r.TotalAmount)
					out.ByCategory[i].Reservations++
				}
			}
		}
	}
	out.ActualRevenue = money.Round2(out.ActualRevenue)
	out.ExpectedRevenue = money.Round2(out.ExpectedRevenue)
	out.Outstanding = money.Round2(out.Outstanding)
	return out, nil
}

func (a *Aggregator) readReservations(ctx context.Context) ([]reservation.Reservation, error) {
	records, err := a.store.ListAll(ctx, a.tables.Reservations, store.ListOptions{})
	if err != nil {
		return nil, errs.Wrap(err, "read reservation table")
	}
	out := make([]reservation.Reservation, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		r, ok := shared.ReservationFromRecord(rec, a.location)
		if !ok || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out, nil
}

func summaryFromRecord(rec store.Record, loc *time.Location) revenue.Summary {
	s := revenue.Summary{
		ActualRevenue:   money.ParseOrZero(shared.GetOrEmpty(rec, shared.FieldActualRevenue)),
		ExpectedRevenue: money.ParseOrZero(shared.GetOrEmpty(rec, shared.FieldExpectedRevenue)),
		TargetAchieved:  parsePercent(shared.GetOrEmpty(rec, shared.FieldTargetAchieved)),
		Occupancy:       parsePercent(shared.GetOrEmpty(rec, shared.FieldOccupancy)),
		Reservations:    parseCount(shared.GetOrEmpty(rec, shared.FieldReservations)),
	}
	if day, err := reservation.ParseDate(shared.GetOrEmpty(rec, shared.FieldSnapshotDate), loc); err == nil {
		s.Date = day
	} else if !rec.CreatedTime.IsZero() {
		s.Date = clock.StartOfDay(rec.CreatedTime.In(loc))
	}
	return s
}

func snapshotFields(s revenue.Summary) map[string]string {
	return map[string]string{
		shared.FieldActualRevenue.Column():   money.Format(s.ActualRevenue),
		shared.FieldExpectedRevenue.Column(): money.Format(s.ExpectedRevenue),
		shared.FieldTargetAchieved.Column():  money.Format(s.TargetAchieved),
		shared.FieldOccupancy.Column():       money.Format(s.Occupancy),
		shared.FieldReservations.Column():    strconv.Itoa(s.Reservations),
	}
}

func categoryFields(row revenue.CategoryRevenue) map[string]string {
	return map[string]string{
		shared.FieldCategory.Column():        row.Category.String(),
		shared.FieldActualRevenue.Column():   money.Format(row.ActualRevenue),
		shared.FieldExpectedRevenue.Column(): money.Format(row.ExpectedRevenue),
		shared.FieldReservations.Column():    strconv.Itoa(row.Reservations),
	}
}

// parsePercent accepts "87.5" and "87.5%".
func parsePercent(raw string) float64 {
	return money.ParseOrZero(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
}

func parseCount(raw string) int {
	v := money.ParseOrZero(raw)
	if v < 0 {
		return 0
	}
	return int(v)
}
