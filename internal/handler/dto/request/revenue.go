package request

import (
	"time"

	"property-revenue-sync/internal/pkg/errs"
)

const DateLayout = "2006-01-02"

type DateRangeQuery struct {
	StartDate string `json:"startDate" form:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" form:"endDate" binding:"required,datetime=2006-01-02"`
}

// ToRange parses both bounds as calendar days in loc. The end bound is inclusive.
func (q DateRangeQuery) ToRange(loc *time.Location) (start, end time.Time, err error) {
	start, err = time.ParseInLocation(DateLayout, q.StartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(errs.Wrap(err, "startDate"), errs.ErrInvalidDateRange)
	}
	end, err = time.ParseInLocation(DateLayout, q.EndDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, errs.Mark(errs.Wrap(err, "endDate"), errs.ErrInvalidDateRange)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, errs.Wrapf(errs.ErrInvalidDateRange, "endDate %s before startDate %s", q.EndDate, q.StartDate)
	}
	return start, end, nil
}
