package reservation

import "time"

const DefaultRecentWindowDays = 30

// Scope decides which provider reservations belong to the authoritative set.
//
// The trailing window is deliberately broad. Reservations that age out of it leave the
// authoritative set and are therefore deleted from the store on the next reconciliation.
type Scope struct {
	// Listings in the target market; reservations on other listings are out of scope.
	Listings   map[string]Listing
	WindowDays int
}

func (s Scope) Includes(src Source, now time.Time) bool {
	if _, ok := s.Listings[src.ListingID]; !ok {
		return false
	}
	return IsRelevant(src.ArrivalDate, src.DepartureDate, now, s.WindowDays)
}

// IsRelevant: currently staying, arriving today, departing today, or arrival/departure within
// the trailing window of windowDays days.
func IsRelevant(arrival, departure, now time.Time, windowDays int) bool {
	if arrival.IsZero() && departure.IsZero() {
		return false
	}
	today := dayIndex(now)
	a, d := dayIndex(arrival), dayIndex(departure)

	switch {
	case !arrival.IsZero() && !departure.IsZero() && a <= today && today < d:
		return true
	case !arrival.IsZero() && a == today:
		return true
	case !departure.IsZero() && d == today:
		return true
	}

	if windowDays <= 0 {
		return false
	}
	from := today - int64(windowDays)
	inWindow := func(day int64) bool { return day >= from && day <= today }
	return (!arrival.IsZero() && inWindow(a)) || (!departure.IsZero() && inWindow(d))
}
