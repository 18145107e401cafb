package reservation

import (
	"time"
)

// Reservation is the canonical record produced from the booking provider.
type Reservation struct {
	ID                string
	ListingID         string
	ListingName       string
	ListingCategory   Category
	GuestName         string
	ArrivalDate       time.Time
	DepartureDate     time.Time
	TotalAmount       float64
	PaidAmount        float64
	RemainingAmount   float64
	PaymentStatus     PaymentStatus
	ReservationStatus string
	// FinanceSourced is set when the amounts came from the finance lookup; the
	// paid+remaining=total invariant only holds for derived amounts.
	FinanceSourced bool
}

// IsStaying reports whether the guest is in the unit on the given day.
func (r Reservation) IsStaying(day time.Time) bool {
	today := dayIndex(day)
	return dayIndex(r.ArrivalDate) <= today && today < dayIndex(r.DepartureDate)
}

func (r Reservation) Nights() int {
	n := dayIndex(r.DepartureDate) - dayIndex(r.ArrivalDate)
	if n < 0 {
		return 0
	}
	return int(n)
}

// BalancedAmounts reports whether paid and remaining add back up to the total.
func (r Reservation) BalancedAmounts() bool {
	const epsilon = 0.005
	diff := r.PaidAmount + r.RemainingAmount - r.TotalAmount
	return diff < epsilon && diff > -epsilon &&
		r.PaidAmount >= 0 && r.PaidAmount <= r.TotalAmount+epsilon &&
		r.RemainingAmount >= 0 && r.RemainingAmount <= r.TotalAmount+epsilon
}
