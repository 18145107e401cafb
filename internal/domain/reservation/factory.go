package reservation

import (
	"strings"
	"time"
)

// Source is a raw provider reservation after field extraction but before payment normalization.
type Source struct {
	ID                string
	ListingID         string
	ListingName       string
	GuestName         string
	ArrivalDate       time.Time
	DepartureDate     time.Time
	ReservationStatus string
	Payment           PaymentInput
}

// Listing carries the catalog metadata a reservation is enriched with.
type Listing struct {
	ID       string
	Name     string
	Category Category
}

// Normalize builds the canonical reservation. finance may be nil when the lookup failed or
// returned nothing parseable.
func Normalize(src Source, listing Listing, finance *FinanceFigures) Reservation {
	payment := DerivePaymentStatus(src.Payment, finance)

	name := strings.TrimSpace(src.ListingName)
	if name == "" {
		name = listing.Name
	}
	category := listing.Category
	if category == "" {
		category = Categorize(name, nil)
	}

	return Reservation{
		ID:                strings.TrimSpace(src.ID),
		ListingID:         src.ListingID,
		ListingName:       name,
		ListingCategory:   category,
		GuestName:         strings.TrimSpace(src.GuestName),
		ArrivalDate:       src.ArrivalDate,
		DepartureDate:     src.DepartureDate,
		TotalAmount:       payment.Total,
		PaidAmount:        payment.Paid,
		RemainingAmount:   payment.Remaining,
		PaymentStatus:     payment.Status,
		ReservationStatus: src.ReservationStatus,
		FinanceSourced:    payment.Source == SourceFinance,
	}
}
