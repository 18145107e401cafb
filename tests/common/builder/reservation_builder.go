//go:build unit || e2e

package builder

import (
	"time"

	"property-revenue-sync/internal/domain/reservation"
	"property-revenue-sync/internal/pkg/money"
	"property-revenue-sync/internal/usecase/shared"
)

type ReservationBuilder struct {
	ID                string
	ListingID         string
	ListingName       string
	ListingCategory   reservation.Category
	GuestName         string
	ArrivalDate       time.Time
	DepartureDate     time.Time
	TotalAmount       float64
	PaidAmount        float64
	PaymentStatus     reservation.PaymentStatus
	ReservationStatus string
	IsPaid            bool
	RawPaymentStatus  string
}

func NewReservationBuilder() *ReservationBuilder {
	arrival := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		ID:                "101",
		ListingID:         "2001",
		ListingName:       "Marina Studio 12",
		ListingCategory:   reservation.CategoryStudio,
		GuestName:         "Test Guest",
		ArrivalDate:       arrival,
		DepartureDate:     arrival.AddDate(0, 0, 3),
		TotalAmount:       200,
		PaidAmount:        0,
		PaymentStatus:     reservation.StatusUnpaid,
		ReservationStatus: "new",
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithID(id string) *ReservationBuilder {
	b.ID = id
	return b
}

// WithAmounts sets total and paid; the status follows the paid share.
func (b *ReservationBuilder) WithAmounts(total, paid float64) *ReservationBuilder {
	b.TotalAmount, b.PaidAmount = total, paid
	switch {
	case paid >= total && paid > 0:
		b.PaymentStatus = reservation.StatusPaid
	case paid > 0:
		b.PaymentStatus = reservation.StatusPartiallyPaid
	default:
		b.PaymentStatus = reservation.StatusUnpaid
	}
	return b
}

func (b *ReservationBuilder) WithStay(arrival time.Time, nights int) *ReservationBuilder {
	b.ArrivalDate = arrival
	b.DepartureDate = arrival.AddDate(0, 0, nights)
	return b
}

func (b *ReservationBuilder) WithListing(id, name string, category reservation.Category) *ReservationBuilder {
	b.ListingID, b.ListingName, b.ListingCategory = id, name, category
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() reservation.Reservation {
	return reservation.Reservation{
		ID:                b.ID,
		ListingID:         b.ListingID,
		ListingName:       b.ListingName,
		ListingCategory:   b.ListingCategory,
		GuestName:         b.GuestName,
		ArrivalDate:       b.ArrivalDate,
		DepartureDate:     b.DepartureDate,
		TotalAmount:       b.TotalAmount,
		PaidAmount:        b.PaidAmount,
		RemainingAmount:   money.NonNegative(b.TotalAmount - b.PaidAmount),
		PaymentStatus:     b.PaymentStatus,
		ReservationStatus: b.ReservationStatus,
	}
}

// BuildRecordFields renders the row the store holds for this reservation after a sync.
func (b *ReservationBuilder) BuildRecordFields() map[string]string {
	r := b.BuildDomain()
	return map[string]string{
		shared.FieldReservationID.Column():     r.ID,
		shared.FieldGuestName.Column():         r.GuestName,
		shared.FieldListingName.Column():       r.ListingName,
		shared.FieldListingCategory.Column():   r.ListingCategory.String(),
		shared.FieldArrivalDate.Column():       reservation.FormatDate(r.ArrivalDate),
		shared.FieldDepartureDate.Column():     reservation.FormatDate(r.DepartureDate),
		shared.FieldTotalAmount.Column():       money.Format(r.TotalAmount),
		shared.FieldPaidAmount.Column():        money.Format(r.PaidAmount),
		shared.FieldRemainingAmount.Column():   money.Format(r.RemainingAmount),
		shared.FieldPaymentStatus.Column():     r.PaymentStatus.String(),
		shared.FieldReservationStatus.Column(): r.ReservationStatus,
	}
}

// BuildProviderJSON renders the booking provider's payload for this reservation.
func (b *ReservationBuilder) BuildProviderJSON() map[string]any {
	payload := map[string]any{
		"id":            b.ID,
		"listingMapId":  b.ListingID,
		"listingName":   b.ListingName,
		"guestName":     b.GuestName,
		"arrivalDate":   reservation.FormatDate(b.ArrivalDate),
		"departureDate": reservation.FormatDate(b.DepartureDate),
		"status":        b.ReservationStatus,
		"totalPrice":    b.TotalAmount,
		"isPaid":        b.IsPaid,
	}
	if b.RawPaymentStatus != "" {
		payload["paymentStatus"] = b.RawPaymentStatus
	}
	return payload
}
