package shared

import (
	"strings"
	"time"

	"property-revenue-sync/internal/domain/reservation"
	"property-revenue-sync/internal/infra/store"
	"property-revenue-sync/internal/pkg/money"
)

// ReservationFromRecord reads a synced reservation row back into the domain type. Rows without
// a business key are reported as !ok; unparseable amounts and dates read as zero.
func ReservationFromRecord(rec store.Record, loc *time.Location) (reservation.Reservation, bool) {
	id := strings.TrimSpace(GetOrEmpty(rec, FieldReservationID))
	if id == "" {
		return reservation.Reservation{}, false
	}

	arrival, _ := reservation.ParseDate(GetOrEmpty(rec, FieldArrivalDate), loc)
	departure, _ := reservation.ParseDate(GetOrEmpty(rec, FieldDepartureDate), loc)
	name := GetOrEmpty(rec, FieldListingName)

	category := reservation.Category(strings.TrimSpace(GetOrEmpty(rec, FieldListingCategory)))
	if category == "" {
		category = reservation.Categorize(name, nil)
	}

	return reservation.Reservation{
		ID:                id,
		ListingName:       name,
		ListingCategory:   category,
		GuestName:         GetOrEmpty(rec, FieldGuestName),
		ArrivalDate:       arrival,
		DepartureDate:     departure,
		TotalAmount:       money.ParseOrZero(GetOrEmpty(rec, FieldTotalAmount)),
		PaidAmount:        money.ParseOrZero(GetOrEmpty(rec, FieldPaidAmount)),
		RemainingAmount:   money.ParseOrZero(GetOrEmpty(rec, FieldRemainingAmount)),
		PaymentStatus:     reservation.PaymentStatus(strings.TrimSpace(GetOrEmpty(rec, FieldPaymentStatus))),
		ReservationStatus: GetOrEmpty(rec, FieldReservationStatus),
	}, true
}
