package shared

import "property-revenue-sync/internal/infra/store"

// Field is a logical column. The physical column name is the first alias; the rest are
// spellings that exist in older tables (trailing spaces, camelCase exports).
type Field string

const (
	FieldReservationID     Field = "Reservation ID"
	FieldGuestName         Field = "Guest Name"
	FieldListingName       Field = "Listing Name"
	FieldListingCategory   Field = "Listing Category"
	FieldArrivalDate       Field = "Arrival Date"
	FieldDepartureDate     Field = "Departure Date"
	FieldTotalAmount       Field = "Total Amount"
	FieldPaidAmount        Field = "Paid Amount"
	FieldRemainingAmount   Field = "Remaining Amount"
	FieldPaymentStatus     Field = "Payment Status"
	FieldReservationStatus Field = "Reservation Status"

	FieldSnapshotDate    Field = "Date"
	FieldActualRevenue   Field = "Actual Revenue"
	FieldExpectedRevenue Field = "Expected Revenue"
	FieldTargetAchieved  Field = "Target Achieved"
	FieldOccupancy       Field = "Occupancy"
	FieldCategory        Field = "Category"
	FieldReservations    Field = "Reservations"
)

var aliases = map[Field][]string{
	FieldReservationID:     {"Reservation ID", "Reservation ID ", "reservationId"},
	FieldGuestName:         {"Guest Name", "Guest Name ", "guestName"},
	FieldListingName:       {"Listing Name", "Listing Name ", "listingName"},
	FieldListingCategory:   {"Listing Category", "Listing Category ", "Room Type"},
	FieldArrivalDate:       {"Arrival Date", "Arrival Date ", "arrivalDate"},
	FieldDepartureDate:     {"Departure Date", "Departure Date ", "departureDate"},
	FieldTotalAmount:       {"Total Amount", "Total Amount ", "totalAmount"},
	FieldPaidAmount:        {"Paid Amount", "Paid Amount ", "paidAmount"},
	FieldRemainingAmount:   {"Remaining Amount", "Remaining Amount ", "remainingAmount"},
	FieldPaymentStatus:     {"Payment Status", "Payment Status ", "paymentStatus"},
	FieldReservationStatus: {"Reservation Status", "Reservation Status ", "reservationStatus"},
	FieldSnapshotDate:      {"Date", "Date ", "date"},
	FieldActualRevenue:     {"Actual Revenue", "Actual Revenue ", "actualRevenue"},
	FieldExpectedRevenue:   {"Expected Revenue", "Expected Revenue ", "expectedRevenue"},
	FieldTargetAchieved:    {"Target Achieved", "Target Achieved ", "targetAchieved"},
	FieldOccupancy:         {"Occupancy", "Occupancy ", "occupancy"},
	FieldCategory:          {"Category", "Category ", "category"},
	FieldReservations:      {"Reservations", "Reservations ", "reservations"},
}

// Column is the physical name used on writes.
func (f Field) Column() string {
	return string(f)
}

func (f Field) Aliases() []string {
	if a, ok := aliases[f]; ok {
		return a
	}
	return []string{string(f)}
}

// Get reads a logical field from a record through its aliases.
func Get(rec store.Record, f Field) (string, bool) {
	return rec.Field(f.Aliases()...)
}

// GetOrEmpty is Get with an empty default.
func GetOrEmpty(rec store.Record, f Field) string {
	v, _ := Get(rec, f)
	return v
}
