package reconcile

import (
	"strings"

	"property-revenue-sync/internal/domain/reservation"
	"property-revenue-sync/internal/infra/store"
	"property-revenue-sync/internal/pkg/money"
	"property-revenue-sync/internal/usecase/shared"
)

// mappedFields is the fixed reservation -> store column table, in write order.
var mappedFields = []shared.Field{
	shared.FieldReservationID,
	shared.FieldGuestName,
	shared.FieldListingName,
	shared.FieldListingCategory,
	shared.FieldArrivalDate,
	shared.FieldDepartureDate,
	shared.FieldTotalAmount,
	shared.FieldPaidAmount,
	shared.FieldRemainingAmount,
	shared.FieldPaymentStatus,
	shared.FieldReservationStatus,
}

var amountFields = map[shared.Field]bool{
	shared.FieldTotalAmount:     true,
	shared.FieldPaidAmount:      true,
	shared.FieldRemainingAmount: true,
}

var dateFields = map[shared.Field]bool{
	shared.FieldArrivalDate:   true,
	shared.FieldDepartureDate: true,
}

// ToFields renders a reservation as store columns: dates as YYYY-MM-DD, amounts rounded to
// two decimals without currency symbols.
func ToFields(r reservation.Reservation) map[string]string {
	return map[string]string{
		shared.FieldReservationID.Column():     BusinessKey(r),
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

func BusinessKey(r reservation.Reservation) string {
	return strings.TrimSpace(r.ID)
}

func RecordKey(rec store.Record) string {
	return strings.TrimSpace(shared.GetOrEmpty(rec, shared.FieldReservationID))
}

// changedFields lists the mapped columns whose stored value differs from desired.
func changedFields(desired map[string]string, current store.Record) []string {
	var changed []string
	for _, f := range mappedFields {
		want := desired[f.Column()]
		have, ok := shared.Get(current, f)
		if !ok {
			if want != "" {
				changed = append(changed, f.Column())
			}
			continue
		}
		if !valuesEqual(f, want, have) {
			changed = append(changed, f.Column())
		}
	}
	return changed
}

// valuesEqual tolerates the store's coercions: "200" vs "200.00" and full timestamps on date columns.
func valuesEqual(f shared.Field, want, have string) bool {
	want, have = strings.TrimSpace(want), strings.TrimSpace(have)
	if want == have {
		return true
	}
	switch {
	case amountFields[f]:
		w, okW := money.Parse(want)
		h, okH := money.Parse(have)
		return okW && okH && money.Round2(w) == money.Round2(h)
	case dateFields[f]:
		return len(have) >= len(reservation.DateLayout) && have[:len(reservation.DateLayout)] == want
	default:
		return false
	}
}
