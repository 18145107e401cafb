package source

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"property-revenue-sync/internal/pkg/optional"
)

// flexString accepts JSON strings and numbers; provider ids arrive as either.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(strings.TrimSpace(v))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexFloat accepts numbers and numeric strings. Valid is false for null, "" and garbage.
type flexFloat struct {
	Value float64
	Valid bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = flexFloat{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		raw = strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	*f = flexFloat{Value: v, Valid: true}
	return nil
}

func (f flexFloat) ptr() *float64 {
	if !f.Valid {
		return nil
	}
	return optional.Of(f.Value)
}

// flexInt accepts whole numbers as JSON numbers or strings ("2", 2.0). Anything else reads as
// absent rather than failing the envelope.
type flexInt struct {
	Value int
	Valid bool
}

func (i *flexInt) UnmarshalJSON(data []byte) error {
	var f flexFloat
	_ = f.UnmarshalJSON(data)
	*i = flexInt{}
	if f.Valid && f.Value == math.Trunc(f.Value) {
		*i = flexInt{Value: int(f.Value), Valid: true}
	}
	return nil
}

func (i flexInt) ptr() *int {
	if !i.Valid {
		return nil
	}
	return optional.Of(i.Value)
}

// flexBool accepts true/false, 0/1 and their string forms.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	switch s {
	case "true", "1", "yes":
		*b = true
	default:
		*b = false
	}
	return nil
}

type RawPayment struct {
	Amount flexFloat  `json:"amount"`
	Status string     `json:"status"`
	ID     flexString `json:"id"`
}

// RawReservation mirrors the provider's reservation payload. Payment fields are loosely typed
// and frequently absent.
type RawReservation struct {
	ID             flexString   `json:"id"`
	ListingMapID   flexString   `json:"listingMapId"`
	ListingName    string       `json:"listingName"`
	GuestName      string       `json:"guestName"`
	GuestFirstName string       `json:"guestFirstName"`
	GuestLastName  string       `json:"guestLastName"`
	ArrivalDate    string       `json:"arrivalDate"`
	DepartureDate  string       `json:"departureDate"`
	Status         string       `json:"status"`
	TotalPrice     flexFloat    `json:"totalPrice"`
	IsPaid         flexBool     `json:"isPaid"`
	PaymentStatus  string       `json:"paymentStatus"`
	Payments       []RawPayment `json:"payments"`
	PaidAmount     flexFloat    `json:"paidAmount"`
	TotalPaid      flexFloat    `json:"totalPaid"`
	AmountPaid     flexFloat    `json:"amountPaid"`
	Balance        flexFloat    `json:"remainingBalance"`
}

func (r RawReservation) guest() string {
	if name := strings.TrimSpace(r.GuestName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(r.GuestFirstName) + " " + strings.TrimSpace(r.GuestLastName))
}

type RawListing struct {
	ID                  flexString `json:"id"`
	Name                string     `json:"name"`
	InternalListingName string     `json:"internalListingName"`
	BedroomsNumber      flexInt    `json:"bedroomsNumber"`
	Country             string     `json:"country"`
	CountryCode         string     `json:"countryCode"`
	City                string     `json:"city"`
}

func (l RawListing) displayName() string {
	if name := strings.TrimSpace(l.InternalListingName); name != "" {
		return name
	}
	return strings.TrimSpace(l.Name)
}

// FinanceLine is one calculated field of the per-reservation finance breakdown.
type FinanceLine struct {
	Name          string    `json:"name"`
	FormulaFilled string    `json:"formulaFilled"`
	FormulaResult flexFloat `json:"formulaResult"`
}

type resultEnvelope[T any] struct {
	Status string `json:"status"`
	Result []T    `json:"result"`
}

// ReservationFilter narrows the reservation listing call.
type ReservationFilter struct {
	ModifiedSince string
}
