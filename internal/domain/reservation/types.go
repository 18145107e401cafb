package reservation

import "strings"

type Category string

const (
	CategoryStudio  Category = "Studio"
	CategoryOneBR   Category = "1BR"
	CategoryTwoBR   Category = "2BR"
	CategoryUnknown Category = "Unknown"
)

func (c Category) String() string {
	return string(c)
}

type PaymentStatus string

const (
	StatusPaid          PaymentStatus = "Paid"
	StatusPartiallyPaid PaymentStatus = "Partially paid"
	StatusUnpaid        PaymentStatus = "Unpaid"
	StatusDue           PaymentStatus = "Due"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// IsKnown reports whether s is one of the canonical statuses rather than a provider passthrough.
func (s PaymentStatus) IsKnown() bool {
	switch s {
	case StatusPaid, StatusPartiallyPaid, StatusUnpaid, StatusDue:
		return true
	default:
		return false
	}
}

// PaymentSource tags which branch of the derivation produced a PaymentResult.
type PaymentSource string

const (
	SourceFinance   PaymentSource = "finance"
	SourcePaidFlag  PaymentSource = "paid_flag"
	SourcePartial   PaymentSource = "partial"
	SourceRawStatus PaymentSource = "raw_status"
	SourceDefault   PaymentSource = "default"
)

var (
	studioMarkers = []string{"studio"}
	oneBRMarkers  = []string{"1br", "1 br", "one bedroom", "1 bedroom", "1-bedroom"}
	twoBRMarkers  = []string{"2br", "2 br", "two bedroom", "2 bedroom", "2-bedroom"}
)

// Categorize classifies a listing. The name wins over the bedroom count because operators
// keep names accurate even when the bedroom field is wrong.
func Categorize(name string, bedrooms *int) Category {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, studioMarkers):
		return CategoryStudio
	case containsAny(lower, oneBRMarkers):
		return CategoryOneBR
	case containsAny(lower, twoBRMarkers):
		return CategoryTwoBR
	}

	if bedrooms == nil {
		return CategoryUnknown
	}
	switch *bedrooms {
	case 0:
		return CategoryStudio
	case 1:
		return CategoryOneBR
	case 2:
		return CategoryTwoBR
	default:
		return CategoryUnknown
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
