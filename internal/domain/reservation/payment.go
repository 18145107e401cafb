package reservation

import (
	"strconv"
	"strings"

	"property-revenue-sync/internal/pkg/money"
	"property-revenue-sync/internal/pkg/optional"
)

// PaymentInput is the provider-neutral view of the loosely typed payment fields on a raw reservation.
// Optional amounts are nil when the provider omitted them.
type PaymentInput struct {
	TotalAmount float64
	IsPaid      bool
	RawStatus   string
	Payments    []float64
	PaidAmount  *float64
	TotalPaid   *float64
	AmountPaid  *float64
	Balance     *float64
}

// FinanceFigures come from the per-reservation finance lookup and are authoritative when present.
type FinanceFigures struct {
	Total     float64
	Paid      float64
	Remaining float64
}

type PaymentResult struct {
	Status    PaymentStatus
	Total     float64
	Paid      float64
	Remaining float64
	Source    PaymentSource
}

// DerivePaymentStatus resolves status and amounts in fixed priority order:
//  1. finance figures
//  2. paid flag or paid status
//  3. partial status, paid amount from the best available field
//  4. raw status ("unknown"/"pending" become Due, anything else passes through)
//  5. Unpaid
func DerivePaymentStatus(in PaymentInput, finance *FinanceFigures) PaymentResult {
	total := money.Round2(money.NonNegative(in.TotalAmount))

	if finance != nil {
		return fromFinance(in, *finance, total)
	}

	status := normalizeStatus(in.RawStatus)

	if in.IsPaid || isPaidStatus(status) {
		return PaymentResult{Status: StatusPaid, Total: total, Paid: total, Remaining: 0, Source: SourcePaidFlag}
	}

	if isPartialStatus(status) {
		paid := clamp(money.Round2(partialPaid(in, total)), total)
		return PaymentResult{
			Status:    StatusPartiallyPaid,
			Total:     total,
			Paid:      paid,
			Remaining: money.Round2(total - paid),
			Source:    SourcePartial,
		}
	}

	if status != "" {
		return PaymentResult{Status: rawStatus(in.RawStatus), Total: total, Paid: 0, Remaining: total, Source: SourceRawStatus}
	}

	return PaymentResult{Status: StatusUnpaid, Total: total, Paid: 0, Remaining: total, Source: SourceDefault}
}

func fromFinance(in PaymentInput, f FinanceFigures, total float64) PaymentResult {
	paid := money.Round2(money.NonNegative(f.Paid))
	remaining := money.Round2(money.NonNegative(f.Remaining))
	if f.Total > 0 {
		total = money.Round2(f.Total)
	}

	var status PaymentStatus
	switch {
	case remaining <= 0 && paid > 0:
		status = StatusPaid
	case paid > 0 && remaining > 0:
		status = StatusPartiallyPaid
	case strings.TrimSpace(in.RawStatus) != "":
		status = rawStatus(in.RawStatus)
	default:
		status = StatusUnpaid
	}

	return PaymentResult{Status: status, Total: total, Paid: paid, Remaining: remaining, Source: SourceFinance}
}

func partialPaid(in PaymentInput, total float64) float64 {
	if len(in.Payments) > 0 {
		var sum float64
		for _, p := range in.Payments {
			sum += p
		}
		return sum
	}
	for _, candidate := range []*float64{in.PaidAmount, in.TotalPaid, in.AmountPaid} {
		if candidate != nil {
			return *candidate
		}
	}
	if in.Balance != nil {
		return total - *in.Balance
	}
	return 0
}

func rawStatus(raw string) PaymentStatus {
	switch normalizeStatus(raw) {
	case "unknown", "pending":
		return StatusDue
	default:
		return PaymentStatus(raw)
	}
}

func normalizeStatus(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func isPaidStatus(status string) bool {
	switch status {
	case "paid", "fully paid", "fully_paid", "fullypaid":
		return true
	default:
		return false
	}
}

func isPartialStatus(status string) bool {
	return strings.Contains(status, "partial")
}

func clamp(v, upper float64) float64 {
	if v < 0 {
		return 0
	}
	if v > upper {
		return upper
	}
	return v
}

// ParseFinanceFormula reads a finance line of the form formulaFilled "<total>-<paid>" with
// formulaResult holding the remaining amount. A nil result means the provider omitted it.
func ParseFinanceFormula(formula string, result *float64) (FinanceFigures, bool) {
	parts := strings.Split(strings.ReplaceAll(formula, " ", ""), "-")
	if len(parts) != 2 {
		return FinanceFigures{}, false
	}
	total, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return FinanceFigures{}, false
	}
	paid, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return FinanceFigures{}, false
	}

	return FinanceFigures{Total: total, Paid: paid, Remaining: optional.Coalesce(result, total-paid)}, true
}
