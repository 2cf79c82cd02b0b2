package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Request carries every form field for one invoice generation. It replaces
// the interactive form of the original tool with a single explicit value
// passed into the core functions.
type Request struct {
	Region        Region
	ClientName    string
	CompanyName   string
	Contact       string
	Address       string
	Email         string
	ProjectName   string
	Service       string
	Currency      Currency
	Total         decimal.Decimal
	PaymentOption PaymentOption
	Date          time.Time

	// ServiceDescription is only meaningful for OnePart; when empty, the
	// "no service" template variant is selected.
	ServiceDescription string

	// Percentages holds the user-supplied installment shares: none for
	// OnePart, the first share for TwoParts, the first two for ThreeParts.
	// The final share is always derived.
	Percentages []decimal.Decimal
}

// Validate checks the request at the input-collection boundary, so the
// split and placeholder components can assume well-formed values.
// Percentages must lie within [0,100] and never exceed the share remaining
// after earlier installments.
func (r Request) Validate() error {
	switch r.Region {
	case RegionROW, RegionIndia:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRegion, r.Region)
	}

	switch r.Currency {
	case CurrencyUSD, CurrencyRupees:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, r.Currency)
	}

	if r.Total.IsNegative() {
		return ErrNegativeTotal
	}

	want, ok := r.PaymentOption.requiredPercents()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPaymentOption, r.PaymentOption)
	}
	if len(r.Percentages) != want {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrPercentageCount, r.PaymentOption, want, len(r.Percentages))
	}

	remaining := decimal.NewFromInt(100)
	for i, p := range r.Percentages {
		if p.IsNegative() || p.GreaterThan(remaining) {
			return fmt.Errorf("%w: installment %d", ErrPercentageRange, i+1)
		}
		remaining = remaining.Sub(p)
	}

	return nil
}
