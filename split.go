package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentOption selects how many installments an invoice is split into.
type PaymentOption string

// Supported payment options.
const (
	OnePart    PaymentOption = "One Part"
	TwoParts   PaymentOption = "Two Parts"
	ThreeParts PaymentOption = "Three Parts"
)

// requiredPercents returns how many user-supplied percentages the option
// takes; the final installment's share is always derived.
func (o PaymentOption) requiredPercents() (int, bool) {
	switch o {
	case OnePart:
		return 0, true
	case TwoParts:
		return 1, true
	case ThreeParts:
		return 2, true
	}
	return 0, false
}

// Installment is one scheduled partial payment. Percent is the integer
// share of the total; it is zero for a single-part payment, which carries
// no percentage.
type Installment struct {
	Percent int64
	Amount  decimal.Decimal
}

// Split partitions total into percentage-weighted installments.
//
// Percentages are rounded to the nearest integer before any amount is
// computed. Every installment except the last has its amount rounded to two
// decimal places; the last installment is the residual of the total, never
// independently rounded, so the installment amounts always sum exactly to
// the total. The derived final percentage absorbs rounding remainder the
// same way.
//
// Split assumes pre-validated percentages (see Request.Validate); the only
// input it rejects itself is a percentage count that does not match the
// payment option.
func Split(total decimal.Decimal, option PaymentOption, percents []decimal.Decimal) ([]Installment, error) {
	want, ok := option.requiredPercents()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentOption, option)
	}
	if len(percents) != want {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrPercentageCount, option, want, len(percents))
	}

	switch option {
	case OnePart:
		return []Installment{{Amount: total}}, nil

	case TwoParts:
		p1 := roundPercent(percents[0])
		price1 := share(total, p1)
		return []Installment{
			{Percent: p1, Amount: price1},
			{Percent: 100 - p1, Amount: total.Sub(price1)},
		}, nil

	default: // ThreeParts
		p1 := roundPercent(percents[0])
		p2 := roundPercent(percents[1])
		price1 := share(total, p1)
		price2 := share(total, p2)
		return []Installment{
			{Percent: p1, Amount: price1},
			{Percent: p2, Amount: price2},
			{Percent: 100 - p1 - p2, Amount: total.Sub(price1).Sub(price2)},
		}, nil
	}
}

// roundPercent rounds a raw percentage to the nearest integer.
func roundPercent(p decimal.Decimal) int64 {
	return p.Round(0).IntPart()
}

// share computes percent of total, rounded to two decimal places.
func share(total decimal.Decimal, percent int64) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(percent)).Div(decimal.NewFromInt(100)).Round(2)
}
