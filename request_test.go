package invoice

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"valid one part", func(r *Request) {}, nil},
		{"valid two parts", func(r *Request) {
			r.PaymentOption = TwoParts
			r.Percentages = []decimal.Decimal{decimal.NewFromInt(40)}
		}, nil},
		{"valid three parts at the bound", func(r *Request) {
			r.PaymentOption = ThreeParts
			r.Percentages = []decimal.Decimal{decimal.NewFromInt(60), decimal.NewFromInt(40)}
		}, nil},
		{"unknown region", func(r *Request) { r.Region = "EU" }, ErrUnknownRegion},
		{"unknown currency", func(r *Request) { r.Currency = "EUR" }, ErrUnknownCurrency},
		{"unknown payment option", func(r *Request) { r.PaymentOption = "Weekly" }, ErrUnknownPaymentOption},
		{"negative total", func(r *Request) { r.Total = decimal.NewFromInt(-1) }, ErrNegativeTotal},
		{"missing percentage", func(r *Request) { r.PaymentOption = TwoParts }, ErrPercentageCount},
		{"negative percentage", func(r *Request) {
			r.PaymentOption = TwoParts
			r.Percentages = []decimal.Decimal{decimal.NewFromInt(-5)}
		}, ErrPercentageRange},
		{"percentage above 100", func(r *Request) {
			r.PaymentOption = TwoParts
			r.Percentages = []decimal.Decimal{decimal.NewFromInt(101)}
		}, ErrPercentageRange},
		{"second percentage exceeds remaining share", func(r *Request) {
			r.PaymentOption = ThreeParts
			r.Percentages = []decimal.Decimal{decimal.NewFromInt(60), decimal.NewFromInt(50)}
		}, ErrPercentageRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest(t)
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
