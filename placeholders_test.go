package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		Region:        RegionROW,
		ClientName:    "Acme Ltd",
		CompanyName:   "Acme Holdings",
		Contact:       "+1 555 0100",
		Address:       "1 Main St",
		Email:         "billing@acme.test",
		ProjectName:   "Website Revamp",
		Service:       "Web Development",
		Currency:      CurrencyUSD,
		Total:         decimal.NewFromInt(1000),
		PaymentOption: OnePart,
		Date:          time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuildPlaceholders_AlwaysPresent(t *testing.T) {
	req := testRequest(t)
	installments, err := Split(req.Total, req.PaymentOption, req.Percentages)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	placeholders := BuildPlaceholders(req, installments)

	want := map[string]string{
		TokenClientName:    "Acme Ltd",
		TokenCompanyName:   "Acme Holdings",
		TokenClientContact: "+1 555 0100",
		TokenAddress:       "1 Main St",
		TokenClientEmail:   "billing@acme.test",
		TokenProjectName:   "Website Revamp",
		TokenService:       "Web Development",
		TokenPrice:         "1000 USD",
		TokenDate:          "05/03/2026",
	}
	for token, value := range want {
		if got := placeholders[token]; got != value {
			t.Errorf("%s = %q, want %q", token, got, value)
		}
	}
}

func TestBuildPlaceholders_ServiceDescriptionGating(t *testing.T) {
	req := testRequest(t)
	installments, _ := Split(req.Total, req.PaymentOption, req.Percentages)

	placeholders := BuildPlaceholders(req, installments)
	if _, ok := placeholders[TokenServiceDescription]; ok {
		t.Error("service-description token present without a description")
	}

	req.ServiceDescription = "Design, build, and deploy"
	placeholders = BuildPlaceholders(req, installments)
	if got := placeholders[TokenServiceDescription]; got != "Design, build, and deploy" {
		t.Errorf("service-description token = %q", got)
	}
}

func TestBuildPlaceholders_TwoParts(t *testing.T) {
	req := testRequest(t)
	req.PaymentOption = TwoParts
	req.Percentages = []decimal.Decimal{decimal.NewFromInt(33)}

	installments, err := Split(req.Total, req.PaymentOption, req.Percentages)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	placeholders := BuildPlaceholders(req, installments)

	want := map[string]string{
		"<<P1>>":     "33%",
		"<<Price1>>": "330 USD",
		"<<P2>>":     "67%",
		"<<Price2>>": "670 USD",
		TokenPrice:   "1000 USD",
	}
	for token, value := range want {
		if got := placeholders[token]; got != value {
			t.Errorf("%s = %q, want %q", token, got, value)
		}
	}
	if _, ok := placeholders["<<P3>>"]; ok {
		t.Error("third-installment token present for a two-part split")
	}
}

func TestBuildPlaceholders_ThreeParts(t *testing.T) {
	req := testRequest(t)
	req.Currency = CurrencyRupees
	req.PaymentOption = ThreeParts
	req.Percentages = []decimal.Decimal{decimal.NewFromInt(50), decimal.NewFromInt(25)}

	installments, err := Split(req.Total, req.PaymentOption, req.Percentages)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	placeholders := BuildPlaceholders(req, installments)

	want := map[string]string{
		"<<P1>>":     "50%",
		"<<Price1>>": "Rs. 500",
		"<<P2>>":     "25%",
		"<<Price2>>": "Rs. 250",
		"<<P3>>":     "25%",
		"<<Price3>>": "Rs. 250",
	}
	for token, value := range want {
		if got := placeholders[token]; got != value {
			t.Errorf("%s = %q, want %q", token, got, value)
		}
	}
}

func TestBuildPlaceholders_NoInstallmentTokensForOnePart(t *testing.T) {
	req := testRequest(t)
	installments, _ := Split(req.Total, req.PaymentOption, req.Percentages)

	placeholders := BuildPlaceholders(req, installments)
	for _, token := range []string{"<<P1>>", "<<Price1>>", "<<P2>>", "<<Price2>>"} {
		if _, ok := placeholders[token]; ok {
			t.Errorf("installment token %s present for a single-part payment", token)
		}
	}
}
