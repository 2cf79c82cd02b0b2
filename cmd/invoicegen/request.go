package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/shopspring/decimal"

	invoice "github.com/Akshara-Amirtharaj/Invoice-Generator"
)

// Sentinel errors for request-file operations.
var (
	ErrRequestNotFound = errors.New("request file not found")
	ErrRequestParse    = errors.New("failed to parse request file")
	ErrInvalidDate     = errors.New("invalid invoice date, use YYYY-MM-DD")
)

// requestDate is the wire format of the date field.
const requestDate = "2006-01-02"

// requestFile mirrors the fields of the interactive form the original tool
// presented, one YAML document per invoice.
type requestFile struct {
	Region             string    `yaml:"region"`
	ClientName         string    `yaml:"clientName"`
	CompanyName        string    `yaml:"companyName"`
	Contact            string    `yaml:"contact"`
	Address            string    `yaml:"address"`
	Email              string    `yaml:"email"`
	ProjectName        string    `yaml:"projectName"`
	Service            string    `yaml:"service"`
	Currency           string    `yaml:"currency"`
	Total              float64   `yaml:"total"`
	PaymentOption      string    `yaml:"paymentOption"`
	Date               string    `yaml:"date"` // YYYY-MM-DD; empty means today
	ServiceDescription string    `yaml:"serviceDescription"`
	Percentages        []float64 `yaml:"percentages"`
}

// loadRequest reads and converts a YAML request file. Semantic validation
// (region, currency, percentage bounds) happens in invoice.Generate.
func loadRequest(path string) (invoice.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return invoice.Request{}, fmt.Errorf("%w: %s", ErrRequestNotFound, path)
		}
		return invoice.Request{}, fmt.Errorf("reading request file: %w", err)
	}

	var rf requestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return invoice.Request{}, fmt.Errorf("%w: %v", ErrRequestParse, err)
	}

	date := time.Now()
	if rf.Date != "" {
		date, err = time.Parse(requestDate, rf.Date)
		if err != nil {
			return invoice.Request{}, fmt.Errorf("%w: %q", ErrInvalidDate, rf.Date)
		}
	}

	percents := make([]decimal.Decimal, 0, len(rf.Percentages))
	for _, p := range rf.Percentages {
		percents = append(percents, decimal.NewFromFloat(p))
	}

	return invoice.Request{
		Region:             invoice.Region(rf.Region),
		ClientName:         rf.ClientName,
		CompanyName:        rf.CompanyName,
		Contact:            rf.Contact,
		Address:            rf.Address,
		Email:              rf.Email,
		ProjectName:        rf.ProjectName,
		Service:            rf.Service,
		Currency:           invoice.Currency(rf.Currency),
		Total:              decimal.NewFromFloat(rf.Total),
		PaymentOption:      invoice.PaymentOption(rf.PaymentOption),
		Date:               date,
		ServiceDescription: rf.ServiceDescription,
		Percentages:        percents,
	}, nil
}
