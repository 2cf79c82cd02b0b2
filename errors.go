package invoice

import "errors"

// Sentinel errors for invoice generation.
var (
	ErrUnknownRegion        = errors.New("unknown region")
	ErrUnknownCurrency      = errors.New("unknown currency")
	ErrUnknownPaymentOption = errors.New("unknown payment option")
	ErrNegativeTotal        = errors.New("total amount cannot be negative")
	ErrPercentageCount      = errors.New("wrong number of installment percentages")
	ErrPercentageRange      = errors.New("installment percentage out of range")
	ErrTemplateEdit         = errors.New("error editing invoice template")
)
