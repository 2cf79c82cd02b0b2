package invoice

import "fmt"

// Placeholder tokens shared with the invoice templates.
const (
	TokenClientName         = "<< Client Name >>"
	TokenCompanyName        = "<<Company Name>>"
	TokenClientContact      = "<<Client Contact>>"
	TokenAddress            = "<<Address>>"
	TokenClientEmail        = "<<Client Email>>"
	TokenProjectName        = "<<Project Name>>"
	TokenService            = "<<Service>>"
	TokenPrice              = "<<Price>>"
	TokenDate               = "<< Date >>"
	TokenServiceDescription = "<<Service Description>>"
)

// placeholderDate is the DD/MM/YYYY rendering used inside documents.
const placeholderDate = "02/01/2006"

// BuildPlaceholders maps placeholder tokens to their rendered values for
// one generation request. The service-description token is present only
// when the request carries a description; installment percentage and price
// tokens (<<P1>>, <<Price1>>, ...) are present only for multi-part options.
// <<Price>> is always the formatted total; the first installment's amount
// token is <<Price1>>.
func BuildPlaceholders(req Request, installments []Installment) map[string]string {
	placeholders := map[string]string{
		TokenClientName:    req.ClientName,
		TokenCompanyName:   req.CompanyName,
		TokenClientContact: req.Contact,
		TokenAddress:       req.Address,
		TokenClientEmail:   req.Email,
		TokenProjectName:   req.ProjectName,
		TokenService:       req.Service,
		TokenPrice:         FormatPrice(req.Total, req.Currency),
		TokenDate:          req.Date.Format(placeholderDate),
	}

	if req.ServiceDescription != "" {
		placeholders[TokenServiceDescription] = req.ServiceDescription
	}

	if req.PaymentOption != OnePart {
		for i, inst := range installments {
			n := i + 1
			placeholders[fmt.Sprintf("<<P%d>>", n)] = fmt.Sprintf("%d%%", inst.Percent)
			placeholders[fmt.Sprintf("<<Price%d>>", n)] = FormatPrice(inst.Amount, req.Currency)
		}
	}

	return placeholders
}
