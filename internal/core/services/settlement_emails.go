package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/fxdesk/remittance_backend/internal/core/domain"
	"github.com/fxdesk/remittance_backend/internal/utils"
	"github.com/shopspring/decimal"
)

var emailFuncs = template.FuncMap{
	"inr": func(d *decimal.Decimal) string {
		if d == nil {
			return "-"
		}
		return "₹" + utils.FormatINR(*d)
	},
	"amount": func(d decimal.Decimal) string {
		return utils.FormatWithPrecision(d, 2)
	},
	"rate": func(d *decimal.Decimal) string {
		if d == nil {
			return "-"
		}
		return utils.FormatWithPrecision(*d, 2)
	},
}

var opsA2Template = template.Must(template.New("ops_a2").Funcs(emailFuncs).Parse(`<html><body>
<h2>A2 form for order {{.OrderID}}</h2>
{{if .Order}}<table>
<tr><td>Amount</td><td>{{.Order.CurrencyCode}} {{amount .Order.ForeignAmount}}</td></tr>
<tr><td>Destination</td><td>{{.Order.DestinationCountry}}</td></tr>
<tr><td>Purpose</td><td>{{.Order.PurposeCode}}</td></tr>
<tr><td>Customer rate</td><td>{{rate .Order.CustomerRate}}</td></tr>
<tr><td>INR amount</td><td>{{inr .Order.InrAmount}}</td></tr>
<tr><td>Bank fee</td><td>{{inr .Order.BankFee}}</td></tr>
<tr><td>GST</td><td>{{inr .Order.GST}}</td></tr>
<tr><td>TCS</td><td>{{inr .Order.TCS}}</td></tr>
<tr><td>Total payable</td><td>{{inr .Order.TotalPayable}}</td></tr>
</table>{{end}}
{{if .Sender}}<h3>Sender</h3>
<p>{{.Sender.Name}} (PAN {{.Sender.PAN}})<br>{{.Sender.Address}}, {{.Sender.City}}, {{.Sender.State}} {{.Sender.PostalCode}}<br>{{.Sender.Phone}} / {{.Sender.Email}}</p>{{end}}
{{if .Beneficiary}}<h3>Beneficiary</h3>
<p>{{.Beneficiary.Name}}, {{.Beneficiary.Country}}<br>{{.Beneficiary.BankName}} ({{.Beneficiary.SwiftCode}}) account {{.Beneficiary.AccountNumber}}</p>{{end}}
{{if .Document}}<p>Stored form: <a href="{{.Document.ImageURL}}">{{.Document.Name}}</a></p>{{end}}
{{if .Errors}}<h3>Problems</h3><ul>{{range .Errors}}<li>{{.}}</li>{{end}}</ul>{{end}}
</body></html>`))

var partnerTemplate = template.Must(template.New("partner_docs").Funcs(emailFuncs).Parse(`<html><body>
<p>Please find attached the documents for order {{.OrderID}}{{if .Order}} ({{.Order.CurrencyCode}} {{amount .Order.ForeignAmount}} to {{.Order.DestinationCountry}}){{end}}.</p>
{{if .Included}}<p>Included:</p><ul>{{range .Included}}<li>{{.}}</li>{{end}}</ul>{{else}}<p>No documents could be retrieved for this order.</p>{{end}}
{{if .Skipped}}<p>Not included:</p><ul>{{range .Skipped}}<li>{{.}}</li>{{end}}</ul>{{end}}
</body></html>`))

type opsA2EmailData struct {
	OrderID     string
	Order       *domain.Order
	Sender      *domain.Sender
	Beneficiary *domain.Beneficiary
	Document    *domain.Document
	Errors      []string
}

type partnerEmailData struct {
	OrderID  string
	Order    *domain.Order
	Included []string
	Skipped  []string
}

func renderEmail(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s email: %w", t.Name(), err)
	}
	return buf.String(), nil
}
