// Package pdf renders the printable documents (tax invoice, purchase order,
// delivery challan, quotation) on A4 with Maroto v2. All four share the same
// letterhead block and the en-IN digit grouping (12,34,567.89).
package pdf

import (
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/simindustries/bizdocs-api/internal/application/billing"
	"github.com/simindustries/bizdocs-api/internal/application/documents"
	"github.com/simindustries/bizdocs-api/internal/application/orders"
	"github.com/simindustries/bizdocs-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.InvoicePDFGenerator = (*Generator)(nil)
var _ orders.PurchaseOrderPDFGenerator = (*Generator)(nil)
var _ documents.ChallanPDFGenerator = (*Generator)(nil)
var _ documents.QuotationPDFGenerator = (*Generator)(nil)

// Generator renders every document type. Stateless and safe for concurrent use.
type Generator struct{}

// NewGenerator builds the generator.
func NewGenerator() *Generator { return &Generator{} }

func newDocument(title string, company entity.CompanyProfile) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(company.Name, true).
		Build()
	return maroto.New(cfg)
}

// letterheadRow: company block (left) and document title (right).
func letterheadRow(docTitle string, company entity.CompanyProfile) core.Row {
	addr := company.AddressLine1
	if company.AddressLine2 != "" {
		addr += ", " + company.AddressLine2
	}
	cityLine := company.City + " - " + company.Pincode + ", " + company.State
	return row.New(22).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(addr, props.Text{Size: 8, Top: 8, Color: colorGray}),
			text.New(cityLine, props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New("GSTIN: "+company.GstNumber+"   |   "+company.Phone, props.Text{
				Size: 8, Top: 16, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(docTitle, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 4,
			}),
		),
	)
}

// partyRow: the customer block with optional shipping override.
func partyRow(heading string, customer *entity.Customer, shippingOverride string) core.Row {
	address := customer.FullAddress()
	if shippingOverride != "" {
		address = shippingOverride
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New(heading, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(address, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func headerCell(label string, width int, a align.Type) core.Col {
	return col.New(width).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func cell(value string, width int, a align.Type) core.Col {
	return col.New(width).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

var inPrinter = message.NewPrinter(language.MustParse("en-IN"))

// formatINR renders an amount with Indian digit grouping and two decimals,
// e.g. 1234567.5 -> "12,34,567.50".
func formatINR(d decimal.Decimal) string {
	f, _ := d.Float64()
	return inPrinter.Sprint(number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// formatQty renders an integer with Indian digit grouping.
func formatQty(n int) string {
	return inPrinter.Sprint(number.Decimal(n))
}
