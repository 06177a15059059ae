package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/simindustries/bizdocs-api/internal/domain/entity"
	"github.com/simindustries/bizdocs-api/pkg/numwords"
)

// RenderQuotation produces the quotation PDF.
func (g *Generator) RenderQuotation(q *entity.Quotation, customer *entity.Customer, company entity.CompanyProfile) ([]byte, error) {
	m := newDocument("Quotation "+q.QuotationNo, company)

	m.AddRows(letterheadRow("QUOTATION", company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	meta := func(label, value string, top float64) core.Component {
		return text.New(label+": "+value, props.Text{Size: 8, Top: top})
	}
	validUntil := "-"
	if q.ValidUntil != nil {
		validUntil = q.ValidUntil.Format("02/01/2006")
	}
	m.AddRows(row.New(13).Add(
		col.New(6).Add(
			meta("Quotation No", q.QuotationNo, 1),
			meta("Date", q.Date.Format("02/01/2006"), 6),
		),
		col.New(6).Add(
			meta("Valid Until", validUntil, 1),
		),
	))
	m.AddRows(partyRow("TO", customer, ""))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(row.New(8).Add(
		headerCell("Sl", 1, align.Center),
		headerCell("Description", 6, align.Left),
		headerCell("Qty", 1, align.Right),
		headerCell("Rate", 2, align.Right),
		headerCell("Amount", 2, align.Right),
	))
	for _, it := range q.Items {
		if it.IsDeleted {
			continue
		}
		m.AddRows(row.New(7).Add(
			cell(fmt.Sprintf("%d", it.SlNo), 1, align.Center),
			cell(it.Description, 6, align.Left),
			cell(formatQty(it.Quantity), 1, align.Right),
			cell(formatINR(it.UnitPrice), 2, align.Right),
			cell(formatINR(it.TotalAmount), 2, align.Right),
		))
	}

	total := q.TotalAmount()
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(7),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Color: colorPrimary,
		})),
		col.New(2).Add(text.New(formatINR(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Color: colorPrimary,
		})),
	))
	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New(numwords.RupeesInWords(total), props.Text{
			Style: fontstyle.BoldItalic, Size: 8, Top: 3,
		}),
	)))
	m.AddRows(row.New(20).Add(
		col.New(12).Add(
			text.New("We hope you find our offer acceptable and look forward to your order.", props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
			text.New("For "+company.Name, props.Text{Size: 8, Align: align.Right, Top: 6}),
			text.New("Authorised Signatory", props.Text{Size: 8, Align: align.Right, Top: 16}),
		),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate quotation: %w", err)
	}
	return doc.GetBytes(), nil
}
