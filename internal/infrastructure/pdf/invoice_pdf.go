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

// RenderInvoice produces the GST tax invoice PDF.
func (g *Generator) RenderInvoice(inv *entity.Invoice, customer *entity.Customer, company entity.CompanyProfile) ([]byte, error) {
	m := newDocument("Tax Invoice "+inv.InvoiceNumber, company)

	m.AddRows(letterheadRow("TAX INVOICE", company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(invoiceMetaRow(inv))
	m.AddRows(partyRow("BILL TO", customer, ""))
	if inv.ShippingAddress != "" {
		m.AddRows(partyRow("SHIP TO", customer, inv.ShippingAddress))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(row.New(8).Add(
		headerCell("Sl", 1, align.Center),
		headerCell("Description", 5, align.Left),
		headerCell("HSN", 1, align.Center),
		headerCell("Qty", 1, align.Right),
		headerCell("Rate", 2, align.Right),
		headerCell("Amount", 2, align.Right),
	))
	for i, it := range inv.Items {
		m.AddRows(row.New(7).Add(
			cell(fmt.Sprintf("%d", i+1), 1, align.Center),
			cell(it.ItemDescription, 5, align.Left),
			cell(it.HsnCode, 1, align.Center),
			cell(formatQty(it.Quantity), 1, align.Right),
			cell(formatINR(it.UnitPrice), 2, align.Right),
			cell(formatINR(it.LineAmount), 2, align.Right),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range invoiceTotalsRows(inv) {
		m.AddRows(r)
	}

	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New(numwords.RupeesInWords(inv.GrandTotal), props.Text{
			Style: fontstyle.BoldItalic, Size: 8, Top: 3,
		}),
	)))
	m.AddRows(invoiceFooterRow(inv, company.Name))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate invoice: %w", err)
	}
	return doc.GetBytes(), nil
}

// invoiceMetaRow: number, date and order references.
func invoiceMetaRow(inv *entity.Invoice) core.Row {
	meta := func(label, value string, top float64) core.Component {
		return text.New(label+": "+value, props.Text{Size: 8, Top: top})
	}
	left := col.New(6).Add(
		meta("Invoice No", inv.InvoiceNumber, 1),
		meta("Invoice Date", inv.InvoiceDate.Format("02/01/2006"), 6),
	)
	right := col.New(6).Add(
		meta("PO No", inv.PoNumber, 1),
		meta("Order Ref", inv.InternalCode, 6),
	)
	return row.New(13).Add(left, right)
}

// invoiceTotalsRows: subtotal, split GST, freight, round-off, grand total.
func invoiceTotalsRows(inv *entity.Invoice) []core.Row {
	pair := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		color := (*props.Color)(nil)
		if bold {
			style = fontstyle.Bold
			color = colorPrimary
		}
		return row.New(6).Add(
			col.New(7),
			col.New(3).Add(text.New(label, props.Text{
				Style: style, Size: 9, Align: align.Right, Right: 2, Color: color,
			})),
			col.New(2).Add(text.New(value, props.Text{
				Style: style, Size: 9, Align: align.Right, Right: 1, Color: color,
			})),
		)
	}

	rows := []core.Row{
		pair("Subtotal:", formatINR(inv.TotalAmount), false),
	}
	if !inv.CgstPercent.IsZero() {
		rows = append(rows,
			pair(fmt.Sprintf("CGST @ %s%%:", inv.CgstPercent.String()), formatINR(inv.CgstAmount()), false),
			pair(fmt.Sprintf("SGST @ %s%%:", inv.SgstPercent.String()), formatINR(inv.SgstAmount()), false),
		)
	}
	if !inv.IgstPercent.IsZero() {
		rows = append(rows,
			pair(fmt.Sprintf("IGST @ %s%%:", inv.IgstPercent.String()), formatINR(inv.IgstAmount()), false))
	}
	if !inv.FreightAmount.IsZero() {
		rows = append(rows, pair("Freight:", formatINR(inv.FreightAmount), false))
	}
	rows = append(rows,
		pair("Round Off:", inv.RoundOff.StringFixed(2), false),
		pair("GRAND TOTAL:", formatINR(inv.GrandTotal), true),
	)
	return rows
}

// invoiceFooterRow: transport references and signature block.
func invoiceFooterRow(inv *entity.Invoice, companyName string) core.Row {
	refs := fmt.Sprintf("Vehicle: %s   |   DC No: %s   |   Your DC: %s",
		orDash(inv.VehicleNo), orDash(inv.SimDcNo), orDash(inv.YourDcNo))
	return row.New(24).Add(
		col.New(7).Add(
			text.New(refs, props.Text{Size: 7.5, Top: 2, Color: colorGray}),
			text.New(orDash(inv.Remarks), props.Text{Size: 7.5, Top: 7, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("For "+companyName, props.Text{
				Size: 8, Align: align.Right, Top: 2,
			}),
			text.New("Authorised Signatory", props.Text{
				Size: 8, Align: align.Right, Top: 18,
			}),
		),
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
