package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/simindustries/bizdocs-api/internal/domain/entity"
)

// RenderPurchaseOrder produces the order confirmation PDF.
func (g *Generator) RenderPurchaseOrder(po *entity.PurchaseOrder, customer *entity.Customer, company entity.CompanyProfile) ([]byte, error) {
	m := newDocument("Purchase Order "+po.InternalCode, company)

	m.AddRows(letterheadRow("PURCHASE ORDER", company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(poMetaRow(po))
	m.AddRows(partyRow("CUSTOMER", customer, ""))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(row.New(8).Add(
		headerCell("Sl", 1, align.Center),
		headerCell("Description", 5, align.Left),
		headerCell("HSN", 1, align.Center),
		headerCell("Qty", 1, align.Right),
		headerCell("Rate", 2, align.Right),
		headerCell("Amount", 2, align.Right),
	))
	for _, it := range po.Items {
		if it.IsDeleted {
			continue
		}
		m.AddRows(row.New(7).Add(
			cell(fmt.Sprintf("%d", it.LineNumber), 1, align.Center),
			cell(it.ItemDescription, 5, align.Left),
			cell(it.HsnCode, 1, align.Center),
			cell(formatQty(it.Quantity), 1, align.Right),
			cell(formatINR(it.UnitPrice), 2, align.Right),
			cell(formatINR(it.LineTotal), 2, align.Right),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(poTotalsRow(po))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate purchase order: %w", err)
	}
	return doc.GetBytes(), nil
}

func poMetaRow(po *entity.PurchaseOrder) core.Row {
	meta := func(label, value string, top float64) core.Component {
		return text.New(label+": "+value, props.Text{Size: 8, Top: top})
	}
	dates := po.PoDate.Format("02/01/2006")
	left := col.New(6).Add(
		meta("Order Ref", po.InternalCode, 1),
		meta("Customer PO", po.PoNumber, 6),
	)
	right := col.New(6).Add(
		meta("PO Date", dates, 1),
		meta("GST", fmt.Sprintf("CGST %s%% / SGST %s%% / IGST %s%%",
			po.CgstPercent.String(), po.SgstPercent.String(), po.IgstPercent.String()), 6),
	)
	return row.New(13).Add(left, right)
}

func poTotalsRow(po *entity.PurchaseOrder) core.Row {
	return row.New(8).Add(
		col.New(7),
		col.New(3).Add(text.New("ORDER VALUE:", props.Text{
			Size: 10, Align: align.Right, Right: 2, Color: colorPrimary,
		})),
		col.New(2).Add(text.New(formatINR(po.PoAmount), props.Text{
			Size: 10, Align: align.Right, Right: 1, Color: colorPrimary,
		})),
	)
}
