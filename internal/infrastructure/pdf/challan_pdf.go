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

// RenderChallan produces the delivery challan PDF. Challans carry no prices,
// only quantities and units.
func (g *Generator) RenderChallan(dc *entity.DeliveryChallan, customer *entity.Customer, company entity.CompanyProfile) ([]byte, error) {
	m := newDocument("Delivery Challan "+dc.DcNumber, company)

	m.AddRows(letterheadRow("DELIVERY CHALLAN", company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	meta := func(label, value string, top float64) core.Component {
		return text.New(label+": "+value, props.Text{Size: 8, Top: top})
	}
	m.AddRows(row.New(13).Add(
		col.New(6).Add(
			meta("Challan No", dc.DcNumber, 1),
			meta("Date", dc.DcDate.Format("02/01/2006"), 6),
		),
		col.New(6).Add(
			meta("Vehicle No", orDash(dc.VehicleNo), 1),
			meta("Deliver To", orDash(dc.TargetCompany), 6),
		),
	))
	m.AddRows(partyRow("CONSIGNEE", customer, ""))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(row.New(8).Add(
		headerCell("Sl", 1, align.Center),
		headerCell("Description", 6, align.Left),
		headerCell("Qty", 2, align.Right),
		headerCell("Unit", 1, align.Center),
		headerCell("Remarks", 2, align.Left),
	))
	for _, it := range dc.Items {
		if it.IsDeleted {
			continue
		}
		m.AddRows(row.New(7).Add(
			cell(fmt.Sprintf("%d", it.SlNo), 1, align.Center),
			cell(it.Description, 6, align.Left),
			cell(formatQty(it.Quantity), 2, align.Right),
			cell(it.Unit, 1, align.Center),
			cell(it.Remarks, 2, align.Left),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(22).Add(
		col.New(6).Add(
			text.New("Received the above goods in good condition", props.Text{
				Size: 8, Top: 4, Color: colorGray,
			}),
			text.New("Receiver's Signature", props.Text{Size: 8, Top: 16}),
		),
		col.New(6).Add(
			text.New("For "+company.Name, props.Text{Size: 8, Align: align.Right, Top: 4}),
			text.New("Authorised Signatory", props.Text{Size: 8, Align: align.Right, Top: 16}),
		),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate challan: %w", err)
	}
	return doc.GetBytes(), nil
}
