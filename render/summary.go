package render

import (
	"fmt"

	"report-generator-service/compose"
)

// costSummaryPage draws the repair-cost rollup: per-room item tables with
// subtotals, then the report total. Rooms without costed problems are
// skipped entirely.
func (r *Renderer) costSummaryPage(data *compose.CostSummaryData) {
	s := &r.style
	pdf := r.pdf
	r.addPage()

	r.sectionTitle("Estimated Repair Costs")

	colDesc := s.ContentWidth() - 35
	colAmt := 35.0

	for _, room := range data.Summary.Rooms {
		if !room.HasCosts() {
			continue
		}

		// Keep a room block together when close to the page bottom.
		if pdf.GetY() > pageHeight-s.MarginBottom-60 {
			r.addPage()
		}

		pdf.SetFont(s.BodyFont, "B", s.BodySize)
		pdf.SetFillColor(s.Primary.R, s.Primary.G, s.Primary.B)
		pdf.SetTextColor(255, 255, 255)
		pdf.CellFormat(colDesc, 7, "  "+r.tr(room.RoomName), "", 0, "L", true, 0, "")
		pdf.CellFormat(colAmt, 7, "", "", 1, "R", true, 0, "")

		fill := false
		for _, item := range room.Items {
			if !item.HasEstimate {
				continue
			}
			if fill {
				pdf.SetFillColor(s.Background.R, s.Background.G, s.Background.B)
			} else {
				pdf.SetFillColor(255, 255, 255)
			}

			desc := item.Description
			if item.Manual {
				desc += " *"
			}
			pdf.SetFont(s.BodyFont, "", s.SmallSize)
			pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
			pdf.CellFormat(colDesc, 6, "  "+r.tr(desc), "", 0, "L", fill, 0, "")
			pdf.CellFormat(colAmt, 6, r.money.Format(item.Cost)+"  ", "", 1, "R", fill, 0, "")
			fill = !fill
		}

		pdf.SetFont(s.BodyFont, "B", s.SmallSize)
		pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
		pdf.CellFormat(colDesc, 6, "  Subtotal", "T", 0, "L", false, 0, "")
		pdf.CellFormat(colAmt, 6, r.money.Format(room.Subtotal)+"  ", "T", 1, "R", false, 0, "")
		pdf.Ln(3)
	}

	// Report total
	pdf.Ln(2)
	pdf.SetFont(s.TitleFont, "B", s.SubtitleSize-2)
	pdf.SetFillColor(s.Secondary.R, s.Secondary.G, s.Secondary.B)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(colDesc, 9, "  Total Estimated Cost", "", 0, "L", true, 0, "")
	pdf.CellFormat(colAmt, 9, r.money.Format(data.Summary.Total)+"  ", "", 1, "R", true, 0, "")

	pdf.Ln(3)
	pdf.SetFont(s.BodyFont, "I", s.SmallSize)
	pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
	if data.Summary.WithoutEstimate > 0 {
		pdf.CellFormat(0, 5, r.tr(fmt.Sprintf("%d finding(s) carry no cost estimate and are excluded from the totals.", data.Summary.WithoutEstimate)), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "* manually assessed cost", "", 1, "L", false, 0, "")
}

// signaturesPage draws the closing signature blocks.
func (r *Renderer) signaturesPage(data *compose.SignaturesData) {
	s := &r.style
	pdf := r.pdf
	r.addPage()

	r.sectionTitle("Signatures")

	pdf.SetFont(s.BodyFont, "", s.BodySize)
	pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
	pdf.MultiCell(s.ContentWidth(), 5, r.tr("The undersigned confirm that this report reflects the condition of the property as observed on the inspection date."), "", "L", false)

	lineW := (s.ContentWidth() - 20) / 2
	y := pdf.GetY() + 45
	leftX := s.MarginLeft
	rightX := s.MarginLeft + lineW + 20

	pdf.SetDrawColor(s.Text.R, s.Text.G, s.Text.B)
	pdf.SetLineWidth(0.3)
	pdf.Line(leftX, y, leftX+lineW, y)
	pdf.Line(rightX, y, rightX+lineW, y)

	pdf.SetFont(s.BodyFont, "", s.SmallSize)
	pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)

	inspector := data.InspectorName
	if inspector == "" {
		inspector = "Inspector"
	}
	client := data.ClientName
	if client == "" {
		client = "Client"
	}

	pdf.SetXY(leftX, y+2)
	pdf.CellFormat(lineW, 5, r.tr(inspector), "", 0, "C", false, 0, "")
	pdf.SetXY(rightX, y+2)
	pdf.CellFormat(lineW, 5, r.tr(client), "", 0, "C", false, 0, "")

	pdf.SetXY(leftX, y+7)
	pdf.CellFormat(lineW, 5, "Date", "", 0, "C", false, 0, "")
	pdf.SetXY(rightX, y+7)
	pdf.CellFormat(lineW, 5, "Date", "", 0, "C", false, 0, "")
}
