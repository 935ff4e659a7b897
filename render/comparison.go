package render

import (
	"fmt"

	"report-generator-service/compose"
	"report-generator-service/models"
	"report-generator-service/styles"
)

// compareRoomPage draws one before/after comparison page: two labeled
// columns with one photo pair per row.
func (r *Renderer) compareRoomPage(data *compose.CompareRoomData) {
	s := &r.style
	pdf := r.pdf
	r.addPage()

	r.sectionTitle(data.Title)

	if data.Note != "" {
		pdf.SetFont(s.BodyFont, "I", s.SmallSize)
		pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
		pdf.CellFormat(0, 5, r.tr(data.Note), "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}

	colGap := 6.0
	colW := (s.ContentWidth() - colGap) / 2
	leftX := s.MarginLeft
	rightX := s.MarginLeft + colW + colGap

	// Column labels
	pdf.SetFont(s.BodyFont, "B", s.BodySize)
	pdf.SetTextColor(s.Primary.R, s.Primary.G, s.Primary.B)
	pdf.SetX(leftX)
	pdf.CellFormat(colW, 6, "Before", "", 0, "C", false, 0, "")
	pdf.SetX(rightX)
	pdf.CellFormat(colW, 6, "After", "", 1, "C", false, 0, "")

	if len(data.Pairs) == 0 {
		return
	}

	top := pdf.GetY() + 2
	rowGap := 4.0
	avail := pageHeight - top - s.MarginBottom - s.FooterHeight
	rowH := (avail - rowGap*float64(len(data.Pairs)-1)) / float64(len(data.Pairs))

	for i, pair := range data.Pairs {
		y := top + float64(i)*(rowH+rowGap)

		if pair.BeforeAsset != nil {
			r.drawAsset(pair.BeforeAsset, leftX, y, colW, rowH, "", false, "")
		} else {
			r.emptySlot(leftX, y, colW, rowH, "No photo")
		}
		if pair.AfterAsset != nil {
			r.drawAsset(pair.AfterAsset, rightX, y, colW, rowH, "", false, "")
		} else {
			r.emptySlot(rightX, y, colW, rowH, "No photo")
		}
	}

	pdf.SetY(top + float64(len(data.Pairs))*(rowH+rowGap))
}

// emptySlot marks a missing side of a photo pair.
func (r *Renderer) emptySlot(x, y, w, h float64, label string) {
	s := &r.style
	pdf := r.pdf

	pdf.SetDrawColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
	pdf.Rect(x, y, w, h, "D")
	pdf.SetFont(s.BodyFont, "I", s.SmallSize)
	pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
	pdf.SetXY(x, y+h/2-3)
	pdf.CellFormat(w, 6, r.tr(label), "", 0, "C", false, 0, "")
}

// differencesPage draws the per-room delta between the two inspections.
func (r *Renderer) differencesPage(data *compose.DifferencesData) {
	s := &r.style
	pdf := r.pdf
	r.addPage()

	r.sectionTitle(data.RoomName + " - Changes")

	r.diffGroup("Resolved since the first inspection", s.Success, data.Resolved)
	r.diffGroup("Still present", s.Warning, data.Persisting)
	r.diffGroup("New findings", s.Danger, data.New)

	if len(data.Resolved) == 0 && len(data.Persisting) == 0 && len(data.New) == 0 {
		pdf.SetFont(s.BodyFont, "I", s.BodySize)
		pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
		pdf.CellFormat(0, 6, "No recorded changes for this room.", "", 1, "L", false, 0, "")
	}
}

// diffGroup draws one labeled group of problems with a colored marker bar.
func (r *Renderer) diffGroup(label string, color styles.RGB, problems []models.Problem) {
	if len(problems) == 0 {
		return
	}
	s := &r.style
	pdf := r.pdf

	pdf.SetFont(s.BodyFont, "B", s.BodySize)
	pdf.SetTextColor(color.R, color.G, color.B)
	pdf.CellFormat(0, 6, r.tr(fmt.Sprintf("%s (%d)", label, len(problems))), "", 1, "L", false, 0, "")

	pdf.SetFont(s.BodyFont, "", s.SmallSize)
	pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
	for _, p := range problems {
		line := p.Description
		if p.Location != "" {
			line += " (" + p.Location + ")"
		}
		pdf.SetX(s.MarginLeft + 4)
		pdf.MultiCell(s.ContentWidth()-4, 4.5, r.tr(line), "", "L", false)
	}
	pdf.Ln(3)
}
