package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"report-generator-service/assets"
	"report-generator-service/compose"
	"report-generator-service/models"
)

// A4 dimensions in millimeters.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
)

const dateLayout = "January 2, 2006"

// coverPage draws the cover without header or footer, Pulse-style: accent
// bar, branding, title, and a property info box.
func (r *Renderer) coverPage(data *compose.CoverData) {
	s := &r.style
	pdf := r.pdf

	r.onCover = true
	pdf.AddPage()

	// Top accent bar
	pdf.SetFillColor(s.Primary.R, s.Primary.G, s.Primary.B)
	pdf.Rect(0, 0, pageWidth, s.AccentBar, "F")

	// Branding area
	pdf.SetY(45)
	if r.logoName != "" {
		opts := fpdf.ImageOptions{ImageType: r.logoType, ReadDpi: true}
		pdf.ImageOptions(r.logoName, pageWidth/2-14, 42, 28, 0, false, opts, 0, "")
		pdf.SetY(78)
	}
	if r.branding.CompanyName != "" {
		pdf.SetFont(s.TitleFont, "B", s.SubtitleSize)
		pdf.SetTextColor(s.Primary.R, s.Primary.G, s.Primary.B)
		pdf.CellFormat(0, 10, r.tr(r.branding.CompanyName), "", 1, "C", false, 0, "")
	}

	// Main title
	pdf.SetY(105)
	pdf.SetFont(s.TitleFont, "B", s.TitleSize)
	pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
	pdf.CellFormat(0, 12, r.tr(data.Subtitle), "", 1, "C", false, 0, "")

	// Property info box
	boxX := 35.0
	boxW := pageWidth - 70
	boxY := 135.0
	boxH := 56.0
	pdf.SetFillColor(s.Background.R, s.Background.G, s.Background.B)
	pdf.SetDrawColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
	pdf.RoundedRect(boxX, boxY, boxW, boxH, 3, "1234", "FD")

	pdf.SetY(boxY + 8)
	pdf.SetFont(s.BodyFont, "B", s.SmallSize)
	pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
	pdf.CellFormat(0, 6, "PROPERTY", "", 1, "C", false, 0, "")

	pdf.SetFont(s.TitleFont, "B", s.SubtitleSize)
	pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
	pdf.CellFormat(0, 9, r.tr(data.Property.Name), "", 1, "C", false, 0, "")

	pdf.SetFont(s.BodyFont, "", s.BodySize)
	pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
	pdf.CellFormat(0, 6, r.tr(data.Property.FullAddress()), "", 1, "C", false, 0, "")
	if data.Property.Type != "" || data.Property.Area > 0 {
		detail := data.Property.Type
		if data.Property.Area > 0 {
			if detail != "" {
				detail += ", "
			}
			detail += fmt.Sprintf("%.0f m2", data.Property.Area)
		}
		pdf.CellFormat(0, 6, r.tr(detail), "", 1, "C", false, 0, "")
	}

	// Inspection metadata
	pdf.SetY(205)
	pdf.SetFont(s.BodyFont, "B", s.SmallSize)
	pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
	pdf.CellFormat(0, 6, "INSPECTION", "", 1, "C", false, 0, "")

	pdf.SetFont(s.BodyFont, "", s.BodySize)
	pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
	pdf.CellFormat(0, 7, r.tr(inspectionLine(&data.Inspection)), "", 1, "C", false, 0, "")
	if data.BeforeAfter != nil {
		pdf.CellFormat(0, 7, r.tr("Compared with: "+inspectionLine(data.BeforeAfter)), "", 1, "C", false, 0, "")
	}
	if data.Inspection.InspectorName != "" {
		pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
		pdf.CellFormat(0, 6, r.tr("Inspector: "+data.Inspection.InspectorName), "", 1, "C", false, 0, "")
	}

	// Generation timestamp at the bottom
	pdf.SetY(pageHeight - 40)
	pdf.SetFont(s.BodyFont, "", s.SmallSize)
	pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().Format(dateLayout)), "", 1, "C", false, 0, "")

	// Bottom accent bar
	pdf.SetFillColor(s.Primary.R, s.Primary.G, s.Primary.B)
	pdf.Rect(0, pageHeight-s.AccentBar, pageWidth, s.AccentBar, "F")
}

// inspectionLine summarizes an inspection for the cover.
func inspectionLine(info *models.InspectionInfo) string {
	line := info.Type
	if line == "" {
		line = "Inspection"
	}
	date := info.ScheduledAt
	if date.IsZero() {
		date = info.CreatedAt
	}
	if !date.IsZero() {
		line += " - " + date.Format(dateLayout)
	}
	return line
}

// sectionTitle draws a section heading with the secondary-color underline.
func (r *Renderer) sectionTitle(title string) {
	s := &r.style
	pdf := r.pdf

	pdf.SetFont(s.TitleFont, "B", s.SubtitleSize)
	pdf.SetTextColor(s.Primary.R, s.Primary.G, s.Primary.B)
	pdf.CellFormat(0, 9, r.tr(title), "", 1, "L", false, 0, "")

	y := pdf.GetY()
	pdf.SetDrawColor(s.Secondary.R, s.Secondary.G, s.Secondary.B)
	pdf.SetLineWidth(0.6)
	pdf.Line(s.MarginLeft, y, s.MarginLeft+40, y)
	pdf.Ln(4)
}

// bodyText writes a flowing paragraph in the body style.
func (r *Renderer) bodyText(text string) {
	s := &r.style
	r.pdf.SetFont(s.BodyFont, "", s.BodySize)
	r.pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
	r.pdf.MultiCell(s.ContentWidth(), 5, r.tr(text), "", "L", false)
	r.pdf.Ln(2)
}

// infoPage draws the informational/disclaimer page.
func (r *Renderer) infoPage(data *compose.InfoData) {
	r.addPage()
	r.sectionTitle(data.Heading)
	for _, p := range data.Paragraphs {
		r.bodyText(p)
	}
}

// technicalPage draws one technical-analysis block.
func (r *Renderer) technicalPage(data *compose.TechnicalData) {
	s := &r.style
	pdf := r.pdf
	r.addPage()

	switch data.Block {
	case compose.BlockSummary:
		r.sectionTitle("Executive Summary")
		if data.Text != "" {
			r.bodyText(data.Text)
		}
		if data.Extra != "" {
			pdf.Ln(4)
			r.sectionTitle("General Assessment")
			r.bodyText(data.Extra)
		}

	case compose.BlockPropertyMap:
		r.sectionTitle("Property Location")
		if data.Text != "" {
			r.bodyText(data.Text)
		}
		name := r.nextImageName()
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data.Image))
		w := s.ContentWidth()
		pdf.ImageOptions(name, s.MarginLeft, pdf.GetY()+2, w, 0, false, opts, 0, "")

	case compose.BlockPriorComparison:
		r.sectionTitle("Comparison With Prior Inspection")
		pdf.SetFont(s.BodyFont, "", s.SmallSize)
		pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
		pdf.CellFormat(0, 5, r.tr("Prior report: "+data.PriorID), "", 1, "L", false, 0, "")
		pdf.Ln(2)
		if data.Text != "" {
			r.bodyText(data.Text)
		}

	case compose.BlockRecommendations:
		r.sectionTitle("Recommendations")
		pdf.SetFont(s.BodyFont, "", s.BodySize)
		pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
		for i, item := range data.Items {
			pdf.MultiCell(s.ContentWidth(), 5, r.tr(fmt.Sprintf("%d. %s", i+1, item)), "", "L", false)
			pdf.Ln(1)
		}
	}
}

// roomPage draws one room photo page: title, detail band (first chunk only),
// then the photo grid.
func (r *Renderer) roomPage(data *compose.RoomData) {
	r.addPage()

	r.sectionTitle(data.Title)

	if data.ShowDetails {
		if data.AISummary != "" {
			r.bodyText(data.AISummary)
		}
		if len(data.Problems) > 0 {
			r.problemsTable(data.Problems)
		}
		if len(data.Checklist) > 0 {
			r.checklistBlock(data.Checklist)
		}
	}

	r.photoGrid(data.Assets, data.Chunk.Photos)
}

// photoGrid lays assets out on the configured grid starting below the
// current Y position.
func (r *Renderer) photoGrid(imgs []assets.ResolvedAsset, photos []models.Photo) {
	if len(imgs) == 0 {
		return
	}
	s := &r.style
	pdf := r.pdf
	grid := s.PhotoGrid

	top := pdf.GetY() + 3
	for i := range imgs {
		col := i % grid.Cols
		row := i / grid.Cols
		x := s.MarginLeft + float64(col)*(grid.CellW+grid.Gutter)
		y := top + float64(row)*(grid.CellH+grid.Gutter)

		caption := ""
		if i < len(photos) && len(photos[i].Problems) > 0 {
			caption = worstSeverity(photos[i].Problems).Label()
		}
		r.drawAsset(&imgs[i], x, y, grid.CellW, grid.CellH, caption, i < len(photos) && len(photos[i].Problems) > 0, photoSeverity(photos, i))
	}
	pdf.SetY(top + float64((len(imgs)+grid.Cols-1)/grid.Cols)*(grid.CellH+grid.Gutter))
}

func photoSeverity(photos []models.Photo, i int) models.Severity {
	if i >= len(photos) || len(photos[i].Problems) == 0 {
		return ""
	}
	return worstSeverity(photos[i].Problems)
}

// worstSeverity returns the highest-ranked severity among the problems.
func worstSeverity(problems []models.Problem) models.Severity {
	worst := problems[0].Severity
	for _, p := range problems[1:] {
		if p.Severity.Rank() > worst.Rank() {
			worst = p.Severity
		}
	}
	return worst
}

// drawAsset embeds one resolved photo fitted into its grid cell, or a
// bordered "image unavailable" box for placeholder substitutions. A severity
// badge is drawn over photos that carry problems.
func (r *Renderer) drawAsset(asset *assets.ResolvedAsset, x, y, w, h float64, badge string, hasBadge bool, sev models.Severity) {
	s := &r.style
	pdf := r.pdf

	if !asset.Resolved {
		pdf.SetFillColor(s.Background.R, s.Background.G, s.Background.B)
		pdf.SetDrawColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
		pdf.Rect(x, y, w, h, "FD")
		pdf.SetFont(s.BodyFont, "I", s.SmallSize)
		pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
		pdf.SetXY(x, y+h/2-3)
		pdf.CellFormat(w, 6, "Image unavailable", "", 0, "C", false, 0, "")
		return
	}

	imgType := "JPG"
	if asset.MIME == assets.MIMEPNG {
		imgType = "PNG"
	}
	name := r.nextImageName()
	opts := fpdf.ImageOptions{ImageType: imgType}
	info := pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(asset.Data))
	if pdf.Err() {
		return
	}

	// Fit into the cell preserving aspect ratio, centered.
	iw, ih := info.Width(), info.Height()
	scale := w / iw
	if ih*scale > h {
		scale = h / ih
	}
	dw, dh := iw*scale, ih*scale
	dx := x + (w-dw)/2
	dy := y + (h-dh)/2
	pdf.ImageOptions(name, dx, dy, dw, dh, false, opts, 0, "")

	if hasBadge && badge != "" {
		c := s.SeverityColor(sev)
		pdf.SetFillColor(c.R, c.G, c.B)
		pdf.Rect(dx, dy, 18, 5, "F")
		pdf.SetFont(s.BodyFont, "B", s.SmallSize-1)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetXY(dx, dy)
		pdf.CellFormat(18, 5, r.tr(badge), "", 0, "C", false, 0, "")
	}
}

// nextImageName returns a unique registration name for an embedded image.
func (r *Renderer) nextImageName() string {
	r.imageSeq++
	return fmt.Sprintf("img-%d", r.imageSeq)
}

// problemsTable draws the room's findings as a compact table with
// severity-colored markers.
func (r *Renderer) problemsTable(problems []models.Problem) {
	s := &r.style
	pdf := r.pdf

	pdf.SetFont(s.BodyFont, "B", s.BodySize)
	pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
	pdf.CellFormat(0, 6, fmt.Sprintf("Findings (%d)", len(problems)), "", 1, "L", false, 0, "")

	for _, p := range problems {
		c := s.SeverityColor(p.Severity)
		y := pdf.GetY()
		pdf.SetFillColor(c.R, c.G, c.B)
		pdf.Rect(s.MarginLeft, y+1, 2, 3.5, "F")

		pdf.SetX(s.MarginLeft + 4)
		pdf.SetFont(s.BodyFont, "", s.SmallSize)
		pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
		line := p.Description
		if p.Location != "" {
			line += " (" + p.Location + ")"
		}
		pdf.MultiCell(s.ContentWidth()-4, 4.5, r.tr(line), "", "L", false)

		if p.SuggestedAction != "" {
			pdf.SetX(s.MarginLeft + 4)
			pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)
			pdf.MultiCell(s.ContentWidth()-4, 4, r.tr("Suggested: "+p.SuggestedAction), "", "L", false)
		}
		pdf.Ln(0.5)
	}
	pdf.Ln(1.5)
}

// checklistBlock draws the condition checklist in two columns.
func (r *Renderer) checklistBlock(items []compose.ChecklistItem) {
	s := &r.style
	pdf := r.pdf

	pdf.SetFont(s.BodyFont, "B", s.BodySize)
	pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
	pdf.CellFormat(0, 6, "Checklist", "", 1, "L", false, 0, "")

	colW := s.ContentWidth() / 2
	half := (len(items) + 1) / 2
	top := pdf.GetY()

	for i, item := range items {
		x := s.MarginLeft
		y := top + float64(i%half)*5
		if i >= half {
			x += colW
		}
		pdf.SetXY(x, y)

		mark := "OK"
		c := s.Success
		if item.Flagged {
			mark = "!"
			c = s.Danger
		}
		pdf.SetFont(s.BodyFont, "B", s.SmallSize)
		pdf.SetTextColor(c.R, c.G, c.B)
		pdf.CellFormat(8, 5, mark, "", 0, "L", false, 0, "")

		pdf.SetFont(s.BodyFont, "", s.SmallSize)
		pdf.SetTextColor(s.Text.R, s.Text.G, s.Text.B)
		pdf.CellFormat(colW-8, 5, r.tr(item.Label), "", 0, "L", false, 0, "")
	}

	pdf.SetY(top + float64(half)*5 + 2)
}
