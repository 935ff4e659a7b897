// Package render walks a composed page plan and emits the final PDF document.
// All layout comes from the derived style sheet; the renderer itself holds no
// policy about which sections exist.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"report-generator-service/compose"
	"report-generator-service/costs"
	"report-generator-service/metrics"
	"report-generator-service/models"
	"report-generator-service/styles"
)

// StreamError is the fatal error raised when the document cannot be written.
// Unlike asset fetch failures it is not recoverable.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("rendering document stream: %v", e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// Renderer emits one document from a composed plan.
type Renderer struct {
	style    styles.StyleSheet
	branding models.TemplateBranding
	money    *costs.Formatter

	pdf       *fpdf.Fpdf
	tr        func(string) string
	onCover   bool
	logoName  string
	logoType  string
	imageSeq  int
	watermark string
}

// NewRenderer builds a renderer for one generation request.
func NewRenderer(style styles.StyleSheet, branding models.TemplateBranding, money *costs.Formatter) *Renderer {
	return &Renderer{
		style:    style,
		branding: branding,
		money:    money,
	}
}

// Render walks the plan in order and returns the document bytes.
func (r *Renderer) Render(plan []compose.Page) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	r.pdf = pdf
	r.tr = pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetMargins(r.style.MarginLeft, r.style.MarginTop, r.style.MarginRight)
	pdf.SetAutoPageBreak(true, r.style.MarginBottom)
	pdf.AliasNbPages("")

	if r.branding.ShowWatermark && r.branding.CompanyName != "" {
		r.watermark = r.branding.CompanyName
	}
	r.registerLogo()

	pdf.SetHeaderFunc(func() {
		r.pageHeader()
	})
	pdf.SetFooterFunc(func() {
		r.pageFooter()
	})

	for _, page := range plan {
		switch page.Kind {
		case compose.SectionCover:
			r.coverPage(page.Cover)
		case compose.SectionInfo:
			r.infoPage(page.Info)
		case compose.SectionTechnical:
			r.technicalPage(page.Technical)
		case compose.SectionRoom:
			if page.Compare != nil {
				r.compareRoomPage(page.Compare)
			} else {
				r.roomPage(page.Room)
			}
		case compose.SectionDifferences:
			r.differencesPage(page.Differences)
		case compose.SectionCostSummary:
			r.costSummaryPage(page.Costs)
		case compose.SectionSignatures:
			r.signaturesPage(page.Signatures)
		}
		metrics.PagesRendered.Inc()
	}

	if pdf.Err() {
		return nil, &StreamError{Err: pdf.Error()}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &StreamError{Err: err}
	}
	return buf.Bytes(), nil
}

// addPage starts a content page (header and footer apply).
func (r *Renderer) addPage() {
	r.onCover = false
	r.pdf.AddPage()
	r.pdf.SetY(r.style.ContentTop())
}

// pageHeader draws the repeating header and, when enabled, the watermark.
// The cover page carries neither.
func (r *Renderer) pageHeader() {
	if r.onCover {
		return
	}
	r.stampWatermark()

	s := &r.style
	if s.HeaderStyle == models.HeaderStyleNone {
		return
	}

	pdf := r.pdf
	y := s.MarginTop - 8
	if y < 4 {
		y = 4
	}

	switch s.HeaderStyle {
	case models.HeaderStyleFull:
		r.headerLogo(y)
		r.headerText(y)
		pdf.SetDrawColor(s.Primary.R, s.Primary.G, s.Primary.B)
		pdf.SetLineWidth(0.4)
		lineY := y + 9
		pdf.Line(s.MarginLeft, lineY, pageWidth-s.MarginRight, lineY)
	case models.HeaderStyleLogoOnly:
		r.headerLogo(y)
	case models.HeaderStyleMinimal:
		r.headerText(y)
	}

	pdf.SetY(s.ContentTop())
}

// headerText places the company name at the configured header position.
func (r *Renderer) headerText(y float64) {
	s := &r.style
	name := r.branding.CompanyName
	if name == "" {
		name = "Inspection Report"
	}

	pdf := r.pdf
	pdf.SetFont(s.TitleFont, "B", s.BodySize)
	pdf.SetTextColor(s.Primary.R, s.Primary.G, s.Primary.B)
	pdf.SetXY(s.MarginLeft, y)

	align := "L"
	switch s.HeaderPosition {
	case models.HeaderPositionCenter:
		align = "C"
	case models.HeaderPositionRight:
		align = "R"
	}
	pdf.CellFormat(s.ContentWidth(), 8, r.tr(name), "", 0, align, false, 0, "")
}

// headerLogo draws the branding logo opposite the header text. Logo-only
// headers honor the configured position themselves.
func (r *Renderer) headerLogo(y float64) {
	if r.logoName == "" {
		return
	}
	s := &r.style

	x := pageWidth - s.MarginRight - 16
	if r.style.HeaderStyle == models.HeaderStyleLogoOnly {
		switch s.HeaderPosition {
		case models.HeaderPositionLeft:
			x = s.MarginLeft
		case models.HeaderPositionCenter:
			x = pageWidth/2 - 8
		}
	}

	opts := fpdf.ImageOptions{ImageType: r.logoType, ReadDpi: true}
	r.pdf.ImageOptions(r.logoName, x, y, 16, 0, false, opts, 0, "")
}

// pageFooter draws the footer text and page number.
func (r *Renderer) pageFooter() {
	if r.onCover {
		return
	}
	s := &r.style
	pdf := r.pdf

	pdf.SetY(-s.FooterHeight - 3)
	pdf.SetFont(s.BodyFont, "", s.SmallSize)
	pdf.SetTextColor(s.TextLight.R, s.TextLight.G, s.TextLight.B)

	footer := r.branding.FooterText
	if footer == "" && r.branding.CompanyEmail != "" {
		footer = r.branding.CompanyEmail
	}
	pdf.CellFormat(s.ContentWidth()/2, 6, r.tr(footer), "", 0, "L", false, 0, "")

	if s.ShowPageNumber {
		pdf.CellFormat(s.ContentWidth()/2, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	}
}

// stampWatermark draws a translucent diagonal company-name watermark across
// the page body.
func (r *Renderer) stampWatermark() {
	if r.watermark == "" {
		return
	}
	pdf := r.pdf
	s := &r.style

	pdf.SetAlpha(0.08, "Normal")
	pdf.SetFont(s.TitleFont, "B", 52)
	pdf.SetTextColor(s.Primary.R, s.Primary.G, s.Primary.B)

	pdf.TransformBegin()
	pdf.TransformRotate(45, pageWidth/2, pageHeight/2)
	w := pdf.GetStringWidth(r.watermark)
	pdf.Text(pageWidth/2-w/2, pageHeight/2, r.tr(r.watermark))
	pdf.TransformEnd()

	pdf.SetAlpha(1, "Normal")
}

// registerLogo decodes the branding logo data URI and registers it with the
// document. A malformed logo is skipped rather than failing generation.
func (r *Renderer) registerLogo() {
	data, imgType, err := decodeDataURI(r.branding.Logo)
	if err != nil {
		return
	}
	name := "branding-logo"
	opts := fpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if r.pdf.Err() {
		// Unparseable image data: clear the error and render without a logo.
		r.pdf.ClearError()
		return
	}
	r.logoName = name
	r.logoType = imgType
}

// decodeDataURI splits a data URI into raw bytes and an fpdf image type.
func decodeDataURI(uri string) ([]byte, string, error) {
	if uri == "" {
		return nil, "", fmt.Errorf("empty data URI")
	}
	const prefix = "data:"
	if !strings.HasPrefix(uri, prefix) {
		return nil, "", fmt.Errorf("not a data URI")
	}
	rest := uri[len(prefix):]
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, "", fmt.Errorf("data URI is not base64-encoded")
	}

	var imgType string
	switch rest[:sep] {
	case "image/png":
		imgType = "PNG"
	case "image/jpeg", "image/jpg":
		imgType = "JPG"
	case "image/gif":
		imgType = "GIF"
	default:
		return nil, "", fmt.Errorf("unsupported image type %q", rest[:sep])
	}

	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return nil, "", fmt.Errorf("decoding data URI: %w", err)
	}
	return data, imgType, nil
}
