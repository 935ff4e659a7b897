// Package styles derives the typed style sheet consumed by rendering from a
// resolved template configuration. Derivation is a pure transform: no I/O, no
// randomness, and configs that differ only in colors produce sheets that
// differ only in color fields.
package styles

import (
	"strconv"
	"strings"

	"report-generator-service/models"
)

// RGB is a color triple in the 0-255 range.
type RGB struct {
	R, G, B int
}

// Grid describes the photo grid for a room page.
type Grid struct {
	Cols     int
	Rows     int
	CellW    float64 // mm
	CellH    float64 // mm
	Gutter   float64 // mm between cells
	Capacity int
}

// StyleSheet is everything the renderer needs to draw a page: palette, fonts,
// and fixed layout metrics. All linear measurements are millimeters on A4.
type StyleSheet struct {
	// Palette
	Primary    RGB
	Secondary  RGB
	Background RGB
	Text       RGB
	TextLight  RGB
	Success    RGB
	Warning    RGB
	Danger     RGB

	// Fonts (fpdf core font names)
	TitleFont    string
	BodyFont     string
	TitleSize    float64
	SubtitleSize float64
	BodySize     float64
	SmallSize    float64

	// Page metrics
	MarginLeft   float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	HeaderHeight float64
	FooterHeight float64
	AccentBar    float64

	// Header behavior
	HeaderStyle    string
	HeaderPosition string
	ShowPageNumber bool

	// Photo grid for the configured layout
	PhotoGrid Grid
}

// A4 page dimensions in millimeters.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
)

// coreFonts maps configured font family names onto the fpdf core fonts.
// Unknown families fall back to Helvetica so a misspelled font never breaks
// rendering.
var coreFonts = map[string]string{
	"helvetica": "Helvetica",
	"arial":     "Helvetica",
	"times":     "Times",
	"georgia":   "Times",
	"courier":   "Courier",
}

// Derive builds the style sheet for a resolved template configuration.
func Derive(cfg models.TemplateConfig) StyleSheet {
	s := StyleSheet{
		Primary:    parseHex(cfg.Colors.Primary),
		Secondary:  parseHex(cfg.Colors.Secondary),
		Background: parseHex(cfg.Colors.Background),
		Text:       parseHex(cfg.Colors.Text),
		TextLight:  parseHex(cfg.Colors.TextLight),
		Success:    parseHex(cfg.Colors.Success),
		Warning:    parseHex(cfg.Colors.Warning),
		Danger:     parseHex(cfg.Colors.Danger),

		TitleFont:    coreFont(cfg.Fonts.Title),
		BodyFont:     coreFont(cfg.Fonts.Body),
		TitleSize:    cfg.Fonts.Size.Title,
		SubtitleSize: cfg.Fonts.Size.Subtitle,
		BodySize:     cfg.Fonts.Size.Body,
		SmallSize:    cfg.Fonts.Size.Small,

		MarginLeft:   20,
		MarginTop:    20,
		MarginRight:  20,
		MarginBottom: 25,
		HeaderHeight: 14,
		FooterHeight: 12,
		AccentBar:    8,

		HeaderStyle:    cfg.Header.Style,
		HeaderPosition: cfg.Header.Position,
		ShowPageNumber: cfg.Header.ShowPageNumber,
	}

	if s.HeaderStyle == models.HeaderStyleNone {
		s.HeaderHeight = 0
	}

	s.PhotoGrid = photoGrid(cfg.Sections.PhotoLayout, s)
	return s
}

// SeverityColor maps a problem severity onto the palette.
func (s *StyleSheet) SeverityColor(sev models.Severity) RGB {
	switch sev {
	case models.SeverityUrgent, models.SeverityHigh:
		return s.Danger
	case models.SeverityMedium:
		return s.Warning
	case models.SeverityLow:
		return s.Success
	}
	return s.TextLight
}

// ContentWidth returns the usable width between the page margins.
func (s *StyleSheet) ContentWidth() float64 {
	return pageWidth - s.MarginLeft - s.MarginRight
}

// ContentTop returns the Y where page content starts, below the header.
func (s *StyleSheet) ContentTop() float64 {
	return s.MarginTop + s.HeaderHeight
}

// photoGrid computes the grid for a layout. The photo area spans the content
// width; cell heights leave room for the room title and detail text above.
func photoGrid(layout models.PhotoLayout, s StyleSheet) Grid {
	var cols, rows int
	switch layout {
	case models.Layout1x1:
		cols, rows = 1, 1
	case models.Layout2x3:
		cols, rows = 2, 3
	case models.Layout2x4:
		cols, rows = 2, 4
	default: // 2x2
		cols, rows = 2, 2
	}

	const gutter = 4.0
	areaW := pageWidth - s.MarginLeft - s.MarginRight
	areaH := pageHeight - s.ContentTop() - s.MarginBottom - s.FooterHeight - 40 // title + detail band

	cellW := (areaW - gutter*float64(cols-1)) / float64(cols)
	cellH := (areaH - gutter*float64(rows-1)) / float64(rows)

	return Grid{
		Cols:     cols,
		Rows:     rows,
		CellW:    cellW,
		CellH:    cellH,
		Gutter:   gutter,
		Capacity: cols * rows,
	}
}

// coreFont normalizes a configured family name onto an fpdf core font.
func coreFont(name string) string {
	if f, ok := coreFonts[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f
	}
	return "Helvetica"
}

// parseHex parses a #rrggbb string. Validation upstream guarantees the shape;
// a malformed value decodes to black rather than panicking.
func parseHex(hex string) RGB {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return RGB{}
	}
	r, err1 := strconv.ParseInt(hex[0:2], 16, 32)
	g, err2 := strconv.ParseInt(hex[2:4], 16, 32)
	b, err3 := strconv.ParseInt(hex[4:6], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return RGB{}
	}
	return RGB{R: int(r), G: int(g), B: int(b)}
}
