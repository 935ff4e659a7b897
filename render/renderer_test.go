package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"report-generator-service/assets"
	"report-generator-service/compose"
	"report-generator-service/costs"
	"report-generator-service/models"
	"report-generator-service/pagination"
	"report-generator-service/styles"
	"report-generator-service/template"
)

func testRenderer(cfg models.TemplateConfig) *Renderer {
	return NewRenderer(styles.Derive(cfg), cfg.Branding, costs.NewFormatter("en-US", "$"))
}

func pngAsset(t *testing.T) assets.ResolvedAsset {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return assets.ResolvedAsset{
		SourceURL: "https://example.com/a.png",
		Data:      buf.Bytes(),
		MIME:      assets.MIMEPNG,
		Resolved:  true,
	}
}

func placeholderAsset() assets.ResolvedAsset {
	return assets.ResolvedAsset{
		SourceURL: "https://example.com/broken.jpg",
		Data:      []byte{0},
		MIME:      assets.MIMEPNG,
		Resolved:  false,
	}
}

func fullPlan(t *testing.T) []compose.Page {
	room := models.Room{Name: "Kitchen", Photos: []models.Photo{
		{URL: "a", Problems: []models.Problem{{Description: "Cracked tile", Severity: models.SeverityHigh}}},
		{URL: "b"},
	}}

	return []compose.Page{
		{Kind: compose.SectionCover, Cover: &compose.CoverData{
			Inspection: models.InspectionInfo{ID: "insp-1", Type: "move-out", InspectorName: "Dana"},
			Property:   models.PropertyInfo{Name: "Oak House", Address: "12 Oak St", Type: "house", Area: 120},
			Subtitle:   "Property Inspection Report",
		}},
		{Kind: compose.SectionInfo, Info: &compose.InfoData{
			Heading:    "About This Report",
			Paragraphs: []string{"First paragraph.", "Second paragraph."},
		}},
		{Kind: compose.SectionTechnical, Technical: &compose.TechnicalData{
			Block: compose.BlockSummary,
			Text:  "Executive summary text.",
			Extra: "General assessment text.",
		}},
		{Kind: compose.SectionRoom, Room: &compose.RoomData{
			RoomName:    "Kitchen",
			Title:       "Kitchen",
			Chunk:       pagination.Chunk{Index: 1, Total: 1, Photos: room.Photos},
			Assets:      []assets.ResolvedAsset{pngAsset(t), placeholderAsset()},
			ShowDetails: true,
			AISummary:   "Minor wear consistent with age.",
			Problems:    room.Photos[0].Problems,
			Checklist:   []compose.ChecklistItem{{Label: "Walls"}, {Label: "Flooring", Flagged: true}},
		}},
		{Kind: compose.SectionCostSummary, Costs: &compose.CostSummaryData{
			Summary: costs.Aggregate([]models.Room{{
				Name: "Kitchen",
				Photos: []models.Photo{{Problems: []models.Problem{{
					Description: "Cracked tile",
					ManualCost:  func() *float64 { v := 250.0; return &v }(),
				}}}},
			}}),
		}},
		{Kind: compose.SectionSignatures, Signatures: &compose.SignaturesData{
			InspectorName: "Dana",
			ClientName:    "Lee",
		}},
	}
}

func TestRenderFullPlanProducesPDF(t *testing.T) {
	cfg := template.Defaults()
	doc, err := testRenderer(cfg).Render(fullPlan(t))
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Error("output does not start with the PDF magic")
	}
	if len(doc) < 1000 {
		t.Errorf("suspiciously small document: %d bytes", len(doc))
	}
}

func TestRenderPlaceholderOnlyRoom(t *testing.T) {
	// All photos unresolved: the document still renders.
	cfg := template.Defaults()
	plan := []compose.Page{{Kind: compose.SectionRoom, Room: &compose.RoomData{
		RoomName: "Bath",
		Title:    "Bath",
		Chunk:    pagination.Chunk{Index: 1, Total: 1},
		Assets:   []assets.ResolvedAsset{placeholderAsset(), placeholderAsset()},
	}}}

	doc, err := testRenderer(cfg).Render(plan)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Error("output does not start with the PDF magic")
	}
}

func TestRenderComparisonPages(t *testing.T) {
	cfg := template.Defaults()
	a := pngAsset(t)
	plan := []compose.Page{
		{Kind: compose.SectionRoom, Compare: &compose.CompareRoomData{
			RoomName: "Kitchen",
			Title:    "Kitchen",
			Pairs: []compose.PhotoPair{
				{Before: &models.Photo{URL: "b"}, BeforeAsset: &a, After: &models.Photo{URL: "a"}, AfterAsset: &a},
				{Before: &models.Photo{URL: "b2"}, BeforeAsset: &a},
			},
		}},
		{Kind: compose.SectionDifferences, Differences: &compose.DifferencesData{
			RoomName:   "Kitchen",
			Resolved:   []models.Problem{{Description: "Loose handle"}},
			Persisting: []models.Problem{{Description: "Cracked tile"}},
			New:        []models.Problem{{Description: "Scratched counter"}},
		}},
	}

	doc, err := testRenderer(cfg).Render(plan)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Error("output does not start with the PDF magic")
	}
}

func TestRenderWatermarkAndHeaderVariants(t *testing.T) {
	for _, style := range []string{
		models.HeaderStyleFull, models.HeaderStyleLogoOnly, models.HeaderStyleMinimal, models.HeaderStyleNone,
	} {
		cfg := template.Defaults()
		cfg.Header.Style = style
		cfg.Branding.CompanyName = "Acme Inspections"
		cfg.Branding.ShowWatermark = true

		doc, err := testRenderer(cfg).Render(fullPlan(t))
		if err != nil {
			t.Fatalf("header style %s: %v", style, err)
		}
		if !bytes.HasPrefix(doc, []byte("%PDF")) {
			t.Errorf("header style %s: bad output", style)
		}
	}
}

func TestDecodeDataURI(t *testing.T) {
	okURI := "data:image/png;base64,aGVsbG8="
	data, imgType, err := decodeDataURI(okURI)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "hello" || imgType != "PNG" {
		t.Errorf("decoded %q/%q", data, imgType)
	}

	for _, bad := range []string{"", "http://example.com/x.png", "data:image/png,raw", "data:text/plain;base64,aGk="} {
		if _, _, err := decodeDataURI(bad); err == nil {
			t.Errorf("decodeDataURI(%q) must fail", bad)
		}
	}
}
