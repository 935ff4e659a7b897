package engine

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"report-generator-service/config"
	"report-generator-service/models"
	"report-generator-service/template"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                 "0",
		FetchTimeout:         200 * time.Millisecond,
		FetchRetries:         0,
		MaxConcurrentFetches: 4,
		MaxImageDimension:    512,
		UserAgent:            "test",
		CurrencyLocale:       "en-US",
		CurrencySymbol:       "$",
		OSMTileURL:           "http://127.0.0.1:1/%d/%d/%d.png",
	}
}

func photoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		img := image.NewRGBA(image.Rect(0, 0, 20, 20))
		if err := jpeg.Encode(w, img, nil); err != nil {
			t.Errorf("encoding photo: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testInput(photoURL string) *models.InspectionInput {
	manual := 300.0
	return &models.InspectionInput{
		Inspection: models.InspectionInfo{ID: "insp-1", Type: "move-out", InspectorName: "Dana", ClientName: "Lee"},
		Property:   models.PropertyInfo{Name: "Oak House", Address: "12 Oak St", Type: "house", Area: 120},
		Rooms: []models.Room{
			{
				Name: "Kitchen",
				Photos: []models.Photo{
					{URL: photoURL, AISummary: "Counter in good shape.", Problems: []models.Problem{
						{Description: "Cracked tile", Severity: models.SeverityHigh, ManualCost: &manual},
					}},
					{URL: "http://127.0.0.1:1/unreachable.jpg"},
				},
			},
			{Name: "Bedroom", Photos: []models.Photo{{URL: photoURL}}},
		},
		Technical: &models.TechnicalReport{
			ExecutiveSummary:  "Overall condition is fair.",
			GeneralAssessment: "Minor repairs needed.",
			Recommendations:   []string{"Replace cracked tile", "Repaint bedroom"},
		},
	}
}

func TestGenerateStandardSurvivesFailedFetches(t *testing.T) {
	srv := photoServer(t)
	g := New(testConfig())

	doc, err := g.GenerateStandard(context.Background(), testInput(srv.URL+"/photo.jpg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Error("output does not start with the PDF magic")
	}
}

func TestGenerateStandardAllFetchesFail(t *testing.T) {
	// No photo is reachable; placeholders carry the whole document.
	g := New(testConfig())

	doc, err := g.GenerateStandard(context.Background(), testInput("http://127.0.0.1:1/photo.jpg"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Error("output does not start with the PDF magic")
	}
}

func TestGenerateTemplatedInvalidTemplate(t *testing.T) {
	g := New(testConfig())
	bad := models.PhotoLayout("3x3")
	override := &models.TemplateOverride{
		Sections: &models.SectionsOverride{PhotoLayout: &bad},
	}

	_, err := g.GenerateTemplated(context.Background(), testInput("http://127.0.0.1:1/p.jpg"), override)
	var verr *template.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if verr.Field != "sections.photo_layout" {
		t.Errorf("field = %q, want sections.photo_layout", verr.Field)
	}
}

func TestGenerateTemplatedWithOverride(t *testing.T) {
	srv := photoServer(t)
	g := New(testConfig())

	layout := models.Layout2x3
	primary := "#004488"
	show := false
	override := &models.TemplateOverride{
		Colors: &models.ColorsOverride{Primary: &primary},
		Sections: &models.SectionsOverride{
			PhotoLayout:    &layout,
			ShowSignatures: &show,
		},
	}

	doc, err := g.GenerateTemplated(context.Background(), testInput(srv.URL+"/photo.jpg"), override)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Error("output does not start with the PDF magic")
	}
}

func TestGenerateComparison(t *testing.T) {
	srv := photoServer(t)
	g := New(testConfig())

	before := testInput(srv.URL + "/before.jpg")
	after := testInput(srv.URL + "/after.jpg")
	after.Inspection.ID = "insp-2"
	after.Rooms[0].Photos[0].Problems = nil // resolved in the second inspection

	doc, err := g.GenerateComparison(context.Background(), &models.ComparisonInput{
		Before: *before,
		After:  *after,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Error("output does not start with the PDF magic")
	}
}

func TestComposeMapSkippedWithoutCoordinates(t *testing.T) {
	g := New(testConfig())
	input := testInput("http://127.0.0.1:1/p.jpg")

	if img := g.composeMap(context.Background(), input); img != nil {
		t.Error("map composed without coordinates")
	}

	lat, lon := 42.44, 19.26
	input.Property.Latitude = &lat
	input.Property.Longitude = &lon
	// Tile server unreachable: the map is omitted, never an error.
	if img := g.composeMap(context.Background(), input); img != nil {
		t.Error("map composed despite unreachable tile server")
	}
}
