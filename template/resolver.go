// Package template resolves a caller-supplied partial template configuration
// against the documented defaults and validates the result before any
// generation work starts.
package template

import (
	"fmt"
	"regexp"

	"report-generator-service/models"
)

// ValidationError is the only fatal, pre-generation error the engine raises.
// It names the offending field and the value that was rejected.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid template field %s: %q", e.Field, e.Value)
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Defaults returns the house default template configuration. A fresh value is
// returned on every call so callers can never mutate shared state.
func Defaults() models.TemplateConfig {
	return models.TemplateConfig{
		Colors: models.TemplateColors{
			Primary:    "#1e3a5f",
			Secondary:  "#3498db",
			Background: "#f8f9fa",
			Text:       "#2c3e50",
			TextLight:  "#7f8c8d",
			Success:    "#2ecc71",
			Warning:    "#f1c40f",
			Danger:     "#e74c3c",
		},
		Fonts: models.TemplateFonts{
			Title: "Helvetica",
			Body:  "Helvetica",
			Size: models.TemplateFontSizes{
				Title:    24,
				Subtitle: 16,
				Body:     10,
				Small:    8,
			},
		},
		Header: models.TemplateHeader{
			Style:          models.HeaderStyleFull,
			Position:       models.HeaderPositionLeft,
			ShowPageNumber: true,
		},
		Sections: models.TemplateSections{
			ShowCover:      true,
			ShowInfo:       true,
			ShowAIAnalysis: true,
			ShowProblems:   true,
			ShowChecklist:  false,
			ShowSignatures: true,
			ShowPhotos:     true,
			PhotoLayout:    models.Layout2x2,
		},
		Branding: models.TemplateBranding{
			ShowWatermark: false,
		},
	}
}

// Resolve merges the supplied override into the defaults and validates the
// result. Merging is field-by-field within each top-level group; a nil
// override returns the defaults unchanged.
func Resolve(override *models.TemplateOverride) (models.TemplateConfig, error) {
	cfg := Defaults()

	if override != nil {
		mergeColors(&cfg.Colors, override.Colors)
		mergeFonts(&cfg.Fonts, override.Fonts)
		mergeHeader(&cfg.Header, override.Header)
		mergeSections(&cfg.Sections, override.Sections)
		mergeBranding(&cfg.Branding, override.Branding)
	}

	if err := validate(&cfg); err != nil {
		return models.TemplateConfig{}, err
	}
	return cfg, nil
}

func mergeColors(dst *models.TemplateColors, src *models.ColorsOverride) {
	if src == nil {
		return
	}
	setString(&dst.Primary, src.Primary)
	setString(&dst.Secondary, src.Secondary)
	setString(&dst.Background, src.Background)
	setString(&dst.Text, src.Text)
	setString(&dst.TextLight, src.TextLight)
	setString(&dst.Success, src.Success)
	setString(&dst.Warning, src.Warning)
	setString(&dst.Danger, src.Danger)
}

func mergeFonts(dst *models.TemplateFonts, src *models.FontsOverride) {
	if src == nil {
		return
	}
	setString(&dst.Title, src.Title)
	setString(&dst.Body, src.Body)
	if src.Size != nil {
		setFloat(&dst.Size.Title, src.Size.Title)
		setFloat(&dst.Size.Subtitle, src.Size.Subtitle)
		setFloat(&dst.Size.Body, src.Size.Body)
		setFloat(&dst.Size.Small, src.Size.Small)
	}
}

func mergeHeader(dst *models.TemplateHeader, src *models.HeaderOverride) {
	if src == nil {
		return
	}
	setString(&dst.Style, src.Style)
	setString(&dst.Position, src.Position)
	setBool(&dst.ShowPageNumber, src.ShowPageNumber)
}

func mergeSections(dst *models.TemplateSections, src *models.SectionsOverride) {
	if src == nil {
		return
	}
	setBool(&dst.ShowCover, src.ShowCover)
	setBool(&dst.ShowInfo, src.ShowInfo)
	setBool(&dst.ShowAIAnalysis, src.ShowAIAnalysis)
	setBool(&dst.ShowProblems, src.ShowProblems)
	setBool(&dst.ShowChecklist, src.ShowChecklist)
	setBool(&dst.ShowSignatures, src.ShowSignatures)
	setBool(&dst.ShowPhotos, src.ShowPhotos)
	if src.PhotoLayout != nil {
		dst.PhotoLayout = *src.PhotoLayout
	}
}

func mergeBranding(dst *models.TemplateBranding, src *models.BrandingOverride) {
	if src == nil {
		return
	}
	setString(&dst.Logo, src.Logo)
	setString(&dst.CompanyName, src.CompanyName)
	setString(&dst.CompanyEmail, src.CompanyEmail)
	setString(&dst.FooterText, src.FooterText)
	setBool(&dst.ShowWatermark, src.ShowWatermark)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// validate checks enum fields and value shapes on the merged configuration.
func validate(cfg *models.TemplateConfig) error {
	colors := []struct {
		field string
		value string
	}{
		{"colors.primary", cfg.Colors.Primary},
		{"colors.secondary", cfg.Colors.Secondary},
		{"colors.background", cfg.Colors.Background},
		{"colors.text", cfg.Colors.Text},
		{"colors.text_light", cfg.Colors.TextLight},
		{"colors.success", cfg.Colors.Success},
		{"colors.warning", cfg.Colors.Warning},
		{"colors.danger", cfg.Colors.Danger},
	}
	for _, c := range colors {
		if !hexColorRe.MatchString(c.value) {
			return &ValidationError{Field: c.field, Value: c.value}
		}
	}

	sizes := []struct {
		field string
		value float64
	}{
		{"fonts.size.title", cfg.Fonts.Size.Title},
		{"fonts.size.subtitle", cfg.Fonts.Size.Subtitle},
		{"fonts.size.body", cfg.Fonts.Size.Body},
		{"fonts.size.small", cfg.Fonts.Size.Small},
	}
	for _, s := range sizes {
		if s.value <= 0 {
			return &ValidationError{Field: s.field, Value: fmt.Sprintf("%g", s.value)}
		}
	}

	switch cfg.Header.Style {
	case models.HeaderStyleFull, models.HeaderStyleLogoOnly, models.HeaderStyleMinimal, models.HeaderStyleNone:
	default:
		return &ValidationError{Field: "header.style", Value: cfg.Header.Style}
	}

	switch cfg.Header.Position {
	case models.HeaderPositionLeft, models.HeaderPositionCenter, models.HeaderPositionRight:
	default:
		return &ValidationError{Field: "header.position", Value: cfg.Header.Position}
	}

	if !cfg.Sections.PhotoLayout.IsValid() {
		return &ValidationError{Field: "sections.photo_layout", Value: string(cfg.Sections.PhotoLayout)}
	}

	return nil
}
