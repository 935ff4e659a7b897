package models

// PhotoLayout is the photo density setting for room pages.
type PhotoLayout string

const (
	Layout1x1 PhotoLayout = "1x1"
	Layout2x2 PhotoLayout = "2x2"
	Layout2x3 PhotoLayout = "2x3"
	Layout2x4 PhotoLayout = "2x4"
)

// IsValid returns true if the layout is one of the four supported densities.
func (l PhotoLayout) IsValid() bool {
	switch l {
	case Layout1x1, Layout2x2, Layout2x3, Layout2x4:
		return true
	}
	return false
}

// Header style and position options.
const (
	HeaderStyleFull     = "full"
	HeaderStyleLogoOnly = "logo-only"
	HeaderStyleMinimal  = "minimal"
	HeaderStyleNone     = "none"

	HeaderPositionLeft   = "left"
	HeaderPositionCenter = "center"
	HeaderPositionRight  = "right"
)

// TemplateColors holds the color palette as #rrggbb hex strings.
type TemplateColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
	TextLight  string `json:"text_light"`
	Success    string `json:"success"`
	Warning    string `json:"warning"`
	Danger     string `json:"danger"`
}

// TemplateFontSizes holds point sizes per text role.
type TemplateFontSizes struct {
	Title    float64 `json:"title"`
	Subtitle float64 `json:"subtitle"`
	Body     float64 `json:"body"`
	Small    float64 `json:"small"`
}

// TemplateFonts holds font family names and sizes.
type TemplateFonts struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Size  TemplateFontSizes `json:"size"`
}

// TemplateHeader controls the repeating page header.
type TemplateHeader struct {
	Style          string `json:"style"`    // full | logo-only | minimal | none
	Position       string `json:"position"` // left | center | right
	ShowPageNumber bool   `json:"show_page_number"`
}

// TemplateSections toggles document sections and sets the photo density.
type TemplateSections struct {
	ShowCover      bool        `json:"show_cover"`
	ShowInfo       bool        `json:"show_info"`
	ShowAIAnalysis bool        `json:"show_ai_analysis"`
	ShowProblems   bool        `json:"show_problems"`
	ShowChecklist  bool        `json:"show_checklist"`
	ShowSignatures bool        `json:"show_signatures"`
	ShowPhotos     bool        `json:"show_photos"`
	PhotoLayout    PhotoLayout `json:"photo_layout"`
}

// TemplateBranding carries company identity rendered on cover and footers.
type TemplateBranding struct {
	Logo          string `json:"logo,omitempty"` // data URI
	CompanyName   string `json:"company_name,omitempty"`
	CompanyEmail  string `json:"company_email,omitempty"`
	FooterText    string `json:"footer_text,omitempty"`
	ShowWatermark bool   `json:"show_watermark"`
}

// TemplateConfig is the fully resolved template configuration. Every field is
// populated after resolution; the zero value is never used directly.
type TemplateConfig struct {
	Colors   TemplateColors   `json:"colors"`
	Fonts    TemplateFonts    `json:"fonts"`
	Header   TemplateHeader   `json:"header"`
	Sections TemplateSections `json:"sections"`
	Branding TemplateBranding `json:"branding"`
}

// TemplateOverride is the caller-supplied partial configuration. Nil pointers
// mean "use the default"; merging is field-by-field within each group, so
// supplying colors.primary does not erase the other color fields.
type TemplateOverride struct {
	Colors   *ColorsOverride   `json:"colors,omitempty"`
	Fonts    *FontsOverride    `json:"fonts,omitempty"`
	Header   *HeaderOverride   `json:"header,omitempty"`
	Sections *SectionsOverride `json:"sections,omitempty"`
	Branding *BrandingOverride `json:"branding,omitempty"`
}

// ColorsOverride mirrors TemplateColors with optional fields.
type ColorsOverride struct {
	Primary    *string `json:"primary,omitempty"`
	Secondary  *string `json:"secondary,omitempty"`
	Background *string `json:"background,omitempty"`
	Text       *string `json:"text,omitempty"`
	TextLight  *string `json:"text_light,omitempty"`
	Success    *string `json:"success,omitempty"`
	Warning    *string `json:"warning,omitempty"`
	Danger     *string `json:"danger,omitempty"`
}

// FontSizesOverride mirrors TemplateFontSizes with optional fields.
type FontSizesOverride struct {
	Title    *float64 `json:"title,omitempty"`
	Subtitle *float64 `json:"subtitle,omitempty"`
	Body     *float64 `json:"body,omitempty"`
	Small    *float64 `json:"small,omitempty"`
}

// FontsOverride mirrors TemplateFonts with optional fields.
type FontsOverride struct {
	Title *string            `json:"title,omitempty"`
	Body  *string            `json:"body,omitempty"`
	Size  *FontSizesOverride `json:"size,omitempty"`
}

// HeaderOverride mirrors TemplateHeader with optional fields.
type HeaderOverride struct {
	Style          *string `json:"style,omitempty"`
	Position       *string `json:"position,omitempty"`
	ShowPageNumber *bool   `json:"show_page_number,omitempty"`
}

// SectionsOverride mirrors TemplateSections with optional fields.
type SectionsOverride struct {
	ShowCover      *bool        `json:"show_cover,omitempty"`
	ShowInfo       *bool        `json:"show_info,omitempty"`
	ShowAIAnalysis *bool        `json:"show_ai_analysis,omitempty"`
	ShowProblems   *bool        `json:"show_problems,omitempty"`
	ShowChecklist  *bool        `json:"show_checklist,omitempty"`
	ShowSignatures *bool        `json:"show_signatures,omitempty"`
	ShowPhotos     *bool        `json:"show_photos,omitempty"`
	PhotoLayout    *PhotoLayout `json:"photo_layout,omitempty"`
}

// BrandingOverride mirrors TemplateBranding with optional fields.
type BrandingOverride struct {
	Logo          *string `json:"logo,omitempty"`
	CompanyName   *string `json:"company_name,omitempty"`
	CompanyEmail  *string `json:"company_email,omitempty"`
	FooterText    *string `json:"footer_text,omitempty"`
	ShowWatermark *bool   `json:"show_watermark,omitempty"`
}
