// Package compose decides which document sections exist and in what order,
// and binds resolved assets, styles and cost rollups into an ordered page
// plan for the renderer.
package compose

import (
	"report-generator-service/assets"
	"report-generator-service/costs"
	"report-generator-service/models"
	"report-generator-service/pagination"
)

// Variant selects the composition strategy.
type Variant string

const (
	// VariantStandard uses the fixed house template.
	VariantStandard Variant = "standard"
	// VariantTemplated is driven entirely by the caller's template config.
	VariantTemplated Variant = "templated"
	// VariantComparison pairs two inspections of the same property.
	VariantComparison Variant = "comparison"
)

// SectionKind tags a page descriptor.
type SectionKind string

const (
	SectionCover       SectionKind = "cover"
	SectionInfo        SectionKind = "info"
	SectionTechnical   SectionKind = "technical"
	SectionRoom        SectionKind = "room"
	SectionCostSummary SectionKind = "costSummary"
	SectionSignatures  SectionKind = "signatures"
	// SectionDifferences is emitted by the comparison variant only.
	SectionDifferences SectionKind = "differences"
)

// TechnicalBlock names which technical-analysis block a technical page holds.
type TechnicalBlock string

const (
	BlockSummary         TechnicalBlock = "summary"
	BlockPropertyMap     TechnicalBlock = "propertyMap"
	BlockPriorComparison TechnicalBlock = "priorComparison"
	BlockRecommendations TechnicalBlock = "recommendations"
)

// Page is one descriptor in the composed plan. Exactly one of the data
// pointers matching Kind is set.
type Page struct {
	Kind SectionKind

	Cover       *CoverData
	Info        *InfoData
	Technical   *TechnicalData
	Room        *RoomData
	Compare     *CompareRoomData
	Differences *DifferencesData
	Costs       *CostSummaryData
	Signatures  *SignaturesData
}

// CoverData drives the cover page.
type CoverData struct {
	Inspection models.InspectionInfo
	Property   models.PropertyInfo
	Subtitle   string
	// BeforeAfter is set by the comparison variant and carries the second
	// inspection's metadata.
	BeforeAfter *models.InspectionInfo
}

// InfoData drives the informational/disclaimer page.
type InfoData struct {
	Heading    string
	Paragraphs []string
}

// TechnicalData drives one technical-analysis page.
type TechnicalData struct {
	Block    TechnicalBlock
	Text     string   // summary / assessment / prior summary text
	Extra    string   // secondary text (general assessment on the summary page)
	Items    []string // recommendations
	Image    []byte   // PNG property map
	PriorID  string   // prior report reference
}

// ChecklistItem is one row of the per-room condition checklist.
type ChecklistItem struct {
	Label   string
	Flagged bool // a recorded problem mentions this element
}

// RoomData drives one room photo page (one pagination chunk).
type RoomData struct {
	RoomName string
	Title    string // room name plus "(i/n)" suffix for multi-chunk rooms
	Chunk    pagination.Chunk
	Assets   []assets.ResolvedAsset // aligned with Chunk.Photos

	// Detail text, present on the first chunk only.
	ShowDetails bool
	AISummary   string
	Problems    []models.Problem
	Checklist   []ChecklistItem
}

// PhotoPair is one before/after pairing on a comparison page. Either side may
// be absent when the two inspections carry different photo counts.
type PhotoPair struct {
	Before      *models.Photo
	After       *models.Photo
	BeforeAsset *assets.ResolvedAsset
	AfterAsset  *assets.ResolvedAsset
}

// CompareRoomData drives one comparison room page.
type CompareRoomData struct {
	RoomName string
	Title    string
	Pairs    []PhotoPair
	// Note flags rooms present in only one of the two inspections.
	Note string
}

// DifferencesData drives the per-room differences page of the comparison
// variant.
type DifferencesData struct {
	RoomName   string
	Resolved   []models.Problem // present before, gone after
	Persisting []models.Problem // present in both
	New        []models.Problem // new in the after inspection
}

// CostSummaryData drives the cost-summary page.
type CostSummaryData struct {
	Summary costs.Summary
}

// SignaturesData drives the closing signature-block page.
type SignaturesData struct {
	InspectorName string
	ClientName    string
}
