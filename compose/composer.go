package compose

import (
	"strings"

	"report-generator-service/assets"
	"report-generator-service/costs"
	"report-generator-service/models"
	"report-generator-service/pagination"
)

// disclaimer paragraphs for the informational page.
var infoParagraphs = []string{
	"This report documents the visible condition of the property at the time of inspection. Findings are based on photographic evidence collected on site and automated image analysis reviewed by the inspector.",
	"Repair cost figures, where present, are indicative estimates intended to support planning and negotiation. They are not binding quotations; actual costs depend on contractor selection, material choices and conditions discovered during repair work.",
	"Areas that were inaccessible, obstructed or not photographed are outside the scope of this report. The absence of a finding for such an area does not imply the absence of a defect.",
}

// Composer builds the ordered page plan for one generation request.
type Composer struct {
	variant Variant
	cfg     models.TemplateConfig
}

// New creates a composer for a variant and resolved template configuration.
func New(variant Variant, cfg models.TemplateConfig) *Composer {
	return &Composer{variant: variant, cfg: cfg}
}

// Inspection bundles the resolved inputs for a single-inspection plan.
type Inspection struct {
	Input      *models.InspectionInput
	RoomAssets [][]assets.ResolvedAsset // per room, aligned with room.Photos
	Costs      costs.Summary
	MapImage   []byte // optional PNG property map
}

// ComposeInspection builds the page plan for the standard and templated
// variants. Room order and chunk order are preserved as authored upstream.
func (c *Composer) ComposeInspection(in Inspection) []Page {
	sections := c.cfg.Sections
	var plan []Page

	if sections.ShowCover {
		plan = append(plan, Page{Kind: SectionCover, Cover: &CoverData{
			Inspection: in.Input.Inspection,
			Property:   in.Input.Property,
			Subtitle:   "Property Inspection Report",
		}})
	}

	if sections.ShowInfo {
		plan = append(plan, Page{Kind: SectionInfo, Info: &InfoData{
			Heading:    "About This Report",
			Paragraphs: infoParagraphs,
		}})
	}

	plan = append(plan, c.technicalPages(in.Input.Technical, in.MapImage, &in.Input.Property)...)

	if sections.ShowPhotos {
		for ri, chunks := range pagination.Plan(in.Input.Rooms, sections.PhotoLayout) {
			room := &in.Input.Rooms[ri]
			for _, chunk := range chunks {
				plan = append(plan, Page{Kind: SectionRoom, Room: c.roomPage(room, chunk, in.RoomAssets[ri])})
			}
		}
	}

	if in.Costs.HasCosts() {
		plan = append(plan, Page{Kind: SectionCostSummary, Costs: &CostSummaryData{Summary: in.Costs}})
	}

	if sections.ShowSignatures {
		plan = append(plan, Page{Kind: SectionSignatures, Signatures: &SignaturesData{
			InspectorName: in.Input.Inspection.InspectorName,
			ClientName:    in.Input.Inspection.ClientName,
		}})
	}

	return plan
}

// technicalPages emits the technical-analysis pages for the blocks that are
// actually present. No technical object means no technical pages.
func (c *Composer) technicalPages(tech *models.TechnicalReport, mapImage []byte, prop *models.PropertyInfo) []Page {
	if tech == nil {
		return nil
	}
	var plan []Page

	if tech.ExecutiveSummary != "" || tech.GeneralAssessment != "" {
		plan = append(plan, Page{Kind: SectionTechnical, Technical: &TechnicalData{
			Block: BlockSummary,
			Text:  tech.ExecutiveSummary,
			Extra: tech.GeneralAssessment,
		}})
	}

	if len(mapImage) > 0 {
		plan = append(plan, Page{Kind: SectionTechnical, Technical: &TechnicalData{
			Block: BlockPropertyMap,
			Text:  prop.FullAddress(),
			Image: mapImage,
		}})
	}

	if tech.PreviousReportID != "" {
		plan = append(plan, Page{Kind: SectionTechnical, Technical: &TechnicalData{
			Block:   BlockPriorComparison,
			Text:    tech.PreviousReportSummary,
			PriorID: tech.PreviousReportID,
		}})
	}

	if len(tech.Recommendations) > 0 {
		plan = append(plan, Page{Kind: SectionTechnical, Technical: &TechnicalData{
			Block: BlockRecommendations,
			Items: tech.Recommendations,
		}})
	}

	return plan
}

// roomPage binds one pagination chunk to its slice of resolved assets and, on
// the first chunk only, the room's detail text.
func (c *Composer) roomPage(room *models.Room, chunk pagination.Chunk, roomAssets []assets.ResolvedAsset) *RoomData {
	title := room.Name
	if suffix := chunk.TitleSuffix(); suffix != "" {
		title += " " + suffix
	}

	data := &RoomData{
		RoomName: room.Name,
		Title:    title,
		Chunk:    chunk,
		Assets:   chunkAssets(roomAssets, chunk),
	}

	if chunk.First() {
		data.ShowDetails = true
		if c.cfg.Sections.ShowAIAnalysis {
			data.AISummary = roomSummary(room)
		}
		if c.cfg.Sections.ShowProblems {
			data.Problems = roomProblems(room)
		}
		if c.cfg.Sections.ShowChecklist {
			data.Checklist = buildChecklist(room)
		}
	}

	return data
}

// chunkAssets returns the asset slice aligned with the chunk's photos.
func chunkAssets(roomAssets []assets.ResolvedAsset, chunk pagination.Chunk) []assets.ResolvedAsset {
	start := chunk.PhotoOffset
	end := start + len(chunk.Photos)
	if start > len(roomAssets) {
		return nil
	}
	if end > len(roomAssets) {
		end = len(roomAssets)
	}
	return roomAssets[start:end]
}

// roomSummary joins the AI summaries of the room's photos in photo order.
func roomSummary(room *models.Room) string {
	var parts []string
	for _, p := range room.Photos {
		if s := strings.TrimSpace(p.AISummary); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// roomProblems flattens the room's problems in photo order.
func roomProblems(room *models.Room) []models.Problem {
	var out []models.Problem
	for _, p := range room.Photos {
		out = append(out, p.Problems...)
	}
	return out
}
