package models

import (
	"time"
)

// Severity is the severity level assigned to a detected problem.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
	SeverityUrgent Severity = "urgent"
)

// IsValid returns true if the severity is a recognized value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityUrgent:
		return true
	}
	return false
}

// Rank returns a sortable weight for the severity, higher is worse.
// Unknown severities rank below low so malformed data never outranks real findings.
func (s Severity) Rank() int {
	switch s {
	case SeverityUrgent:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Label returns the display label for the severity.
func (s Severity) Label() string {
	switch s {
	case SeverityUrgent:
		return "Urgent"
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	case SeverityLow:
		return "Low"
	}
	return "Unspecified"
}

// Problem represents a single AI-detected or manually recorded finding on a photo.
// Cost fields arrive pre-computed from the estimation service; the engine never
// invents costs, it only aggregates them.
type Problem struct {
	Description      string   `json:"description"`
	Severity         Severity `json:"severity"`
	Location         string   `json:"location,omitempty"`
	SuggestedAction  string   `json:"suggested_action,omitempty"`
	ManualCost       *float64 `json:"manual_cost,omitempty"`       // overrides the estimate when present
	EstimatedCostMin *float64 `json:"estimated_cost_min,omitempty"`
	EstimatedCostMax *float64 `json:"estimated_cost_max,omitempty"`
}

// Photo represents one inspected photo with its analysis payload.
type Photo struct {
	URL       string    `json:"url"`
	AISummary string    `json:"ai_summary,omitempty"`
	Problems  []Problem `json:"problems,omitempty"`
}

// Room represents a room (or other inspected area) with its ordered photos.
type Room struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"` // e.g. kitchen, bathroom, bedroom, exterior
	Photos   []Photo `json:"photos"`
}

// ProblemCount returns the number of problems recorded across the room's photos.
func (r *Room) ProblemCount() int {
	n := 0
	for _, p := range r.Photos {
		n += len(p.Problems)
	}
	return n
}

// InspectionInfo carries the inspection metadata printed on the cover page.
type InspectionInfo struct {
	ID            string    `json:"id"`
	Type          string    `json:"type,omitempty"`   // e.g. move-in, move-out, periodic
	Status        string    `json:"status,omitempty"`
	ScheduledAt   time.Time `json:"scheduled_at,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	InspectorName string    `json:"inspector_name,omitempty"`
	ClientName    string    `json:"client_name,omitempty"`
}

// PropertyInfo carries the property metadata printed on the cover page and,
// when coordinates are present, drives the property-map page.
type PropertyInfo struct {
	Name      string   `json:"name"`
	Address   string   `json:"address,omitempty"`
	City      string   `json:"city,omitempty"`
	State     string   `json:"state,omitempty"`
	Type      string   `json:"type,omitempty"` // e.g. apartment, house, commercial
	Area      float64  `json:"area,omitempty"` // square meters
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	// Boundary is an optional GeoJSON feature (polygon) outlining the property.
	Boundary []byte `json:"boundary,omitempty"`
}

// FullAddress returns the address joined with city and state for display.
func (p *PropertyInfo) FullAddress() string {
	out := p.Address
	if p.City != "" {
		if out != "" {
			out += ", "
		}
		out += p.City
	}
	if p.State != "" {
		if out != "" {
			out += ", "
		}
		out += p.State
	}
	return out
}

// TechnicalReport is the precomputed technical-analysis payload supplied by the
// analysis service. Pages are emitted only for the parts that are present.
type TechnicalReport struct {
	ExecutiveSummary  string   `json:"executive_summary,omitempty"`
	GeneralAssessment string   `json:"general_assessment,omitempty"`
	Recommendations   []string `json:"recommendations,omitempty"`
	// PreviousReportID references an earlier inspection; the prior-inspection
	// comparison block is emitted only when it is set.
	PreviousReportID      string `json:"previous_report_id,omitempty"`
	PreviousReportSummary string `json:"previous_report_summary,omitempty"`
}

// InspectionInput is the full data set for one report generation request.
// It is assembled by the record store upstream; the engine never writes it back.
type InspectionInput struct {
	Inspection InspectionInfo   `json:"inspection"`
	Property   PropertyInfo     `json:"property"`
	Rooms      []Room           `json:"rooms"`
	Technical  *TechnicalReport `json:"technical,omitempty"`
}

// PhotoCount returns the total number of photos across all rooms.
func (in *InspectionInput) PhotoCount() int {
	n := 0
	for _, r := range in.Rooms {
		n += len(r.Photos)
	}
	return n
}

// ComparisonInput pairs two inspections of the same property for the
// comparison report variant.
type ComparisonInput struct {
	Before InspectionInput `json:"before"`
	After  InspectionInput `json:"after"`
}
