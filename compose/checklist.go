package compose

import (
	"strings"

	"report-generator-service/models"
)

// baseChecklist applies to every room category.
var baseChecklist = []string{
	"Walls",
	"Ceiling",
	"Flooring",
	"Windows",
	"Doors",
	"Electrical outlets",
}

// categoryChecklist adds category-specific elements.
var categoryChecklist = map[string][]string{
	"kitchen":  {"Sink and plumbing", "Countertops", "Cabinets", "Appliances"},
	"bathroom": {"Sink and plumbing", "Toilet", "Shower or bathtub", "Ventilation", "Tiling and grout"},
	"bedroom":  {"Closet", "Heating"},
	"laundry":  {"Washer connections", "Ventilation"},
	"exterior": {"Roofline", "Gutters", "Siding or facade", "Drainage"},
	"garage":   {"Garage door", "Slab"},
	"balcony":  {"Railing", "Drainage"},
}

// buildChecklist derives the condition checklist for a room. An item is
// flagged when any recorded problem mentions it in the description or
// location text.
func buildChecklist(room *models.Room) []ChecklistItem {
	labels := append([]string{}, baseChecklist...)
	if extra, ok := categoryChecklist[strings.ToLower(strings.TrimSpace(room.Category))]; ok {
		labels = append(labels, extra...)
	}

	items := make([]ChecklistItem, 0, len(labels))
	for _, label := range labels {
		items = append(items, ChecklistItem{
			Label:   label,
			Flagged: mentions(room, label),
		})
	}
	return items
}

// mentions reports whether any problem text in the room references the
// checklist label (matched on the label's first word, case-insensitive).
func mentions(room *models.Room, label string) bool {
	key := strings.ToLower(strings.Fields(label)[0])
	// Singular match so "Windows" catches "window frame".
	key = strings.TrimSuffix(key, "s")

	for _, photo := range room.Photos {
		for _, p := range photo.Problems {
			text := strings.ToLower(p.Description + " " + p.Location)
			if strings.Contains(text, key) {
				return true
			}
		}
	}
	return false
}
