// Package costs rolls individual problem cost estimates into per-room
// subtotals and a report-level total with deterministic rounding.
package costs

import (
	"github.com/apex/log"
	"github.com/shopspring/decimal"

	"report-generator-service/models"
)

var two = decimal.NewFromInt(2)

// Item is one costed (or un-costed) problem line.
type Item struct {
	Description string
	Severity    models.Severity
	Location    string
	Cost        decimal.Decimal
	HasEstimate bool
	Manual      bool // cost came from a manual override, not the estimate range
}

// RoomSummary aggregates the cost lines of one room.
type RoomSummary struct {
	RoomName        string
	Items           []Item
	Subtotal        decimal.Decimal
	CostedCount     int
	WithoutEstimate int
}

// HasCosts reports whether the room contributes anything to the totals.
// Rooms without costed problems produce no cost block in the document.
func (r *RoomSummary) HasCosts() bool {
	return r.CostedCount > 0
}

// Summary is the report-level rollup.
type Summary struct {
	Rooms           []RoomSummary
	Total           decimal.Decimal
	CostedCount     int
	WithoutEstimate int
}

// HasCosts reports whether the report carries any cost at all. A zero-cost
// report suppresses the cost-summary page entirely.
func (s *Summary) HasCosts() bool {
	return s.CostedCount > 0 && s.Total.IsPositive()
}

// Aggregate walks the rooms in order and computes per-room subtotals and the
// report total. Per problem: the manual override wins when present, otherwise
// the midpoint of the estimate range, otherwise the problem is excluded from
// totals and counted as "without estimate". Malformed cost fields (negative
// values, inverted ranges) are treated as "no estimate" rather than failing.
func Aggregate(rooms []models.Room) Summary {
	out := Summary{Rooms: make([]RoomSummary, 0, len(rooms))}

	for _, room := range rooms {
		rs := RoomSummary{RoomName: room.Name}
		for _, photo := range room.Photos {
			for _, p := range photo.Problems {
				item, ok := costOf(&p)
				if !ok {
					rs.WithoutEstimate++
					rs.Items = append(rs.Items, Item{
						Description: p.Description,
						Severity:    p.Severity,
						Location:    p.Location,
					})
					continue
				}
				rs.Items = append(rs.Items, item)
				rs.Subtotal = rs.Subtotal.Add(item.Cost)
				rs.CostedCount++
			}
		}
		rs.Subtotal = rs.Subtotal.Round(2)
		out.Total = out.Total.Add(rs.Subtotal)
		out.CostedCount += rs.CostedCount
		out.WithoutEstimate += rs.WithoutEstimate
		out.Rooms = append(out.Rooms, rs)
	}

	out.Total = out.Total.Round(2)
	return out
}

// costOf resolves a single problem's cost. The bool result is false when the
// problem carries no usable estimate.
func costOf(p *models.Problem) (Item, bool) {
	item := Item{
		Description: p.Description,
		Severity:    p.Severity,
		Location:    p.Location,
	}

	if p.ManualCost != nil {
		c := decimal.NewFromFloat(*p.ManualCost)
		if c.IsNegative() {
			log.Warnf("ignoring negative manual cost %s for %q", c, p.Description)
			return Item{}, false
		}
		item.Cost = c.Round(2)
		item.HasEstimate = true
		item.Manual = true
		return item, true
	}

	if p.EstimatedCostMin != nil && p.EstimatedCostMax != nil {
		min := decimal.NewFromFloat(*p.EstimatedCostMin)
		max := decimal.NewFromFloat(*p.EstimatedCostMax)
		if min.IsNegative() || max.IsNegative() || max.LessThan(min) {
			log.Warnf("ignoring malformed estimate range [%s, %s] for %q", min, max, p.Description)
			return Item{}, false
		}
		item.Cost = min.Add(max).Div(two).Round(2)
		item.HasEstimate = true
		return item, true
	}

	return Item{}, false
}
