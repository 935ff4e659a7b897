package costs

import (
	"testing"

	"github.com/shopspring/decimal"

	"report-generator-service/models"
)

func f(v float64) *float64 { return &v }

func TestAggregateManualOverrideWins(t *testing.T) {
	rooms := []models.Room{{
		Name: "Kitchen",
		Photos: []models.Photo{{
			URL: "https://example.com/1.jpg",
			Problems: []models.Problem{{
				Description:      "Cracked tile",
				Severity:         models.SeverityMedium,
				ManualCost:       f(250),
				EstimatedCostMin: f(100),
				EstimatedCostMax: f(900),
			}},
		}},
	}}

	s := Aggregate(rooms)
	if !s.Total.Equal(decimal.NewFromInt(250)) {
		t.Errorf("total %s, want 250 (manual override)", s.Total)
	}
	if !s.Rooms[0].Items[0].Manual {
		t.Error("item must be marked as manually costed")
	}
}

func TestAggregateEstimateMidpoint(t *testing.T) {
	rooms := []models.Room{{
		Name: "Bath",
		Photos: []models.Photo{{
			Problems: []models.Problem{{
				Description:      "Leaking faucet",
				EstimatedCostMin: f(100),
				EstimatedCostMax: f(201),
			}},
		}},
	}}

	s := Aggregate(rooms)
	if !s.Total.Equal(decimal.NewFromFloat(150.50)) {
		t.Errorf("total %s, want 150.50 (range midpoint)", s.Total)
	}
}

func TestAggregateTotalsAndExclusions(t *testing.T) {
	rooms := []models.Room{
		{
			Name: "Kitchen",
			Photos: []models.Photo{{
				Problems: []models.Problem{
					{Description: "A", ManualCost: f(100)},
					{Description: "B", EstimatedCostMin: f(50), EstimatedCostMax: f(150)},
					{Description: "C"}, // no estimate
				},
			}},
		},
		{
			Name: "Bedroom",
			Photos: []models.Photo{{
				Problems: []models.Problem{
					{Description: "D", ManualCost: f(40)},
				},
			}},
		},
		{Name: "Hallway"}, // no problems at all
	}

	s := Aggregate(rooms)

	// Report total equals the sum of room subtotals.
	sum := decimal.Zero
	for _, r := range s.Rooms {
		sum = sum.Add(r.Subtotal)
	}
	if !s.Total.Equal(sum) {
		t.Errorf("total %s does not match room subtotal sum %s", s.Total, sum)
	}
	if !s.Total.Equal(decimal.NewFromInt(240)) {
		t.Errorf("total %s, want 240", s.Total)
	}
	if s.WithoutEstimate != 1 {
		t.Errorf("without estimate %d, want 1", s.WithoutEstimate)
	}
	if s.Total.IsNegative() {
		t.Error("total must never be negative")
	}
	if s.Rooms[2].HasCosts() {
		t.Error("a room with no costed problems must not report costs")
	}
}

func TestAggregateMalformedCostsBecomeNoEstimate(t *testing.T) {
	rooms := []models.Room{{
		Name: "Garage",
		Photos: []models.Photo{{
			Problems: []models.Problem{
				{Description: "negative manual", ManualCost: f(-10)},
				{Description: "inverted range", EstimatedCostMin: f(500), EstimatedCostMax: f(100)},
				{Description: "negative range", EstimatedCostMin: f(-5), EstimatedCostMax: f(10)},
			},
		}},
	}}

	s := Aggregate(rooms)
	if s.HasCosts() {
		t.Error("malformed costs must not contribute to totals")
	}
	if s.WithoutEstimate != 3 {
		t.Errorf("without estimate %d, want 3", s.WithoutEstimate)
	}
}

func TestZeroCostReportSuppressesSummary(t *testing.T) {
	s := Aggregate([]models.Room{{Name: "Empty"}})
	if s.HasCosts() {
		t.Error("a zero-cost report must suppress the cost summary")
	}
}

func TestFormatterGroupingAndDecimals(t *testing.T) {
	fm := NewFormatter("en-US", "$")

	testCases := []struct {
		in       decimal.Decimal
		expected string
	}{
		{decimal.NewFromInt(0), "$0.00"},
		{decimal.NewFromFloat(1234.5), "$1,234.50"},
		{decimal.NewFromFloat(1000000), "$1,000,000.00"},
		{decimal.NewFromFloat(99.999), "$100.00"},
	}
	for _, tc := range testCases {
		if got := fm.Format(tc.in); got != tc.expected {
			t.Errorf("Format(%s) = %q, want %q", tc.in, got, tc.expected)
		}
	}
}

func TestFormatterBadLocaleFallsBack(t *testing.T) {
	fm := NewFormatter("not-a-locale!!", "$")
	if got := fm.Format(decimal.NewFromFloat(1234.5)); got != "$1,234.50" {
		t.Errorf("fallback formatting = %q, want en-US grouping", got)
	}
}
