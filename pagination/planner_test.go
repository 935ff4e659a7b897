package pagination

import (
	"fmt"
	"testing"

	"report-generator-service/models"
)

func TestCapacity(t *testing.T) {
	testCases := []struct {
		layout   models.PhotoLayout
		expected int
	}{
		{models.Layout1x1, 1},
		{models.Layout2x2, 4},
		{models.Layout2x3, 6},
		{models.Layout2x4, 8},
	}

	for _, tc := range testCases {
		if got := Capacity(tc.layout); got != tc.expected {
			t.Errorf("Capacity(%s) = %d, want %d", tc.layout, got, tc.expected)
		}
	}
}

func makeRoom(name string, photos int) models.Room {
	room := models.Room{Name: name}
	for i := 0; i < photos; i++ {
		room.Photos = append(room.Photos, models.Photo{URL: fmt.Sprintf("https://example.com/%s/%d.jpg", name, i)})
	}
	return room
}

func TestSplitRoomInvariants(t *testing.T) {
	layouts := []models.PhotoLayout{models.Layout1x1, models.Layout2x2, models.Layout2x3, models.Layout2x4}

	for _, layout := range layouts {
		capacity := Capacity(layout)
		for n := 0; n <= 25; n++ {
			room := makeRoom("room", n)
			chunks := SplitRoom(0, &room, capacity)

			expectedChunks := (n + capacity - 1) / capacity
			if expectedChunks < 1 {
				expectedChunks = 1
			}
			if len(chunks) != expectedChunks {
				t.Fatalf("layout %s, n=%d: got %d chunks, want %d", layout, n, len(chunks), expectedChunks)
			}

			total := 0
			for i, c := range chunks {
				total += len(c.Photos)
				if len(c.Photos) > capacity {
					t.Errorf("layout %s, n=%d: chunk %d exceeds capacity", layout, n, i)
				}
				if c.Index != i+1 {
					t.Errorf("chunk index %d, want %d", c.Index, i+1)
				}
				if c.Total != expectedChunks {
					t.Errorf("chunk total %d, want %d", c.Total, expectedChunks)
				}
				// Every chunk but the last is full
				if i < len(chunks)-1 && len(c.Photos) != capacity {
					t.Errorf("layout %s, n=%d: non-final chunk %d holds %d photos", layout, n, i, len(c.Photos))
				}
			}
			if total != n {
				t.Errorf("layout %s, n=%d: chunk sizes sum to %d", layout, n, total)
			}
		}
	}
}

func TestSplitRoomKitchenScenario(t *testing.T) {
	// Kitchen with 7 photos at 2x2 (capacity 4) paginates as [4, 3].
	room := makeRoom("Kitchen", 7)
	chunks := SplitRoom(0, &room, Capacity(models.Layout2x2))

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if len(chunks[0].Photos) != 4 || len(chunks[1].Photos) != 3 {
		t.Errorf("chunk sizes [%d, %d], want [4, 3]", len(chunks[0].Photos), len(chunks[1].Photos))
	}
	if chunks[0].TitleSuffix() != "(1/2)" {
		t.Errorf("first suffix %q, want %q", chunks[0].TitleSuffix(), "(1/2)")
	}
	if chunks[1].TitleSuffix() != "(2/2)" {
		t.Errorf("second suffix %q, want %q", chunks[1].TitleSuffix(), "(2/2)")
	}
	if !chunks[0].First() || chunks[1].First() {
		t.Error("detail text must attach to the first chunk only")
	}
}

func TestSplitRoomZeroPhotos(t *testing.T) {
	room := makeRoom("Empty", 0)
	chunks := SplitRoom(0, &room, 4)

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want exactly 1 for a zero-photo room", len(chunks))
	}
	if len(chunks[0].Photos) != 0 {
		t.Errorf("zero-photo chunk holds %d photos", len(chunks[0].Photos))
	}
	if chunks[0].TitleSuffix() != "" {
		t.Errorf("single chunk must not carry a title suffix, got %q", chunks[0].TitleSuffix())
	}
}

func TestPlanPreservesRoomOrder(t *testing.T) {
	rooms := []models.Room{makeRoom("Kitchen", 5), makeRoom("Bedroom", 0), makeRoom("Bath", 2)}
	plan := Plan(rooms, models.Layout2x2)

	if len(plan) != 3 {
		t.Fatalf("got %d room plans, want 3", len(plan))
	}
	for i, chunks := range plan {
		for _, c := range chunks {
			if c.RoomIndex != i {
				t.Errorf("chunk room index %d, want %d", c.RoomIndex, i)
			}
		}
	}
	if len(plan[0]) != 2 || len(plan[1]) != 1 || len(plan[2]) != 1 {
		t.Errorf("chunk counts [%d %d %d], want [2 1 1]", len(plan[0]), len(plan[1]), len(plan[2]))
	}
}
