// Package pagination splits each room's photo set into fixed-capacity page
// chunks according to the configured photo-layout density.
package pagination

import (
	"fmt"

	"report-generator-service/models"
)

// Chunk is one page-sized subset of a room's photos. PhotoOffset indexes into
// the room's photo slice; Index is 1-based. A room always produces at least
// one chunk so its analysis text prints even with zero photos.
type Chunk struct {
	RoomIndex   int
	PhotoOffset int
	Photos      []models.Photo
	Index       int
	Total       int
}

// First reports whether this is the room's first chunk. Detail text (AI
// summary, problems, checklist) is attached to the first chunk only.
func (c *Chunk) First() bool {
	return c.Index == 1
}

// TitleSuffix returns the "(i/n)" suffix for multi-chunk rooms, or "".
func (c *Chunk) TitleSuffix() string {
	if c.Total <= 1 {
		return ""
	}
	return fmt.Sprintf("(%d/%d)", c.Index, c.Total)
}

// Capacity returns the number of photos that fit on one page for a layout.
func Capacity(layout models.PhotoLayout) int {
	switch layout {
	case models.Layout1x1:
		return 1
	case models.Layout2x3:
		return 6
	case models.Layout2x4:
		return 8
	default:
		return 4
	}
}

// SplitRoom chunks one room's photos at the given capacity. Every chunk holds
// exactly capacity photos except the last, which holds the remainder.
func SplitRoom(roomIndex int, room *models.Room, capacity int) []Chunk {
	if capacity < 1 {
		capacity = 1
	}
	n := len(room.Photos)
	total := (n + capacity - 1) / capacity
	if total < 1 {
		total = 1
	}

	chunks := make([]Chunk, 0, total)
	for i := 0; i < total; i++ {
		start := i * capacity
		end := start + capacity
		if end > n {
			end = n
		}
		chunks = append(chunks, Chunk{
			RoomIndex:   roomIndex,
			PhotoOffset: start,
			Photos:      room.Photos[start:end],
			Index:       i + 1,
			Total:       total,
		})
	}
	return chunks
}

// Plan chunks every room in input order at the capacity of the given layout.
func Plan(rooms []models.Room, layout models.PhotoLayout) [][]Chunk {
	capacity := Capacity(layout)
	out := make([][]Chunk, len(rooms))
	for i := range rooms {
		out[i] = SplitRoom(i, &rooms[i], capacity)
	}
	return out
}
