package compose

import (
	"strings"

	"report-generator-service/assets"
	"report-generator-service/models"
	"report-generator-service/pagination"
)

// Comparison bundles the resolved inputs for a comparison plan.
type Comparison struct {
	Pair         *models.ComparisonInput
	BeforeAssets [][]assets.ResolvedAsset // per before-room, aligned with photos
	AfterAssets  [][]assets.ResolvedAsset // per after-room, aligned with photos
}

// matchedRoom joins a before room with its after counterpart. Either index is
// -1 when the room exists on one side only.
type matchedRoom struct {
	name        string
	beforeIndex int
	afterIndex  int
}

// ComposeComparison builds the page plan for the comparison variant: the
// shared cover/info/signature sections plus, per room, paired before/after
// photo pages and a differences page. Room order follows the "before"
// inspection, with after-only rooms appended in their authored order.
func (c *Composer) ComposeComparison(in Comparison) []Page {
	sections := c.cfg.Sections
	var plan []Page

	if sections.ShowCover {
		afterInfo := in.Pair.After.Inspection
		plan = append(plan, Page{Kind: SectionCover, Cover: &CoverData{
			Inspection:  in.Pair.Before.Inspection,
			Property:    in.Pair.Before.Property,
			Subtitle:    "Inspection Comparison Report",
			BeforeAfter: &afterInfo,
		}})
	}

	if sections.ShowInfo {
		plan = append(plan, Page{Kind: SectionInfo, Info: &InfoData{
			Heading:    "About This Report",
			Paragraphs: infoParagraphs,
		}})
	}

	for _, m := range matchRooms(in.Pair.Before.Rooms, in.Pair.After.Rooms) {
		if sections.ShowPhotos {
			plan = append(plan, c.compareRoomPages(&in, m)...)
		}
		if diff := c.differencesPage(&in, m); diff != nil {
			plan = append(plan, Page{Kind: SectionDifferences, Differences: diff})
		}
	}

	if sections.ShowSignatures {
		plan = append(plan, Page{Kind: SectionSignatures, Signatures: &SignaturesData{
			InspectorName: in.Pair.After.Inspection.InspectorName,
			ClientName:    in.Pair.After.Inspection.ClientName,
		}})
	}

	return plan
}

// matchRooms pairs rooms across the two inspections by case-insensitive name.
func matchRooms(before, after []models.Room) []matchedRoom {
	afterByName := make(map[string]int, len(after))
	for i := range after {
		afterByName[strings.ToLower(strings.TrimSpace(after[i].Name))] = i
	}

	used := make(map[int]bool, len(after))
	var out []matchedRoom

	for i := range before {
		key := strings.ToLower(strings.TrimSpace(before[i].Name))
		ai, ok := afterByName[key]
		if ok {
			used[ai] = true
			out = append(out, matchedRoom{name: before[i].Name, beforeIndex: i, afterIndex: ai})
		} else {
			out = append(out, matchedRoom{name: before[i].Name, beforeIndex: i, afterIndex: -1})
		}
	}

	for i := range after {
		if !used[i] {
			out = append(out, matchedRoom{name: after[i].Name, beforeIndex: -1, afterIndex: i})
		}
	}

	return out
}

// compareRoomPages paginates the room's photo pairs. Each page row holds one
// before/after pair, so pairs per page is half the configured layout capacity
// with a floor of one.
func (c *Composer) compareRoomPages(in *Comparison, m matchedRoom) []Page {
	var beforePhotos, afterPhotos []models.Photo
	var beforeAssets, afterAssets []assets.ResolvedAsset
	var note string

	if m.beforeIndex >= 0 {
		beforePhotos = in.Pair.Before.Rooms[m.beforeIndex].Photos
		beforeAssets = in.BeforeAssets[m.beforeIndex]
	} else {
		note = "Not present in the first inspection."
	}
	if m.afterIndex >= 0 {
		afterPhotos = in.Pair.After.Rooms[m.afterIndex].Photos
		afterAssets = in.AfterAssets[m.afterIndex]
	} else {
		note = "Not present in the follow-up inspection."
	}

	nPairs := len(beforePhotos)
	if len(afterPhotos) > nPairs {
		nPairs = len(afterPhotos)
	}

	perPage := pagination.Capacity(c.cfg.Sections.PhotoLayout) / 2
	if perPage < 1 {
		perPage = 1
	}
	totalPages := (nPairs + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	var plan []Page
	for page := 0; page < totalPages; page++ {
		start := page * perPage
		end := start + perPage
		if end > nPairs {
			end = nPairs
		}

		var pairs []PhotoPair
		for i := start; i < end; i++ {
			pair := PhotoPair{}
			if i < len(beforePhotos) {
				pair.Before = &beforePhotos[i]
				pair.BeforeAsset = &beforeAssets[i]
			}
			if i < len(afterPhotos) {
				pair.After = &afterPhotos[i]
				pair.AfterAsset = &afterAssets[i]
			}
			pairs = append(pairs, pair)
		}

		title := m.name
		if totalPages > 1 {
			title += " " + (&pagination.Chunk{Index: page + 1, Total: totalPages}).TitleSuffix()
		}

		plan = append(plan, Page{Kind: SectionRoom, Compare: &CompareRoomData{
			RoomName: m.name,
			Title:    title,
			Pairs:    pairs,
			Note:     note,
		}})
	}

	return plan
}

// differencesPage computes the per-room problem delta. Rooms with no problems
// on either side produce no differences page.
func (c *Composer) differencesPage(in *Comparison, m matchedRoom) *DifferencesData {
	var before, after []models.Problem
	if m.beforeIndex >= 0 {
		before = roomProblems(&in.Pair.Before.Rooms[m.beforeIndex])
	}
	if m.afterIndex >= 0 {
		after = roomProblems(&in.Pair.After.Rooms[m.afterIndex])
	}
	if len(before) == 0 && len(after) == 0 {
		return nil
	}

	afterKeys := make(map[string]bool, len(after))
	for _, p := range after {
		afterKeys[problemKey(&p)] = true
	}
	beforeKeys := make(map[string]bool, len(before))
	for _, p := range before {
		beforeKeys[problemKey(&p)] = true
	}

	diff := &DifferencesData{RoomName: m.name}
	for _, p := range before {
		if afterKeys[problemKey(&p)] {
			diff.Persisting = append(diff.Persisting, p)
		} else {
			diff.Resolved = append(diff.Resolved, p)
		}
	}
	for _, p := range after {
		if !beforeKeys[problemKey(&p)] {
			diff.New = append(diff.New, p)
		}
	}

	return diff
}

// problemKey normalizes a problem for cross-inspection matching.
func problemKey(p *models.Problem) string {
	return strings.ToLower(strings.TrimSpace(p.Description))
}
