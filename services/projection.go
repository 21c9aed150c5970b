package services

import (
	"sort"

	"talkboard_server/models"
)

// Projection is the grouped view of a full message snapshot: top-level thread
// roots plus one reply list per root id. Grouping keeps soft-deleted records,
// so a Projection is always an exact repartition of the snapshot it came
// from; deletion filtering happens later, in Render.
type Projection struct {
	TopLevel        []models.Message
	RepliesByParent map[string][]models.Message
}

// RenderedBoard is what the board screen actually shows: the ward-filtered
// thread roots and the reply groups, both with soft-deleted entries removed.
type RenderedBoard struct {
	TopLevel        []models.Message            `json:"topLevel"`
	RepliesByParent map[string][]models.Message `json:"repliesByParent"`
}

// Recompute rebuilds the board projection from a full snapshot of the message
// collection. The snapshot is an unordered bag; the result depends only on
// its contents, never on delivery order, so the feed may hand over a fresh
// snapshot on every change and get identical output for identical contents.
func Recompute(snapshot []models.Message) Projection {
	projection := Projection{
		RepliesByParent: make(map[string][]models.Message),
	}

	for _, msg := range snapshot {
		if msg.IsReply() {
			parentID := *msg.ParentID
			projection.RepliesByParent[parentID] = append(projection.RepliesByParent[parentID], msg)
		} else {
			projection.TopLevel = append(projection.TopLevel, msg)
		}
	}

	sortByCreatedAtDesc(projection.TopLevel)
	for _, replies := range projection.RepliesByParent {
		sortByCreatedAtDesc(replies)
	}

	return projection
}

// Render filters the projection down to what gets displayed: soft-deleted
// messages drop out of both groups, and the ward filter applies to the
// top-level list only. Replies under a deleted root are not cascade-hidden;
// each message stands or falls on its own isDeleted flag.
func (p Projection) Render(ward string) RenderedBoard {
	board := RenderedBoard{
		TopLevel:        ApplyWardFilter(filterDeleted(p.TopLevel), ward),
		RepliesByParent: make(map[string][]models.Message),
	}

	for parentID, replies := range p.RepliesByParent {
		visible := filterDeleted(replies)
		if len(visible) > 0 {
			board.RepliesByParent[parentID] = visible
		}
	}

	return board
}

// Replies returns the rendered reply list for one root id, soft-deleted
// entries removed. Lookups succeed for any id, including ids of deleted
// roots and ids no message references.
func (p Projection) Replies(parentID string) []models.Message {
	return filterDeleted(p.RepliesByParent[parentID])
}

// ApplyWardFilter keeps only messages whose ward equals the selected one.
// A ward outside the known set simply matches nothing.
func ApplyWardFilter(topLevel []models.Message, ward string) []models.Message {
	filtered := make([]models.Message, 0, len(topLevel))
	for _, msg := range topLevel {
		if msg.Ward == ward {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

func filterDeleted(messages []models.Message) []models.Message {
	visible := make([]models.Message, 0, len(messages))
	for _, msg := range messages {
		if !msg.IsDeleted {
			visible = append(visible, msg)
		}
	}
	return visible
}

// Newest first. Equal timestamps fall back to id so any permutation of the
// same snapshot sorts identically.
func sortByCreatedAtDesc(messages []models.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt != messages[j].CreatedAt {
			return messages[i].CreatedAt > messages[j].CreatedAt
		}
		return messages[i].ID > messages[j].ID
	})
}
