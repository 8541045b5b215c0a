// Package list exports the nesting rules of to-do items. A to-do can be
// indented at most one level deeper than the to-do just above it, and a
// to-do that follows another type of block cannot be indented.
package list

import "github.com/cozy/blockedit/model"

// MaxIndentation returns the deepest indentation allowed for a to-do that
// follows prev.
func MaxIndentation(prev *model.Block) int {
	if prev == nil || prev.Type != model.TypeTodo {
		return 0
	}
	return prev.Indentation + 1
}

// CanIndent tells if the to-do with the given id can be indented one more
// level.
func CanIndent(doc *model.Document, id string) bool {
	b, _ := doc.Find(id)
	if b == nil || b.Type != model.TypeTodo {
		return false
	}
	return b.Indentation < MaxIndentation(doc.Previous(id))
}

// CanOutdent tells if the to-do with the given id is indented.
func CanOutdent(doc *model.Document, id string) bool {
	b, _ := doc.Find(id)
	return b != nil && b.Type == model.TypeTodo && b.Indentation > 0
}
