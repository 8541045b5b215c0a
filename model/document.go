package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyID is returned when a block has no identifier.
	ErrEmptyID = errors.New("block has an empty id")
	// ErrDuplicateID is returned when two blocks share an identifier.
	ErrDuplicateID = errors.New("duplicate block id")
)

// A Document is the ordered list of blocks being edited. The order of the
// blocks defines their vertical rendering order.
//
// Like blocks, documents are persistent data structures, and you should not
// mutate them or their content. Every mutation returns a new document that
// shares the untouched blocks with the old one.
type Document struct {
	blocks []*Block
}

// EmptyDocument is a document without blocks.
var EmptyDocument = &Document{}

// NewDocument creates a document from the given blocks. It fails when a
// block has no id or when two blocks have the same id.
func NewDocument(blocks ...*Block) (*Document, error) {
	seen := make(map[string]struct{}, len(blocks))
	content := make([]*Block, 0, len(blocks))
	for _, b := range blocks {
		if b.ID == "" {
			return nil, ErrEmptyID
		}
		if _, ok := seen[b.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, b.ID)
		}
		seen[b.ID] = struct{}{}
		content = append(content, b.Normalized())
	}
	return &Document{blocks: content}, nil
}

// MustDocument is like NewDocument but panics on error. It is meant for
// seeds and tests.
func MustDocument(blocks ...*Block) *Document {
	doc, err := NewDocument(blocks...)
	if err != nil {
		panic(err)
	}
	return doc
}

// Len is the number of blocks in the document.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Block returns the block at the given index. It panics when the index is
// out of range.
func (d *Document) Block(index int) *Block {
	if index < 0 || index >= len(d.blocks) {
		panic(fmt.Errorf("index %d out of range for %v", index, d))
	}
	return d.blocks[index]
}

// Blocks returns a copy of the list of blocks.
func (d *Document) Blocks() []*Block {
	cpy := make([]*Block, len(d.blocks))
	copy(cpy, d.blocks)
	return cpy
}

// ForEach calls f for every block, with its index.
func (d *Document) ForEach(f func(block *Block, index int)) {
	for i, b := range d.blocks {
		f(b, i)
	}
}

// IndexOf returns the index of the block with the given id, or -1.
func (d *Document) IndexOf(id string) int {
	for i, b := range d.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the block with the given id and its index. The block is nil
// and the index -1 when there is no such block.
func (d *Document) Find(id string) (*Block, int) {
	i := d.IndexOf(id)
	if i < 0 {
		return nil, -1
	}
	return d.blocks[i], i
}

// Previous returns the block before the one with the given id, if any.
func (d *Document) Previous(id string) *Block {
	i := d.IndexOf(id)
	if i <= 0 {
		return nil
	}
	return d.blocks[i-1]
}

// Insert returns a new document with the block inserted at the given index.
// The index is clamped to the bounds of the document. It fails when the id
// of the block is already used.
func (d *Document) Insert(index int, block *Block) (*Document, error) {
	if block.ID == "" {
		return nil, ErrEmptyID
	}
	if d.IndexOf(block.ID) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, block.ID)
	}
	if index < 0 {
		index = 0
	}
	if index > len(d.blocks) {
		index = len(d.blocks)
	}
	content := make([]*Block, 0, len(d.blocks)+1)
	content = append(content, d.blocks[:index]...)
	content = append(content, block.Normalized())
	content = append(content, d.blocks[index:]...)
	return &Document{blocks: content}, nil
}

// Remove returns a new document without the block with the given id. The
// second return value is false, and the document unchanged, when there is no
// such block.
func (d *Document) Remove(id string) (*Document, bool) {
	i := d.IndexOf(id)
	if i < 0 {
		return d, false
	}
	content := make([]*Block, 0, len(d.blocks)-1)
	content = append(content, d.blocks[:i]...)
	content = append(content, d.blocks[i+1:]...)
	return &Document{blocks: content}, true
}

// Replace returns a new document where the block with the same id as the
// given one is replaced by it.
func (d *Document) Replace(block *Block) (*Document, bool) {
	i := d.IndexOf(block.ID)
	if i < 0 {
		return d, false
	}
	content := d.Blocks()
	content[i] = block
	return &Document{blocks: content}, true
}

// Move returns a new document where the block with the given id has been
// removed and reinserted at index to. The other blocks keep their relative
// order.
func (d *Document) Move(id string, to int) (*Document, bool) {
	from := d.IndexOf(id)
	if from < 0 || to < 0 || to >= len(d.blocks) {
		return d, false
	}
	if from == to {
		return d, true
	}
	moved := d.blocks[from]
	content := make([]*Block, 0, len(d.blocks))
	content = append(content, d.blocks[:from]...)
	content = append(content, d.blocks[from+1:]...)
	content = append(content[:to], append([]*Block{moved}, content[to:]...)...)
	return &Document{blocks: content}, true
}

// Eq tests whether two documents have the same blocks in the same order.
func (d *Document) Eq(other *Document) bool {
	if d == other {
		return true
	}
	if len(d.blocks) != len(other.blocks) {
		return false
	}
	for i := range d.blocks {
		if !d.blocks[i].Eq(other.blocks[i]) {
			return false
		}
	}
	return true
}

// String returns a string representation of this document for debugging
// purposes.
func (d *Document) String() string {
	parts := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		parts[i] = b.String()
	}
	return "doc(" + strings.Join(parts, ", ") + ")"
}
