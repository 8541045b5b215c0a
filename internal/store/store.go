// Package store reads and writes documents on disk. The format is chosen by
// the extension of the file: YAML keeps every field of the blocks, markdown
// is meant for exchanging with other tools, and HTML is export only.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cozy/blockedit/markdown"
	"github.com/cozy/blockedit/model"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for the files whose format is not supported.
var ErrUnknownFormat = errors.New("unknown format")

// Format is a file format.
type Format string

// Supported formats.
const (
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// FormatOf returns the format of a file, from its extension.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// file is the YAML layout of a document.
type file struct {
	Blocks []*model.Block `yaml:"blocks"`
}

// Encode serializes a document.
func Encode(doc *model.Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(file{Blocks: doc.Blocks()})
	case FormatMarkdown:
		return []byte(markdown.DefaultSerializer.Serialize(doc)), nil
	case FormatHTML:
		out, err := model.RenderHTML(doc)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// Decode parses a document. Markdown documents get fresh block ids.
func Decode(data []byte, format Format) (*model.Document, error) {
	switch format {
	case FormatYAML:
		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("invalid document: %w", err)
		}
		return model.NewDocument(f.Blocks...)
	case FormatMarkdown:
		return markdown.ParseMarkdown(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// Load reads a document from a file.
func Load(path string) (*model.Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", path, err)
	}
	return doc, nil
}

// Save writes a document to a file. The content is written in a temporary
// file first, so that a failure does not lose the previous version.
func Save(path string, doc *model.Document) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, format)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Seed returns the document shown when there is nothing to open.
func Seed() *model.Document {
	return model.MustDocument(
		model.NewBlock(model.NewBlockID(), model.TypeText, "This is a text block."),
		model.NewHeading(model.NewBlockID(), 1, "This is a heading block."),
		model.NewTodo(model.NewBlockID(), "This is a to-do block.", false, 0),
	)
}
