package cli

import (
	"errors"
	"fmt"
	"io/fs"

	tea "charm.land/bubbletea/v2"
	"github.com/cozy/blockedit/internal/store"
	"github.com/cozy/blockedit/internal/tui"
	"github.com/cozy/blockedit/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open a document in the terminal editor",
		Long: `Open a document in the terminal editor. The document is a .yaml or .md
file, the editor.document setting when none is given. A missing file starts
from the sample document, and is created on save.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.config.Editor.Document
			if len(args) > 0 {
				path = args[0]
			}
			doc, err := a.open(path)
			if err != nil {
				return err
			}

			m := tui.New(doc, tui.Options{
				Logger:        a.logger,
				ToolbarOffset: a.config.Editor.ToolbarOffset,
				HistoryLimit:  a.config.Editor.HistoryLimit,
				Save: func(d *model.Document) error {
					if err := store.Save(path, d); err != nil {
						return err
					}
					a.logger.Info("document saved", zap.String("path", path), zap.Int("blocks", d.Len()))
					return nil
				},
			})
			p := tea.NewProgram(m, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("editor failed: %w", err)
			}
			return nil
		},
	}
}

// open loads the document to edit. The sample document is returned for a
// file that does not exist yet.
func (a *app) open(path string) (*model.Document, error) {
	format, err := store.FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == store.FormatHTML {
		return nil, fmt.Errorf("cannot edit %s: html documents can only be exported", path)
	}
	doc, err := store.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Info("new document", zap.String("path", path))
		return store.Seed(), nil
	}
	if err != nil {
		return nil, err
	}
	a.logger.Info("document loaded", zap.String("path", path), zap.Int("blocks", doc.Len()))
	return doc, nil
}
