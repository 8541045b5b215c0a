package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cozy/blockedit/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCommand(a *app) *cobra.Command {
	var formatName, output string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a document to markdown, html or yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := store.ParseFormat(formatName)
			if err != nil {
				return err
			}
			doc, err := store.Load(args[0])
			if err != nil {
				return err
			}
			if output != "" {
				if err := store.Save(output, doc); err != nil {
					return err
				}
				a.logger.Info("document exported", zap.String("path", output))
				return nil
			}
			data, err := store.Encode(doc, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", string(store.FormatMarkdown), "output format: markdown, html or yaml")
	cmd.Flags().StringVarP(&output, "out", "o", "", "write to this file instead of the standard output, in the format of its extension")
	return cmd
}

func newImportCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "import <file.md>",
		Short: "Import a markdown document",
		Long: `Import a markdown document. The blocks get fresh ids, and the document is
written as yaml, next to the markdown file unless --out is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			format, err := store.FormatOf(input)
			if err != nil {
				return err
			}
			if format != store.FormatMarkdown {
				return fmt.Errorf("cannot import %s: not a markdown file", input)
			}
			doc, err := store.Load(input)
			if err != nil {
				return err
			}
			if output == "" {
				output = replaceExt(input, ".yaml")
			}
			if err := store.Save(output, doc); err != nil {
				return err
			}
			a.logger.Info("document imported", zap.String("path", output), zap.Int("blocks", doc.Len()))
			fmt.Fprintf(cmd.OutOrStdout(), "%d blocks written to %s\n", doc.Len(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "the yaml file to write")
	return cmd
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
