// Package cli holds the cobra commands of blockedit.
package cli

import (
	"github.com/cozy/blockedit/internal/config"
	"github.com/cozy/blockedit/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app holds what the commands share once the config is loaded.
type app struct {
	configFile string
	viper      *viper.Viper
	config     *config.Config
	logger     *zap.Logger
}

// NewRootCommand creates the blockedit command and its subcommands.
func NewRootCommand(version string) *cobra.Command {
	a := &app{viper: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "blockedit",
		Short:         "Edit block documents in the terminal",
		Long:          "blockedit edits documents made of text, heading and to-do blocks,\nand converts them from and to markdown.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().
		StringVar(&a.configFile, "config", "", "config file (default is $HOME/.blockedit.yaml)")
	root.PersistentFlags().
		String("log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().
		String("log-file", "", "write the logs to this file")

	_ = a.viper.BindPFlag(config.KeyLogLevel, root.PersistentFlags().Lookup("log-level"))
	_ = a.viper.BindPFlag(config.KeyLogFile, root.PersistentFlags().Lookup("log-file"))

	root.AddCommand(
		newEditCommand(a),
		newExportCommand(a),
		newImportCommand(a),
		newVersionCommand(version),
	)
	return root
}

// init loads the config and builds the logger. The editor takes the whole
// screen, so the console logs are only kept for the other commands.
func (a *app) init(cmd *cobra.Command) error {
	if err := config.Init(a.viper, a.configFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.viper)
	if err != nil {
		return err
	}
	a.config = cfg

	log, err := logger.New(logger.Options{
		File:       cfg.Log.File,
		Level:      cfg.Log.Level,
		Console:    cfg.Log.Console && cmd.Name() != "edit",
		ConsoleOut: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	a.logger = log
	a.logger.Debug("config loaded", zap.String("file", a.viper.ConfigFileUsed()), zap.String("command", cmd.Name()))
	return nil
}
