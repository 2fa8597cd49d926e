package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/config"
	"github.com/ContextMapper/context-mapper-dsl-sub003/internal/logging"
)

// app is the state shared by all commands.
type app struct {
	configDir string
	verbose   bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:          "cml-refactor",
		Short:        "Semantic refactorings for Context Mapper models",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", ".", "Directory holding "+config.FileName)
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(listCmd(), checkCmd(a), formatCmd(a), refactorCmd(a), scriptCmd(a), dumpCmd(a))

	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configDir)
	if err != nil {
		return err
	}

	if a.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg, a.logger = cfg, logger

	return nil
}

// document returns the document named by flag, falling back to the
// configured default, which is relative to the config directory.
func (a *app) document(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	if a.cfg.Document == "" {
		return "", errors.New("no document given: use --document or set document in " + config.FileName)
	}

	if filepath.IsAbs(a.cfg.Document) {
		return a.cfg.Document, nil
	}

	return filepath.Join(a.configDir, a.cfg.Document), nil
}
