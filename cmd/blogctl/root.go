package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/db"
	"github.com/debemdeboas/mdblog/internal/editor"
	"github.com/debemdeboas/mdblog/internal/logger"
	"github.com/debemdeboas/mdblog/internal/render"
	"github.com/debemdeboas/mdblog/internal/repository"
	"github.com/debemdeboas/mdblog/internal/theme"
)

// app is what every subcommand works with once the root command has
// opened storage.
type app struct {
	store      repository.Storage
	controller *editor.Controller
	out        io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configFile string
	var yes, verbose bool

	root := &cobra.Command{
		Use:          "blogctl",
		Short:        "Manage markdown blog posts",
		Long:         `List, import, export, render and delete the posts of the markdown blog editor.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd, configFile, yes, verbose)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default $MDBLOG_CONFIG or config.yaml)")
	root.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "answer yes to every confirmation")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at the configured level instead of warnings only")

	root.AddCommand(
		newListCmd(a),
		newImportCmd(a),
		newExportCmd(a),
		newRenderCmd(a),
		newRmCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command, configFile string, yes, verbose bool) error {
	_ = godotenv.Load()

	if configFile == "" {
		configFile = os.Getenv(config.EnvConfigPath)
	}
	if configFile == "" {
		configFile = config.DefaultConfigPath
	}
	if err := config.LoadConfig(configFile); err != nil {
		return err
	}
	cfg := config.AppConfig

	logCfg := cfg.Logging
	if !verbose {
		logCfg.Level = "warn"
	}
	l := logger.NewWithWriter(logCfg, cmd.ErrOrStderr())
	config.SetLogger(l)
	db.SetLogger(l)
	repository.SetLogger(l)
	render.SetLogger(l)
	editor.SetLogger(l)

	store, err := repository.Open(cmd.Context(), cfg.Storage)
	if err != nil {
		return fmt.Errorf(config.ErrOpenStorageFmt, err)
	}

	var confirmer editor.Confirmer = promptConfirmer{in: cmd.InOrStdin(), out: cmd.ErrOrStderr()}
	if yes {
		confirmer = editor.AlwaysConfirm
	}

	a.store = store
	a.out = cmd.OutOrStdout()
	a.controller = editor.New(store,
		editor.WithEditorConfig(cfg.Editor),
		editor.WithDefaultTheme(theme.Parse(cfg.Theme.Default)),
		editor.WithConfirmer(confirmer),
		editor.WithNotifier(noticePrinter(cmd.ErrOrStderr())),
	)
	a.controller.Init(cmd.Context())
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func (a *app) dispatch(ctx context.Context, cmd editor.Command) (editor.Result, error) {
	return a.controller.Dispatch(ctx, cmd)
}

// problem turns a warning or danger notice into an error so the process
// exits non-zero.
func problem(res editor.Result) error {
	for _, n := range res.Notices {
		if n.Level == editor.LevelWarning || n.Level == editor.LevelDanger {
			return errors.New(n.Message)
		}
	}
	return nil
}
