// Package cli implementiert das Kommandozeilenwerkzeug task-records.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"hufschlaeger.net/task-records/internal/config"
	"hufschlaeger.net/task-records/internal/exitcode"
	"hufschlaeger.net/task-records/internal/logging"
	"hufschlaeger.net/task-records/internal/notify"
	"hufschlaeger.net/task-records/internal/output"
	"hufschlaeger.net/task-records/internal/repository/apper"
	"hufschlaeger.net/task-records/internal/repository/categories"
	"hufschlaeger.net/task-records/internal/repository/tasks"
)

// app hält Flags und die daraus gebauten Abhängigkeiten eines Aufrufs
type app struct {
	configFile   string
	verbose      bool
	outputFormat string

	out    io.Writer
	errOut io.Writer

	cfg     *config.Config
	logger  *slog.Logger
	factory *apper.Factory
	printer *output.Printer
}

// NewRootCommand baut den Befehlsbaum; out/errOut sind für Tests austauschbar
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "task-records",
		Short: "Tasks und Kategorien im Apper Record Store verwalten",
		Long: `task-records verwaltet Tasks und Kategorien im Apper Record Store.

Beispiele:
  task-records tasks list
  task-records tasks create --title "Buy milk" --priority High
  task-records tasks toggle 5
  task-records serve --addr :8080
  task-records import gitlab --project "user/repo" --milestone "v1.0"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Konfigurationsdatei (yaml, toml, json)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Ausführliche Ausgabe")
	rootCmd.PersistentFlags().StringVarP(&a.outputFormat, "output", "o", string(output.FormatTable), "Ausgabeformat: table, json, yaml")

	rootCmd.AddCommand(a.tasksCmd())
	rootCmd.AddCommand(a.categoriesCmd())
	rootCmd.AddCommand(a.serveCmd())
	rootCmd.AddCommand(a.importCmd())

	return rootCmd
}

// Execute führt die CLI aus und liefert den Exit-Code
func Execute(version string) int {
	rootCmd := NewRootCommand(os.Stdout, os.Stderr)
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return exitcode.For(err)
	}
	return exitcode.Success
}

// setup lädt die Konfiguration und baut Logger, Factory und Printer
func (a *app) setup() error {
	format, err := output.ParseFormat(a.outputFormat)
	if err != nil {
		return err
	}

	cfg, err := config.Load(a.configFile)
	if err != nil {
		return fmt.Errorf("%w: %w", exitcode.ErrConfig, err)
	}
	if a.verbose {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		cfg.PrintDebugInfo(a.errOut)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", exitcode.ErrConfig, err)
	}

	a.cfg = cfg
	a.logger = logging.New(cfg, a.errOut)
	a.factory = apper.NewFactory(cfg)
	a.printer = output.NewPrinter(a.out, format)
	return nil
}

func (a *app) notifier() notify.Notifier {
	return notify.NewConsole(a.errOut)
}

func (a *app) taskRepo() *tasks.Repository {
	return tasks.NewRepository(a.factory, a.notifier(), a.logger)
}

func (a *app) categoryRepo() *categories.Repository {
	return categories.NewRepository(a.factory, a.notifier(), a.logger)
}

// preRun ist der gemeinsame PreRunE aller Befehle, die den Store brauchen
func (a *app) preRun(*cobra.Command, []string) error {
	return a.setup()
}
