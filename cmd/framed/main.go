package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"framed/internal/app"
	"framed/internal/config"
	"framed/internal/surface"
	"framed/internal/surface/tcellscreen"
	"framed/internal/telemetry"
	"framed/internal/termsize"
)

//go:embed demo.toml
var demoLayout string

// Config holds the command line flags.
type Config struct {
	Backend string
	Layout  string
	Debug   bool
	LogFile string
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "framed [flags]",
		Short: "Tile panels of widgets on a terminal",
		Long: `framed arranges panels on the terminal according to a layout file and
keeps them laid out as the terminal is resized.`,
		Example: `  # Show the built-in demo
  framed

  # Show a layout file with the tcell backend
  framed --config layout.toml --backend tcell

  # Layout file from the environment, debug logging to a file
  FRAMED_CONFIG=layout.toml framed --debug --log-file framed.log`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	rootCmd.Flags().StringVarP(&cfg.Backend, "backend", "b", "tea", "Terminal backend: tea or tcell")
	rootCmd.Flags().StringVarP(&cfg.Layout, "config", "c", "", "Layout file (defaults to $"+config.EnvPath+", then the built-in demo)")
	rootCmd.Flags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&cfg.LogFile, "log-file", "framed.log", "Path to the log file")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) error {
	logFile, err := tea.LogToFile(cfg.LogFile, "framed")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close() //nolint:errcheck

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})))

	layout, err := loadLayout(cfg.Layout)
	if err != nil {
		return err
	}

	exporter, err := telemetry.NewExporter(ctx)
	if err != nil {
		return fmt.Errorf("start trace exporter: %w", err)
	}
	defer exporter.Shutdown(context.Background()) //nolint:errcheck

	switch cfg.Backend {
	case "tea":
		return runTea(layout, exporter)
	case "tcell":
		return runTcell(ctx, layout, exporter)
	default:
		return fmt.Errorf("unknown backend %q (want tea or tcell)", cfg.Backend)
	}
}

func loadLayout(flagPath string) (*config.Layout, error) {
	path := config.Path(flagPath)
	if path == "" {
		slog.Info("using built-in demo layout")
		return config.Parse(demoLayout)
	}
	slog.Info("loading layout", "path", path)
	return config.Load(path)
}

func runTea(layout *config.Layout, exporter *telemetry.Exporter) error {
	size := termsize.Stdout()
	canvas := surface.NewCanvas(size.Y, size.X)
	a := app.New(surface.NewCompositor(canvas), app.WithTracer(exporter.Tracer()))
	if err := a.Apply(layout); err != nil {
		return err
	}
	return a.RunTea(canvas)
}

func runTcell(ctx context.Context, layout *config.Layout, exporter *telemetry.Exporter) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	a := app.New(surface.NewCompositor(tcellscreen.New(screen)), app.WithTracer(exporter.Tracer()))
	if err := a.Apply(layout); err != nil {
		return err
	}
	return a.RunScreen(ctx, screen)
}
