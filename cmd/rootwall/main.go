package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/rootwall/internal/config"
	"github.com/1broseidon/rootwall/internal/paint"
	"github.com/1broseidon/rootwall/internal/platform"
	"github.com/1broseidon/rootwall/internal/store"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "status":
			os.Exit(runStatus(args[1:]))
		case "pick":
			os.Exit(runPick(args[1:]))
		case "config":
			os.Exit(runConfig(args[1:]))
		case "mcp":
			os.Exit(runMCP(args[1:]))
		case "help", "-h", "--help":
			printMainUsage(os.Stdout)
			os.Exit(exitOK)
		}
	}
	os.Exit(runSet(args))
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rootwall [options] [IMAGE]")
	fmt.Fprintln(w, "       rootwall <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Paints IMAGE onto the X11 root window and remembers it. Without IMAGE the")
	fmt.Fprintln(w, "last stored wallpaper is painted again.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -m MODE      center, fill, max, scale or tile (default: fill)")
	fmt.Fprintln(w, "  -x N         horizontal offset (center and fill only)")
	fmt.Fprintln(w, "  -y N         vertical offset (center and fill only)")
	fmt.Fprintln(w, "  -c HEX       background colour, RGB or RRGGBB (default: 000000)")
	fmt.Fprintln(w, "  -d DISPLAY   X display (default: settings display, then $DISPLAY)")
	fmt.Fprintln(w, "  -config PATH settings file (default: ~/.config/rootwall/config.yaml)")
	fmt.Fprintln(w, "  -v           verbose logging")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  status              Show stored wallpaper and published root pixmap")
	fmt.Fprintln(w, "  pick IMAGE          Choose mode, colour and offsets interactively")
	fmt.Fprintln(w, "  config validate     Validate settings")
	fmt.Fprintln(w, "  config print        Print settings")
	fmt.Fprintln(w, "  config explain      Explain a settings value")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "  help                Show this help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Use ./NAME to paint an image whose name matches a command.")
}

// globalFlags are accepted by every command that touches the display.
type globalFlags struct {
	display    string
	configPath string
	verbose    bool
}

func (g *globalFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&g.display, "d", "", "X display")
	fs.StringVar(&g.configPath, "config", "", "Settings file path (default: ~/.config/rootwall/config.yaml)")
	fs.BoolVar(&g.verbose, "v", false, "Verbose logging")
}

// env is everything a command needs to paint.
type env struct {
	settings     *config.Config
	settingsPath string
	logger   *slog.Logger
	store    *store.Store
	painter  *paint.Painter
}

func newEnv(g globalFlags) (*env, error) {
	settingsPath := g.configPath
	if settingsPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		settingsPath = p
	}
	res, err := config.LoadFromPath(settingsPath)
	if err != nil {
		return nil, err
	}
	settings := res.Config

	level := settings.SlogLevel()
	if g.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger.Debug("settings loaded", "files", res.Files)

	st, err := store.Default()
	if err != nil {
		return nil, err
	}
	st.Logger = logger

	scaler, err := paint.ParseScaler(settings.Scaler)
	if err != nil {
		return nil, err
	}
	loadOpts := settings.LoadOptions()
	loadOpts.Logger = logger

	display := settings.Display
	if g.display != "" {
		display = g.display
	}

	return &env{
		settings:     settings,
		settingsPath: settingsPath,
		logger:       logger,
		store:        st,
		painter: &paint.Painter{
			Connect: platform.Connect,
			Load:    paint.Loader(loadOpts),
			Display: display,
			Scaler:  scaler,
			Logger:  logger,
		},
	}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSet(args []string) int {
	fs := flag.NewFlagSet("rootwall", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var g globalFlags
	g.register(fs)
	mode := fs.String("m", "", "Display mode")
	offsetX := fs.Int("x", 0, "Horizontal offset")
	offsetY := fs.Int("y", 0, "Vertical offset")
	color := fs.String("c", "", "Background colour")

	positional, err := parseInterleaved(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		printMainUsage(os.Stdout)
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "rootwall: %v\n\n", err)
		printMainUsage(os.Stderr)
		return exitUsage
	}
	if len(positional) > 1 {
		fmt.Fprintf(os.Stderr, "rootwall: too many arguments: %v\n\n", positional)
		printMainUsage(os.Stderr)
		return exitUsage
	}

	opts := wallpaper.Options{Color: *color}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "m":
			opts.Mode, opts.HasMode = *mode, true
		case "x":
			opts.OffsetX, opts.HasOffsetX = *offsetX, true
		case "y":
			opts.OffsetY, opts.HasOffsetY = *offsetY, true
		}
	})
	if len(positional) == 1 {
		opts.Image = positional[0]
	}

	e, err := newEnv(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rootwall:", err)
		return exitFailure
	}
	ctx, cancel := signalContext()
	defer cancel()
	return e.apply(ctx, opts, os.Stderr)
}

// apply resolves opts against the stored wallpaper, paints it and persists
// the result. A persistence failure is reported but does not fail the run.
func (e *env) apply(ctx context.Context, opts wallpaper.Options, stderr io.Writer) int {
	if opts.Image != "" {
		if !opts.HasMode {
			opts.Mode, opts.HasMode = e.settings.DefaultMode, true
		}
		if opts.Color == "" {
			opts.Color = e.settings.Color()
		}
	}

	cfg, err := wallpaper.Resolve(opts, e.store)
	if err != nil {
		fmt.Fprintln(stderr, "rootwall:", err)
		return exitCode(err)
	}

	if _, err := e.painter.Apply(ctx, &cfg); err != nil {
		fmt.Fprintln(stderr, "rootwall:", err)
		return exitFailure
	}
	if err := e.store.Save(cfg); err != nil {
		fmt.Fprintln(stderr, "rootwall: warning: wallpaper applied but not saved:", err)
	}
	return exitOK
}

// exitCode maps argument errors to exitUsage and everything else to
// exitFailure. A damaged state file is a failure even when the damage is a
// bad mode name.
func exitCode(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidState):
		return exitFailure
	case errors.Is(err, wallpaper.ErrInvalidMode),
		errors.Is(err, wallpaper.ErrInvalidColor),
		errors.Is(err, wallpaper.ErrOffsetNotAllowed):
		return exitUsage
	default:
		return exitFailure
	}
}

// parseInterleaved parses flags that may appear before or after positional
// arguments.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
