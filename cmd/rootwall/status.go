package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/rootwall/internal/store"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var g globalFlags
	g.register(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		return exitUsage
	}

	e, err := newEnv(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rootwall:", err)
		return exitFailure
	}

	cfg, err := e.store.Load()
	switch {
	case err == nil:
		printStored(os.Stdout, cfg)
	case errors.Is(err, store.ErrNotFound):
		fmt.Fprintln(os.Stdout, "stored:      none")
	default:
		fmt.Fprintln(os.Stderr, "rootwall:", err)
		return exitFailure
	}
	fmt.Fprintf(os.Stdout, "state file:  %s\n", e.store.Path)

	ctx, cancel := signalContext()
	defer cancel()
	st, err := e.painter.Status(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rootwall:", err)
		return exitFailure
	}
	fmt.Fprintf(os.Stdout, "screen:      %dx%d\n", st.Screen.Width, st.Screen.Height)
	if !st.Published {
		fmt.Fprintln(os.Stdout, "root pixmap: none")
		return exitOK
	}
	match := "matches screen"
	if st.Width != st.Screen.Width || st.Height != st.Screen.Height {
		match = "will be replaced"
	}
	fmt.Fprintf(os.Stdout, "root pixmap: 0x%x %dx%d (%s)\n", uint32(st.Pixmap), st.Width, st.Height, match)
	return exitOK
}

func printStored(w io.Writer, cfg *wallpaper.Config) {
	fmt.Fprintf(w, "stored:      %s\n", cfg.Path)
	fmt.Fprintf(w, "mode:        %s\n", cfg.Mode)
	if cfg.Mode.AcceptsOffset() {
		fmt.Fprintf(w, "offset:      %+d%+d\n", cfg.OffsetX, cfg.OffsetY)
	}
	fmt.Fprintf(w, "background:  #%s\n", cfg.BackgroundColor)
}
