package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/rootwall/internal/config"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

// pickForm holds the values bound to the interactive form. huh binds
// strings, so offsets are converted on submit.
type pickForm struct {
	mode    string
	color   string
	offsetX string
	offsetY string
	confirm bool
	// saveDefaults also records mode and colour as the settings defaults.
	saveDefaults bool
}

func runPick(args []string) int {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var g globalFlags
	g.register(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: rootwall pick [-d DISPLAY] [-config PATH] [-v] IMAGE")
		return exitUsage
	}
	image := fs.Arg(0)

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "rootwall: pick requires an interactive terminal (stdin/stdout must be TTYs)")
		return exitUsage
	}

	e, err := newEnv(g)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rootwall:", err)
		return exitFailure
	}

	v := pickForm{
		mode:    e.settings.DefaultMode,
		color:   e.settings.Color(),
		offsetX: "0",
		offsetY: "0",
		confirm: true,
	}
	if err := newPickForm(image, &v).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return exitOK
		}
		fmt.Fprintln(os.Stderr, "rootwall:", err)
		return exitFailure
	}
	if !v.confirm {
		return exitOK
	}

	opts, err := v.options(image)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rootwall:", err)
		return exitUsage
	}

	ctx, cancel := signalContext()
	defer cancel()
	code := e.apply(ctx, opts, os.Stderr)
	if code == exitOK && v.saveDefaults {
		if err := config.SaveDefaults(e.settingsPath, v.mode, v.color); err != nil {
			fmt.Fprintln(os.Stderr, "rootwall: warning: defaults not saved:", err)
		}
	}
	return code
}

func newPickForm(image string, v *pickForm) *huh.Form {
	modeOpts := make([]huh.Option[string], 0, len(wallpaper.ModeNames()))
	for _, name := range wallpaper.ModeNames() {
		modeOpts = append(modeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("mode").
				Title("Mode").
				Description(image).
				Options(modeOpts...).
				Value(&v.mode),

			huh.NewInput().
				Key("color").
				Title("Background").
				Description("RGB or RRGGBB hex").
				Validate(func(s string) error {
					return wallpaper.ValidateColor(strings.TrimPrefix(s, "#"))
				}).
				Value(&v.color),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("offset_x").
				Title("Offset X").
				Validate(validateInt).
				Value(&v.offsetX),

			huh.NewInput().
				Key("offset_y").
				Title("Offset Y").
				Validate(validateInt).
				Value(&v.offsetY),
		).WithHideFunc(func() bool {
			mode, err := wallpaper.ParseMode(v.mode)
			return err != nil || !mode.AcceptsOffset()
		}),
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Apply wallpaper?").
				Value(&v.confirm),

			huh.NewConfirm().
				Key("save_defaults").
				Title("Use this mode and background for new wallpapers?").
				Value(&v.saveDefaults),
		),
	)
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be an integer")
	}
	return nil
}

// options converts the submitted form into CLI-equivalent options. Offsets
// are only passed for modes that accept them.
func (v pickForm) options(image string) (wallpaper.Options, error) {
	opts := wallpaper.Options{
		Image:   image,
		Mode:    v.mode,
		HasMode: true,
		Color:   v.color,
	}
	mode, err := wallpaper.ParseMode(v.mode)
	if err != nil {
		return wallpaper.Options{}, err
	}
	if !mode.AcceptsOffset() {
		return opts, nil
	}
	x, err := strconv.Atoi(strings.TrimSpace(v.offsetX))
	if err != nil {
		return wallpaper.Options{}, fmt.Errorf("offset x: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(v.offsetY))
	if err != nil {
		return wallpaper.Options{}, fmt.Errorf("offset y: %w", err)
	}
	opts.OffsetX, opts.HasOffsetX = x, x != 0
	opts.OffsetY, opts.HasOffsetY = y, y != 0
	return opts, nil
}
