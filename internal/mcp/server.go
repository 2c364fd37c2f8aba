package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/rootwall/internal/paint"
	"github.com/1broseidon/rootwall/internal/store"
	"github.com/1broseidon/rootwall/internal/wallpaper"
)

const (
	ServerName    = "rootwall"
	ServerVersion = "0.1.0"
)

// Server exposes the wallpaper pipeline as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	painter   *paint.Painter
	store     *store.Store
	defaults  Defaults
	logger    *slog.Logger
}

// Defaults fill in set_wallpaper arguments that were not given.
type Defaults struct {
	Mode  wallpaper.Mode
	Color string
}

// NewServer creates an MCP server that paints through painter and persists
// to st.
func NewServer(painter *paint.Painter, st *store.Store, defaults Defaults, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		painter:  painter,
		store:    st,
		defaults: defaults,
		logger:   logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_wallpaper",
		Description: "Paint an image onto the X11 root window and remember it. Offsets are only accepted for center and fill. The previous root pixmap is reused when it matches the screen size.",
	}, s.handleSetWallpaper)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_wallpaper",
		Description: "Repaint the last stored wallpaper, e.g. after the X server restarted. Fails when nothing has been stored yet.",
	}, s.handleRestoreWallpaper)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_wallpaper",
		Description: "Report the stored wallpaper configuration and whether a root pixmap is currently published, with its size.",
	}, s.handleGetWallpaper)
}

func (s *Server) handleSetWallpaper(ctx context.Context, _ *mcpsdk.CallToolRequest, args SetWallpaperInput) (*mcpsdk.CallToolResult, ApplyOutput, error) {
	if args.Path == "" {
		return nil, ApplyOutput{}, wallpaper.ErrMissingPath
	}
	opts := wallpaper.Options{
		Image:   args.Path,
		Mode:    args.Mode,
		HasMode: args.Mode != "",
		Color:   args.Color,
	}
	if !opts.HasMode {
		opts.Mode, opts.HasMode = s.defaults.Mode.String(), true
	}
	if opts.Color == "" {
		opts.Color = s.defaults.Color
	}
	if args.OffsetX != nil {
		opts.OffsetX, opts.HasOffsetX = *args.OffsetX, true
	}
	if args.OffsetY != nil {
		opts.OffsetY, opts.HasOffsetY = *args.OffsetY, true
	}
	return s.apply(ctx, opts)
}

func (s *Server) handleRestoreWallpaper(ctx context.Context, _ *mcpsdk.CallToolRequest, _ RestoreWallpaperInput) (*mcpsdk.CallToolResult, ApplyOutput, error) {
	return s.apply(ctx, wallpaper.Options{})
}

func (s *Server) apply(ctx context.Context, opts wallpaper.Options) (*mcpsdk.CallToolResult, ApplyOutput, error) {
	cfg, err := wallpaper.Resolve(opts, s.store)
	if err != nil {
		return nil, ApplyOutput{}, err
	}
	report, err := s.painter.Apply(ctx, &cfg)
	if err != nil {
		s.logger.Warn("apply failed", "path", cfg.Path, "error", err)
		return nil, ApplyOutput{}, err
	}

	out := ApplyOutput{
		Path:            cfg.Path,
		Mode:            cfg.Mode.String(),
		OffsetX:         cfg.OffsetX,
		OffsetY:         cfg.OffsetY,
		BackgroundColor: cfg.BackgroundColor,
		Image:           fmt.Sprintf("%dx%d", report.Image.Width, report.Image.Height),
		Dest:            fmt.Sprintf("%dx%d%+d%+d", report.Dest.Width, report.Dest.Height, report.Dest.X, report.Dest.Y),
		Pixmap:          fmt.Sprintf("0x%x", uint32(report.Pixmap)),
		Reused:          report.Reused,
	}
	// The background is already painted; a save failure is only reported.
	if err := s.store.Save(cfg); err != nil {
		s.logger.Warn("failed to persist wallpaper", "error", err)
		out.Warning = fmt.Sprintf("wallpaper applied but not saved: %v", err)
	} else {
		out.Persisted = true
	}
	return nil, out, nil
}

func (s *Server) handleGetWallpaper(ctx context.Context, _ *mcpsdk.CallToolRequest, _ GetWallpaperInput) (*mcpsdk.CallToolResult, GetWallpaperOutput, error) {
	var out GetWallpaperOutput

	cfg, err := s.store.Load()
	switch {
	case err == nil:
		out.Stored = true
		out.Path = cfg.Path
		out.Mode = cfg.Mode.String()
		out.OffsetX, out.OffsetY = cfg.OffsetX, cfg.OffsetY
		out.BackgroundColor = cfg.BackgroundColor
	case errors.Is(err, store.ErrNotFound):
	default:
		return nil, GetWallpaperOutput{}, err
	}

	st, err := s.painter.Status(ctx)
	if err != nil {
		out.DisplayError = err.Error()
		return nil, out, nil
	}
	if st.Published {
		out.Published = true
		out.Pixmap = fmt.Sprintf("0x%x", uint32(st.Pixmap))
		out.Width, out.Height = st.Width, st.Height
	}
	return nil, out, nil
}
