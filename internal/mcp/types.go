package mcp

// SetWallpaperInput is the input for the set_wallpaper tool.
type SetWallpaperInput struct {
	Path    string `json:"path" jsonschema:"Image file to paint (png, jpeg, gif, bmp, tiff, webp or avif)"`
	Mode    string `json:"mode,omitempty" jsonschema:"Display mode: center, fill, max, scale or tile (default: settings default_mode)"`
	OffsetX *int   `json:"offset_x,omitempty" jsonschema:"Horizontal offset in pixels. Only valid for center and fill."`
	OffsetY *int   `json:"offset_y,omitempty" jsonschema:"Vertical offset in pixels. Only valid for center and fill."`
	Color   string `json:"color,omitempty" jsonschema:"Background colour as RGB or RRGGBB hex, with or without a leading #"`
}

// RestoreWallpaperInput is the input for the restore_wallpaper tool.
type RestoreWallpaperInput struct{}

// ApplyOutput is returned by set_wallpaper and restore_wallpaper.
type ApplyOutput struct {
	Path            string `json:"path"`
	Mode            string `json:"mode"`
	OffsetX         int    `json:"offset_x"`
	OffsetY         int    `json:"offset_y"`
	BackgroundColor string `json:"background_color"`
	Image           string `json:"image"`
	Dest            string `json:"dest"`
	Pixmap          string `json:"pixmap"`
	Reused          bool   `json:"reused"`
	Persisted       bool   `json:"persisted"`
	Warning         string `json:"warning,omitempty"`
}

// GetWallpaperInput is the input for the get_wallpaper tool.
type GetWallpaperInput struct{}

// GetWallpaperOutput describes the stored wallpaper and the published root
// pixmap.
type GetWallpaperOutput struct {
	Stored          bool   `json:"stored"`
	Path            string `json:"path,omitempty"`
	Mode            string `json:"mode,omitempty"`
	OffsetX         int    `json:"offset_x"`
	OffsetY         int    `json:"offset_y"`
	BackgroundColor string `json:"background_color,omitempty"`
	Published       bool   `json:"published"`
	Pixmap          string `json:"pixmap,omitempty"`
	Width           int    `json:"width,omitempty"`
	Height          int    `json:"height,omitempty"`
	DisplayError    string `json:"display_error,omitempty"`
}
