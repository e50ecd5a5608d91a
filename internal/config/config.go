package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// TemplatePolicy holds the per-product-template sizing rules. Policies are
// loaded once at startup and looked up by template name; render paths never
// branch on template name strings.
type TemplatePolicy struct {
	// Mask placement
	OffsetFraction float64 `json:"offset_fraction"`

	// Gang sheet layout (physical units)
	SpacingWIn   float64 `json:"spacing_w_in"`
	SpacingHIn   float64 `json:"spacing_h_in"`
	CanvasMaxWIn float64 `json:"canvas_max_w_in"`
	CanvasMaxHIn float64 `json:"canvas_max_h_in"`

	// Resolution
	WorkingDPI float64 `json:"working_dpi"`
	OutputDPI  float64 `json:"output_dpi"`

	// Fit-to-template path (templates without masks)
	TargetWIn   float64 `json:"target_w_in"`
	TargetHIn   float64 `json:"target_h_in"`
	CanvasWIn   float64 `json:"canvas_w_in"`
	CanvasHIn   float64 `json:"canvas_h_in"`
	MatchAspect bool    `json:"match_aspect"`

	WatermarkOpacity float64 `json:"watermark_opacity"`
}

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	TemplateDir string `json:"template_dir"`
	RegionsFile string `json:"regions_file"`
	OutputDir   string `json:"output_dir"`
	Watermark   string `json:"watermark"`

	// Per-template sizing rules
	Templates map[string]TemplatePolicy `json:"templates"`

	// Render settings
	PreviewMaxPx int `json:"preview_max_px"`
	Workers      int `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	TemplateDir string
	OutputDir   string
	Workers     int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.TemplateDir != "" {
		c.TemplateDir = flags.TemplateDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.TemplateDir == "" {
		c.TemplateDir = "templates"
	}
	if c.RegionsFile == "" {
		c.RegionsFile = filepath.Join(c.TemplateDir, "regions.json")
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.PreviewMaxPx <= 0 {
		c.PreviewMaxPx = 1200
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	for name, pol := range c.Templates {
		c.Templates[name] = normalize(pol)
	}
}

// Policy looks up the sizing rules for a template, with defaults applied.
// The second return is false when the template is not configured.
func (c *Config) Policy(name string) (TemplatePolicy, bool) {
	pol, ok := c.Templates[name]
	if !ok {
		return normalize(TemplatePolicy{}), false
	}
	return pol, true
}

func normalize(p TemplatePolicy) TemplatePolicy {
	if p.OffsetFraction <= 0 {
		p.OffsetFraction = 0.5
	}
	if p.WorkingDPI <= 0 {
		p.WorkingDPI = 300
	}
	if p.OutputDPI <= 0 {
		p.OutputDPI = p.WorkingDPI
	}
	if p.CanvasMaxWIn <= 0 {
		p.CanvasMaxWIn = 22
	}
	if p.CanvasMaxHIn <= 0 {
		p.CanvasMaxHIn = 120
	}
	if p.CanvasWIn <= 0 {
		p.CanvasWIn = p.TargetWIn
	}
	if p.CanvasHIn <= 0 {
		p.CanvasHIn = p.TargetHIn
	}
	if p.WatermarkOpacity <= 0 {
		p.WatermarkOpacity = 0.35
	}
	return p
}
