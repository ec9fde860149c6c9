// Package config provides YAML configuration parsing for emojistatus.
//
// This package enables running emojistatus as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Service mood
//	port: 8080
//	refresh_interval: 15s
//
//	panels:
//	  - name: availability
//	    label: Uptime
//	    source:
//	      file: ${DATA_DIR:-./data}/availability.yaml
//	    theme: traffic
//	    show: {value: true, trend: true, history: true}
//
//	grids:
//	  - name: CPU
//	    file_template: "data/{{.region}}/cpu.yaml"
//	    dimensions:
//	      region: [eu, us]
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"text/template"
	"time"

	"github.com/jpalmerr/emojistatus"
	"gopkg.in/yaml.v3"
)

// minRefreshInterval is the minimum allowed refresh interval for file configs.
const minRefreshInterval = 1 * time.Second

// Config is the root configuration structure for emojistatus.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the dashboard title. Defaults to "emojistatus" if not set.
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// RefreshInterval is the time between panel refresh cycles.
	// Accepts duration strings like "10s", "1m", "500ms".
	// Defaults to 15s.
	RefreshInterval Duration `yaml:"refresh_interval"`

	// Panels defines individual panels.
	Panels []PanelConfig `yaml:"panels"`

	// Grids defines panel grids that expand via cartesian product.
	Grids []GridConfig `yaml:"grids"`
}

// SourceConfig says where a panel's series come from. Exactly one of File,
// Values or Fields must be set.
type SourceConfig struct {
	// File is a YAML series file re-read on every refresh.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	File string `yaml:"file"`

	// Values is a single static series.
	Values []float64 `yaml:"values"`

	// Fields are several named static series.
	Fields []FieldConfig `yaml:"fields"`
}

// FieldConfig is one named static series.
type FieldConfig struct {
	Name   string    `yaml:"name"`
	Values []float64 `yaml:"values"`
}

// ShowConfig holds the show/hide toggles. Unset toggles keep the panel
// defaults (value, label and trend on; the rest off).
type ShowConfig struct {
	Value      *bool `yaml:"value"`
	Label      *bool `yaml:"label"`
	Trend      *bool `yaml:"trend"`
	History    *bool `yaml:"history"`
	Statistics *bool `yaml:"statistics"`
	Comparison *bool `yaml:"comparison"`
}

// ComparisonConfig selects the comparison reference.
type ComparisonConfig struct {
	// Mode is "target" or "previous".
	Mode string `yaml:"mode"`

	// Target is the reference value in target mode. Defaults to 80.
	Target *float64 `yaml:"target"`
}

// AlertConfig enables the critical-level alert message.
type AlertConfig struct {
	Enabled bool `yaml:"enabled"`

	// Message supports environment variable substitution.
	Message string `yaml:"message"`
}

// ColorsConfig sets text and background colours.
type ColorsConfig struct {
	Text       string `yaml:"text"`
	Background string `yaml:"background"`
}

// AnimationConfig toggles emoji animation and the critical pulse.
type AnimationConfig struct {
	Enabled         *bool `yaml:"enabled"`
	PulseOnCritical *bool `yaml:"pulse_on_critical"`
}

// DisplayConfig is the presentation and evaluation settings shared by
// panels and grids.
type DisplayConfig struct {
	// Label is the caption. Supports environment variable substitution.
	// An explicit empty label hides the caption.
	Label *string `yaml:"label"`

	Thresholds   *emojistatus.Thresholds `yaml:"thresholds"`
	Theme        string                  `yaml:"theme"`
	CustomEmojis map[string]string       `yaml:"custom_emojis"`
	DisplayMode  string                  `yaml:"display_mode"`
	Decimals     *int                    `yaml:"decimals"`
	EmojiSize    int                     `yaml:"emoji_size"`
	FontSize     int                     `yaml:"font_size"`
	Show         ShowConfig              `yaml:"show"`
	Colors       ColorsConfig            `yaml:"colors"`
	Animation    AnimationConfig         `yaml:"animation"`

	// HigherIsBetter defaults to true.
	HigherIsBetter *bool            `yaml:"higher_is_better"`
	Comparison     ComparisonConfig `yaml:"comparison"`
	Alert          AlertConfig      `yaml:"alert"`
	Drilldown      bool             `yaml:"drilldown"`

	// Interval is the custom refresh interval.
	// If not specified, uses the global refresh_interval.
	// Must be between 1s and 1h.
	Interval Duration `yaml:"interval"`
}

// PanelConfig defines a single panel.
type PanelConfig struct {
	// Name is the unique panel name shown in the dashboard.
	Name string `yaml:"name"`

	Source SourceConfig `yaml:"source"`

	DisplayConfig `yaml:",inline"`
}

// GridConfig defines a panel grid that expands via cartesian product.
//
// For example, with dimensions {region: [eu, us], tier: [web, db]}, the
// grid expands to 4 panels, each reading the file rendered from
// FileTemplate for its combination.
type GridConfig struct {
	// Name is the base name for generated panels.
	Name string `yaml:"name"`

	// FileTemplate is a Go template for generating series file paths.
	// Dimension keys are available as template variables: {{.region}}
	// Supports environment variable substitution in the template.
	FileTemplate string `yaml:"file_template"`

	// Dimensions maps dimension names to their possible values.
	Dimensions map[string][]string `yaml:"dimensions"`

	DisplayConfig `yaml:",inline"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in source files, file templates,
// labels and alert messages. Defaults are applied for Port (8080) and
// RefreshInterval (15s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = Duration(15 * time.Second)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.RefreshInterval.Duration() < minRefreshInterval {
		return fmt.Errorf("refresh_interval must be at least %s, got %s", minRefreshInterval, c.RefreshInterval.Duration())
	}

	names := make(map[string]string)

	for i := range c.Panels {
		p := &c.Panels[i]

		if p.Name == "" {
			return fmt.Errorf("panels[%d]: name is required", i)
		}
		ctx := fmt.Sprintf("panels[%d] (%s)", i, p.Name)

		if prev, dup := names[p.Name]; dup {
			return fmt.Errorf("%s: duplicate panel name, already used by %s", ctx, prev)
		}
		names[p.Name] = ctx

		if err := p.Source.expandAndValidate(ctx); err != nil {
			return err
		}
		if err := p.DisplayConfig.expandAndValidate(ctx); err != nil {
			return err
		}
	}

	for i := range c.Grids {
		g := &c.Grids[i]

		if g.Name == "" {
			return fmt.Errorf("grids[%d]: name is required", i)
		}
		ctx := fmt.Sprintf("grids[%d] (%s)", i, g.Name)

		if g.FileTemplate == "" {
			return fmt.Errorf("%s: file_template is required", ctx)
		}
		expanded, err := expandEnvVars(g.FileTemplate)
		if err != nil {
			return fmt.Errorf("%s: file_template: %w", ctx, err)
		}
		g.FileTemplate = expanded

		// fail fast before the SDK tries to use an invalid template
		if _, err := template.New("").Parse(g.FileTemplate); err != nil {
			return fmt.Errorf("%s: invalid file_template: %w", ctx, err)
		}

		if len(g.Dimensions) == 0 {
			return fmt.Errorf("%s: at least one dimension is required", ctx)
		}
		for dimName, dimValues := range g.Dimensions {
			if len(dimValues) == 0 {
				return fmt.Errorf("%s: dimension %q has no values", ctx, dimName)
			}
			seen := make(map[string]struct{}, len(dimValues))
			for _, v := range dimValues {
				if _, exists := seen[v]; exists {
					return fmt.Errorf("%s: dimension %q has duplicate value %q", ctx, dimName, v)
				}
				seen[v] = struct{}{}
			}
		}

		if err := g.DisplayConfig.expandAndValidate(ctx); err != nil {
			return err
		}
	}

	if len(c.Panels) == 0 && len(c.Grids) == 0 {
		return errors.New("at least one panel or grid must be defined")
	}

	return nil
}

func (s *SourceConfig) expandAndValidate(ctx string) error {
	set := 0
	if s.File != "" {
		set++
	}
	if len(s.Values) > 0 {
		set++
	}
	if len(s.Fields) > 0 {
		set++
	}
	switch set {
	case 0:
		return fmt.Errorf("%s: source requires one of file, values or fields", ctx)
	case 1:
	default:
		return fmt.Errorf("%s: source must set only one of file, values or fields", ctx)
	}

	if s.File != "" {
		expanded, err := expandEnvVars(s.File)
		if err != nil {
			return fmt.Errorf("%s: source.file: %w", ctx, err)
		}
		s.File = expanded
	}

	seen := make(map[string]struct{}, len(s.Fields))
	for j, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%s: source.fields[%d]: name is required", ctx, j)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%s: source.fields[%d]: duplicate field name %q", ctx, j, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

func (d *DisplayConfig) expandAndValidate(ctx string) error {
	if d.Label != nil {
		expanded, err := expandEnvVars(*d.Label)
		if err != nil {
			return fmt.Errorf("%s: label: %w", ctx, err)
		}
		d.Label = &expanded
	}

	if d.Alert.Message != "" {
		expanded, err := expandEnvVars(d.Alert.Message)
		if err != nil {
			return fmt.Errorf("%s: alert.message: %w", ctx, err)
		}
		d.Alert.Message = expanded
	}

	if d.Theme != "" {
		if _, err := emojistatus.ParseTheme(d.Theme); err != nil {
			return fmt.Errorf("%s: %w", ctx, err)
		}
	}
	for level := range d.CustomEmojis {
		if !emojistatus.Level(level).Valid() {
			return fmt.Errorf("%s: custom_emojis: unknown level %q", ctx, level)
		}
	}
	if d.DisplayMode != "" {
		if _, err := emojistatus.ParseDisplayMode(d.DisplayMode); err != nil {
			return fmt.Errorf("%s: %w", ctx, err)
		}
	}
	if d.Comparison.Mode != "" {
		if _, err := emojistatus.ParseComparisonMode(d.Comparison.Mode); err != nil {
			return fmt.Errorf("%s: comparison: %w", ctx, err)
		}
	}

	if d.Interval != 0 {
		if d.Interval.Duration() < time.Second {
			return fmt.Errorf("%s: interval must be at least 1s, got %s", ctx, d.Interval.Duration())
		}
		if d.Interval.Duration() > time.Hour {
			return fmt.Errorf("%s: interval must not exceed 1h, got %s", ctx, d.Interval.Duration())
		}
	}

	// numeric ranges (decimals, sizes) are checked by the panel options
	return nil
}
