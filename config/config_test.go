package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_MinimalConfig(t *testing.T) {
	yaml := `
panels:
  - name: cpu
    source:
      values: [40, 42]
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// check defaults applied
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.RefreshInterval.Duration() != 15*time.Second {
		t.Errorf("RefreshInterval = %v, want 15s", cfg.RefreshInterval.Duration())
	}
	if len(cfg.Panels) != 1 {
		t.Errorf("len(Panels) = %d, want 1", len(cfg.Panels))
	}
}

func TestParse_FullPanelConfig(t *testing.T) {
	yaml := `
title: Service mood
port: 9090
refresh_interval: 30s

panels:
  - name: availability
    label: Uptime
    source:
      file: data/availability.yaml
    thresholds: {excellent: 99.9, good: 99, ok: 95, warning: 90}
    theme: traffic
    custom_emojis: {critical: "🔥"}
    display_mode: grid
    decimals: 2
    emoji_size: 64
    font_size: 18
    show: {value: true, trend: true, history: true, statistics: true, comparison: true}
    colors: {text: "#eeeeee", background: "#101010"}
    animation: {enabled: false, pulse_on_critical: false}
    higher_is_better: false
    comparison: {mode: previous}
    alert: {enabled: true, message: "Down!"}
    drilldown: true
    interval: 1m
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Title != "Service mood" || cfg.Port != 9090 {
		t.Errorf("Title/Port = %q/%d", cfg.Title, cfg.Port)
	}
	if cfg.RefreshInterval.Duration() != 30*time.Second {
		t.Errorf("RefreshInterval = %v, want 30s", cfg.RefreshInterval.Duration())
	}

	p := cfg.Panels[0]
	if p.Name != "availability" {
		t.Errorf("Name = %q, want availability", p.Name)
	}
	if p.Label == nil || *p.Label != "Uptime" {
		t.Errorf("Label = %v, want Uptime", p.Label)
	}
	if p.Source.File != "data/availability.yaml" {
		t.Errorf("Source.File = %q", p.Source.File)
	}
	if p.Thresholds == nil || p.Thresholds.Excellent != 99.9 || p.Thresholds.Warning != 90 {
		t.Errorf("Thresholds = %+v", p.Thresholds)
	}
	if p.Theme != "traffic" || p.DisplayMode != "grid" {
		t.Errorf("Theme/DisplayMode = %q/%q", p.Theme, p.DisplayMode)
	}
	if p.CustomEmojis["critical"] != "🔥" {
		t.Errorf("CustomEmojis = %v", p.CustomEmojis)
	}
	if p.Decimals == nil || *p.Decimals != 2 {
		t.Errorf("Decimals = %v, want 2", p.Decimals)
	}
	if p.EmojiSize != 64 || p.FontSize != 18 {
		t.Errorf("EmojiSize/FontSize = %d/%d", p.EmojiSize, p.FontSize)
	}
	if p.Show.History == nil || !*p.Show.History || p.Show.Label != nil {
		t.Errorf("Show = %+v", p.Show)
	}
	if p.Colors.Text != "#eeeeee" || p.Colors.Background != "#101010" {
		t.Errorf("Colors = %+v", p.Colors)
	}
	if p.Animation.Enabled == nil || *p.Animation.Enabled {
		t.Errorf("Animation.Enabled = %v, want false", p.Animation.Enabled)
	}
	if p.HigherIsBetter == nil || *p.HigherIsBetter {
		t.Errorf("HigherIsBetter = %v, want false", p.HigherIsBetter)
	}
	if p.Comparison.Mode != "previous" || p.Comparison.Target != nil {
		t.Errorf("Comparison = %+v", p.Comparison)
	}
	if !p.Alert.Enabled || p.Alert.Message != "Down!" {
		t.Errorf("Alert = %+v", p.Alert)
	}
	if !p.Drilldown {
		t.Error("Drilldown = false, want true")
	}
	if p.Interval.Duration() != time.Minute {
		t.Errorf("Interval = %v, want 1m", p.Interval.Duration())
	}
}

func TestParse_SourceKinds(t *testing.T) {
	yaml := `
panels:
  - name: static
    source:
      values: [1, 2, 3]
  - name: multi
    source:
      fields:
        - name: eu
          values: [98, 99]
        - name: us
          values: [30]
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := cfg.Panels[0].Source.Values; len(got) != 3 || got[2] != 3 {
		t.Errorf("Values = %v, want [1 2 3]", got)
	}
	fields := cfg.Panels[1].Source.Fields
	if len(fields) != 2 || fields[0].Name != "eu" || fields[1].Values[0] != 30 {
		t.Errorf("Fields = %+v", fields)
	}
}

func TestParse_GridConfig(t *testing.T) {
	yaml := `
grids:
  - name: CPU
    file_template: "data/{{.region}}/{{.tier}}.yaml"
    dimensions:
      region: [eu, us]
      tier: [web, db]
    theme: weather
    decimals: 0
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(cfg.Grids) != 1 {
		t.Fatalf("len(Grids) = %d, want 1", len(cfg.Grids))
	}

	g := cfg.Grids[0]
	if g.Name != "CPU" {
		t.Errorf("Name = %q, want CPU", g.Name)
	}
	if g.FileTemplate != "data/{{.region}}/{{.tier}}.yaml" {
		t.Errorf("FileTemplate = %q", g.FileTemplate)
	}
	if len(g.Dimensions) != 2 || len(g.Dimensions["region"]) != 2 {
		t.Errorf("Dimensions = %v", g.Dimensions)
	}
	if g.Theme != "weather" || g.Decimals == nil || *g.Decimals != 0 {
		t.Errorf("display settings = %q/%v", g.Theme, g.Decimals)
	}
}

func TestParse_EnvVarSubstitution(t *testing.T) {
	t.Setenv("TEST_DATA_DIR", "/srv/data")
	t.Setenv("TEST_TEAM", "payments")

	yaml := `
panels:
  - name: queue
    label: "${TEST_TEAM} queue"
    source:
      file: ${TEST_DATA_DIR}/queue.yaml
    alert:
      enabled: true
      message: "page ${TEST_TEAM}"
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	p := cfg.Panels[0]
	if p.Source.File != "/srv/data/queue.yaml" {
		t.Errorf("Source.File = %q, want /srv/data/queue.yaml", p.Source.File)
	}
	if *p.Label != "payments queue" {
		t.Errorf("Label = %q, want 'payments queue'", *p.Label)
	}
	if p.Alert.Message != "page payments" {
		t.Errorf("Alert.Message = %q, want 'page payments'", p.Alert.Message)
	}
}

func TestParse_EnvVarDefault(t *testing.T) {
	yaml := `
panels:
  - name: queue
    source:
      file: ${UNSET_VAR:-./data}/queue.yaml
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Panels[0].Source.File != "./data/queue.yaml" {
		t.Errorf("Source.File = %q, want ./data/queue.yaml", cfg.Panels[0].Source.File)
	}
}

func TestParse_EnvVarMissing(t *testing.T) {
	// MISSING_VAR is expected to not exist in the environment
	yaml := `
panels:
  - name: queue
    source:
      file: ${MISSING_VAR}/queue.yaml
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for missing env var, got nil")
	}
	if !strings.Contains(err.Error(), "MISSING_VAR") {
		t.Errorf("error should mention MISSING_VAR: %v", err)
	}
	if !strings.Contains(err.Error(), "panels[0] (queue): source.file") {
		t.Errorf("error should carry the panel context: %v", err)
	}
}

func TestParse_EnvVarInGridTemplate(t *testing.T) {
	t.Setenv("TEST_ROOT", "/var/lib/mood")

	yaml := `
grids:
  - name: CPU
    file_template: "${TEST_ROOT}/{{.region}}.yaml"
    dimensions:
      region: [eu]
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Grids[0].FileTemplate != "/var/lib/mood/{{.region}}.yaml" {
		t.Errorf("FileTemplate = %q", cfg.Grids[0].FileTemplate)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantErrLike string
	}{
		{
			name:        "no panels or grids",
			yaml:        `port: 8080`,
			wantErrLike: "at least one panel or grid",
		},
		{
			name:        "port out of range",
			yaml:        "port: 70000\npanels: [{name: a, source: {values: [1]}}]",
			wantErrLike: "port must be between 1 and 65535",
		},
		{
			name:        "refresh interval too short",
			yaml:        "refresh_interval: 500ms\npanels: [{name: a, source: {values: [1]}}]",
			wantErrLike: "refresh_interval must be at least 1s",
		},
		{
			name: "panel missing name",
			yaml: `
panels:
  - source: {values: [1]}
`,
			wantErrLike: "panels[0]: name is required",
		},
		{
			name: "duplicate panel name",
			yaml: `
panels:
  - name: cpu
    source: {values: [1]}
  - name: cpu
    source: {values: [2]}
`,
			wantErrLike: "panels[1] (cpu): duplicate panel name",
		},
		{
			name: "panel missing source",
			yaml: `
panels:
  - name: cpu
`,
			wantErrLike: "source requires one of file, values or fields",
		},
		{
			name: "panel with two sources",
			yaml: `
panels:
  - name: cpu
    source: {file: a.yaml, values: [1]}
`,
			wantErrLike: "source must set only one of",
		},
		{
			name: "unnamed static field",
			yaml: `
panels:
  - name: cpu
    source:
      fields: [{values: [1]}]
`,
			wantErrLike: "source.fields[0]: name is required",
		},
		{
			name: "duplicate static field",
			yaml: `
panels:
  - name: cpu
    source:
      fields: [{name: a, values: [1]}, {name: a, values: [2]}]
`,
			wantErrLike: `duplicate field name "a"`,
		},
		{
			name: "unknown theme",
			yaml: `
panels:
  - name: cpu
    source: {values: [1]}
    theme: neon
`,
			wantErrLike: `panels[0] (cpu): unknown theme "neon"`,
		},
		{
			name: "unknown custom emoji level",
			yaml: `
panels:
  - name: cpu
    source: {values: [1]}
    custom_emojis: {awful: "💀"}
`,
			wantErrLike: `custom_emojis: unknown level "awful"`,
		},
		{
			name: "unknown display mode",
			yaml: `
panels:
  - name: cpu
    source: {values: [1]}
    display_mode: table
`,
			wantErrLike: "unknown display mode",
		},
		{
			name: "unknown comparison mode",
			yaml: `
panels:
  - name: cpu
    source: {values: [1]}
    comparison: {mode: baseline}
`,
			wantErrLike: "comparison: unknown comparison mode",
		},
		{
			name: "interval too short",
			yaml: `
panels:
  - name: cpu
    source: {values: [1]}
    interval: 100ms
`,
			wantErrLike: "interval must be at least 1s",
		},
		{
			name: "interval too long",
			yaml: `
panels:
  - name: cpu
    source: {values: [1]}
    interval: 2h
`,
			wantErrLike: "interval must not exceed 1h",
		},
		{
			name: "grid missing name",
			yaml: `
grids:
  - file_template: x.yaml
    dimensions:
      env: [prod]
`,
			wantErrLike: "grids[0]: name is required",
		},
		{
			name: "grid missing file_template",
			yaml: `
grids:
  - name: CPU
    dimensions:
      env: [prod]
`,
			wantErrLike: "file_template is required",
		},
		{
			name: "grid invalid template",
			yaml: `
grids:
  - name: CPU
    file_template: "{{.env"
    dimensions:
      env: [prod]
`,
			wantErrLike: "invalid file_template",
		},
		{
			name: "grid without dimensions",
			yaml: `
grids:
  - name: CPU
    file_template: x.yaml
`,
			wantErrLike: "at least one dimension is required",
		},
		{
			name: "grid dimension without values",
			yaml: `
grids:
  - name: CPU
    file_template: x.yaml
    dimensions:
      env: []
`,
			wantErrLike: `dimension "env" has no values`,
		},
		{
			name: "grid duplicate dimension value",
			yaml: `
grids:
  - name: CPU
    file_template: x.yaml
    dimensions:
      env: [prod, prod]
`,
			wantErrLike: `dimension "env" has duplicate value "prod"`,
		},
		{
			name: "grid unknown theme",
			yaml: `
grids:
  - name: CPU
    file_template: x.yaml
    dimensions:
      env: [prod]
    theme: neon
`,
			wantErrLike: `grids[0] (CPU): unknown theme`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErrLike) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErrLike)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("panels: [unclosed"))
	if err == nil {
		t.Fatal("Parse() expected error for invalid YAML, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("error = %q, want 'failed to parse YAML'", err)
	}
}

func TestParse_InvalidDuration(t *testing.T) {
	yaml := `
refresh_interval: soon
panels:
  - name: cpu
    source: {values: [1]}
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for invalid duration, got nil")
	}
	if !strings.Contains(err.Error(), `invalid duration "soon"`) {
		t.Errorf("error = %q", err)
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"500ms", 500 * time.Millisecond},
		{"10s", 10 * time.Second},
		{"1m30s", 90 * time.Second},
		{"1h", time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			yaml := "refresh_interval: " + tt.input + "\npanels: [{name: a, source: {values: [1]}, interval: " + tt.input + "}]"
			cfg, err := Parse([]byte(yaml))
			if tt.want < time.Second {
				if err == nil {
					t.Fatal("expected sub-second interval to be rejected")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if cfg.Panels[0].Interval.Duration() != tt.want {
				t.Errorf("Interval = %v, want %v", cfg.Panels[0].Interval.Duration(), tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emojistatus.yaml")
	if err := os.WriteFile(path, []byte("panels: [{name: a, source: {values: [1]}}]"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Panels[0].Name != "a" {
		t.Errorf("Panels[0].Name = %q, want a", cfg.Panels[0].Name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %q", err)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "value")
	t.Setenv("EMPTY_VAR", "") // set but empty

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"no vars", "plain text", "plain text", false},
		{"simple var", "${TEST_VAR}", "value", false},
		{"var in text", "prefix ${TEST_VAR} suffix", "prefix value suffix", false},
		{"multiple vars", "${TEST_VAR}-${TEST_VAR}", "value-value", false},
		{"with default (var set)", "${TEST_VAR:-default}", "value", false},
		{"with default (var unset)", "${UNSET:-default}", "default", false},
		{"missing required", "${MISSING}", "", true},
		{"empty default (var unset)", "${UNSET:-}", "", false},
		{"set but empty var", "${EMPTY_VAR}", "", false},
		{"set but empty with default", "${EMPTY_VAR:-fallback}", "", false}, // set var takes precedence
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// UNSET and MISSING are expected to not exist in environment
			got, err := expandEnvVars(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expandEnvVars() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expandEnvVars() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandEnvVars() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_TitleEmpty(t *testing.T) {
	cfg, err := Parse([]byte("panels: [{name: a, source: {values: [1]}}]"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// empty title is valid (the board falls back to its default)
	if cfg.Title != "" {
		t.Errorf("Title = %q, want empty string", cfg.Title)
	}
}
