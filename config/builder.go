package config

import (
	"github.com/jpalmerr/emojistatus"
)

// BuildPanels converts parsed configuration into SDK Panel objects.
//
// It processes both direct panels and grids, returning a combined slice.
// Grid dimensions are expanded via cartesian product.
func BuildPanels(cfg *Config) ([]emojistatus.Panel, error) {
	var panels []emojistatus.Panel

	for _, pc := range cfg.Panels {
		p, err := buildPanel(pc)
		if err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}

	for _, gc := range cfg.Grids {
		gridPanels, err := emojistatus.NewPanelGrid(gc.Name,
			emojistatus.WithFileTemplate(gc.FileTemplate),
			emojistatus.WithDimensions(gc.Dimensions),
			emojistatus.WithGridPanelOptions(displayOptions(gc.DisplayConfig)...),
		)
		if err != nil {
			return nil, err
		}
		panels = append(panels, gridPanels...)
	}

	return panels, nil
}

// BoardOptions converts parsed configuration into the options for
// [emojistatus.New], building every panel on the way.
func BoardOptions(cfg *Config) ([]emojistatus.Option, error) {
	panels, err := BuildPanels(cfg)
	if err != nil {
		return nil, err
	}

	opts := []emojistatus.Option{
		emojistatus.WithPort(cfg.Port),
		emojistatus.WithRefreshInterval(cfg.RefreshInterval.Duration()),
		emojistatus.WithPanels(panels...),
	}
	if cfg.Title != "" {
		opts = append(opts, emojistatus.WithTitle(cfg.Title))
	}
	return opts, nil
}

// buildPanel converts a single PanelConfig to an SDK Panel.
func buildPanel(pc PanelConfig) (emojistatus.Panel, error) {
	opts := displayOptions(pc.DisplayConfig)
	opts = append(opts, emojistatus.WithSource(buildSource(pc.Source)))
	return emojistatus.NewPanel(pc.Name, opts...)
}

// buildSource converts a validated SourceConfig to a SeriesSource.
func buildSource(sc SourceConfig) emojistatus.SeriesSource {
	switch {
	case sc.File != "":
		return emojistatus.FileSource(sc.File)
	case len(sc.Fields) > 0:
		fields := make([]emojistatus.Field, len(sc.Fields))
		for i, f := range sc.Fields {
			fields[i] = emojistatus.Field{Name: f.Name, Values: f.Values}
		}
		return emojistatus.StaticSource(fields...)
	default:
		return emojistatus.StaticSource(emojistatus.Field{
			Name:   emojistatus.DefaultFieldName,
			Values: sc.Values,
		})
	}
}

// displayOptions converts the shared presentation settings to panel
// options. Unset settings produce no option so panel defaults apply.
func displayOptions(d DisplayConfig) []emojistatus.PanelOption {
	var opts []emojistatus.PanelOption

	if d.Thresholds != nil {
		opts = append(opts, emojistatus.WithThresholds(*d.Thresholds))
	}
	if d.Theme != "" {
		opts = append(opts, emojistatus.WithTheme(emojistatus.Theme(d.Theme)))
	}
	if len(d.CustomEmojis) > 0 {
		custom := make(emojistatus.EmojiSet, len(d.CustomEmojis))
		for level, glyph := range d.CustomEmojis {
			custom[emojistatus.Level(level)] = glyph
		}
		opts = append(opts, emojistatus.WithCustomEmojis(custom))
	}
	if d.DisplayMode != "" {
		opts = append(opts, emojistatus.WithDisplayMode(emojistatus.DisplayMode(d.DisplayMode)))
	}
	if d.Decimals != nil {
		opts = append(opts, emojistatus.WithDecimals(*d.Decimals))
	}
	if d.EmojiSize != 0 {
		opts = append(opts, emojistatus.WithEmojiSize(d.EmojiSize))
	}
	if d.FontSize != 0 {
		opts = append(opts, emojistatus.WithFontSize(d.FontSize))
	}
	if d.Colors.Text != "" || d.Colors.Background != "" {
		opts = append(opts, emojistatus.WithColors(d.Colors.Text, d.Colors.Background))
	}
	if d.Animation.Enabled != nil || d.Animation.PulseOnCritical != nil {
		opts = append(opts, emojistatus.WithAnimation(
			boolOr(d.Animation.Enabled, true),
			boolOr(d.Animation.PulseOnCritical, true),
		))
	}
	if d.HigherIsBetter != nil {
		opts = append(opts, emojistatus.WithHigherIsBetter(*d.HigherIsBetter))
	}

	compared := d.Comparison.Mode != "" || d.Comparison.Target != nil
	if compared {
		target := 80.0
		if d.Comparison.Target != nil {
			target = *d.Comparison.Target
		}
		opts = append(opts, emojistatus.WithComparison(emojistatus.ComparisonMode(d.Comparison.Mode), target))
	}

	opts = append(opts, emojistatus.WithVisibility(emojistatus.Visibility{
		Value:      boolOr(d.Show.Value, true),
		Label:      boolOr(d.Show.Label, true),
		Trend:      boolOr(d.Show.Trend, true),
		History:    boolOr(d.Show.History, false),
		Statistics: boolOr(d.Show.Statistics, false),
		Comparison: boolOr(d.Show.Comparison, compared),
	}))

	// after visibility so an empty label still hides the caption
	if d.Label != nil {
		opts = append(opts, emojistatus.WithLabel(*d.Label))
	}
	if d.Alert.Enabled {
		opts = append(opts, emojistatus.WithCriticalAlert(d.Alert.Message))
	}
	if d.Drilldown {
		opts = append(opts, emojistatus.WithDrilldown(true))
	}
	if d.Interval != 0 {
		opts = append(opts, emojistatus.WithInterval(d.Interval.Duration()))
	}

	return opts
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
