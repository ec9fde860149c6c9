package emojistatus

import (
	"errors"
	"fmt"
	"time"
)

// DisplayMode controls how a panel lays out multiple fields.
type DisplayMode string

const (
	// DisplaySingle shows only the first field.
	DisplaySingle DisplayMode = "single"

	// DisplayGrid shows every field in a grid.
	DisplayGrid DisplayMode = "grid"

	// DisplayList shows every field in a vertical list.
	DisplayList DisplayMode = "list"
)

// ParseDisplayMode converts a configuration string to a [DisplayMode].
// The empty string selects [DisplaySingle].
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(s) {
	case "", DisplaySingle:
		return DisplaySingle, nil
	case DisplayGrid:
		return DisplayGrid, nil
	case DisplayList:
		return DisplayList, nil
	default:
		return "", fmt.Errorf("unknown display mode %q (expected 'single', 'grid', or 'list')", s)
	}
}

const (
	defaultEmojiSize    = 100
	defaultFontSize     = 24
	defaultDecimals     = 1
	defaultLabel        = "Status"
	defaultTextColor    = "#ffffff"
	defaultBackground   = "transparent"
	defaultTargetValue  = 80
	defaultAlertMessage = "⚠️ Critical Status!"
)

// Visibility holds the show/hide toggles of a panel.
type Visibility struct {
	Value      bool `json:"value"`
	Label      bool `json:"label"`
	Trend      bool `json:"trend"`
	History    bool `json:"history"`
	Statistics bool `json:"statistics"`
	Comparison bool `json:"comparison"`
}

// Panel is one configured status widget.
//
// Panel is immutable after creation via [NewPanel]. Only the thresholds, the
// higher-is-better flag and the comparison settings influence computation;
// every other setting is presentation data carried through to the [View].
type Panel struct {
	name         string
	label        string
	thresholds   Thresholds
	theme        Theme
	customEmojis EmojiSet
	displayMode  DisplayMode
	emojiSize    int
	fontSize     int
	decimals     int
	show         Visibility
	textColor    string
	background   string
	animation    bool
	pulse        bool
	higherBetter bool
	compareMode  ComparisonMode
	target       float64
	alert        bool
	alertMessage string
	drilldown    bool
	source       SeriesSource
	interval     time.Duration
}

// Name returns the panel's unique name.
func (p Panel) Name() string { return p.name }

// Label returns the caption shown under the emoji.
func (p Panel) Label() string { return p.label }

// Thresholds returns the classification thresholds.
func (p Panel) Thresholds() Thresholds { return p.thresholds }

// Theme returns the configured emoji theme.
func (p Panel) Theme() Theme { return p.theme }

// Emojis returns the effective glyph table: the theme table with any custom
// overrides applied.
func (p Panel) Emojis() EmojiSet {
	return ThemeEmojis(p.theme).Override(p.customEmojis)
}

// DisplayMode returns how multiple fields are laid out.
func (p Panel) DisplayMode() DisplayMode { return p.displayMode }

// EmojiSize returns the emoji size in pixels.
func (p Panel) EmojiSize() int { return p.emojiSize }

// FontSize returns the value text size in pixels.
func (p Panel) FontSize() int { return p.fontSize }

// Decimals returns the number of decimal places used to format values.
func (p Panel) Decimals() int { return p.decimals }

// Show returns the visibility toggles.
func (p Panel) Show() Visibility { return p.show }

// Colors returns the text and background colours.
func (p Panel) Colors() (text, background string) { return p.textColor, p.background }

// Animation reports whether level changes are animated.
func (p Panel) Animation() bool { return p.animation }

// PulseOnCritical reports whether critical levels pulse.
func (p Panel) PulseOnCritical() bool { return p.pulse }

// HigherIsBetter reports whether rising values are good news.
func (p Panel) HigherIsBetter() bool { return p.higherBetter }

// Comparison returns the comparison mode and target value.
func (p Panel) Comparison() (ComparisonMode, float64) { return p.compareMode, p.target }

// CriticalAlert returns whether an alert is shown on critical, and its message.
func (p Panel) CriticalAlert() (enabled bool, message string) { return p.alert, p.alertMessage }

// Drilldown reports whether detailed statistics are offered on click.
func (p Panel) Drilldown() bool { return p.drilldown }

// Source returns the panel's [SeriesSource], or nil if none was set.
func (p Panel) Source() SeriesSource { return p.source }

// Interval returns the custom refresh interval, or 0 to use the board default.
func (p Panel) Interval() time.Duration { return p.interval }

// NewPanel creates a [Panel] with the given name and options.
//
// Defaults: faces theme, thresholds 95/80/60/40, single display mode, emoji
// size 100, font size 24, one decimal, value/label/trend shown, label
// "Status", animation and pulse on critical enabled, higher is better,
// comparison against a target of 80.
//
// Example:
//
//	p, err := emojistatus.NewPanel("availability",
//	    emojistatus.WithThresholds(emojistatus.Thresholds{Excellent: 99.9, Good: 99, OK: 95, Warning: 90}),
//	    emojistatus.WithTheme(emojistatus.ThemeTraffic),
//	    emojistatus.WithSource(emojistatus.FileSource("data/availability.yaml")),
//	)
func NewPanel(name string, opts ...PanelOption) (Panel, error) {
	if name == "" {
		return Panel{}, errors.New("panel name cannot be empty")
	}

	cfg := &panelConfig{
		label:        defaultLabel,
		thresholds:   DefaultThresholds(),
		theme:        DefaultTheme,
		customEmojis: EmojiSet{},
		displayMode:  DisplaySingle,
		emojiSize:    defaultEmojiSize,
		fontSize:     defaultFontSize,
		decimals:     defaultDecimals,
		show:         Visibility{Value: true, Label: true, Trend: true},
		textColor:    defaultTextColor,
		background:   defaultBackground,
		animation:    true,
		pulse:        true,
		higherBetter: true,
		compareMode:  CompareTarget,
		target:       defaultTargetValue,
		alertMessage: defaultAlertMessage,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Panel{}, fmt.Errorf("panel %q: %w", name, err)
		}
	}

	return Panel{
		name:         name,
		label:        cfg.label,
		thresholds:   cfg.thresholds,
		theme:        cfg.theme,
		customEmojis: cfg.customEmojis,
		displayMode:  cfg.displayMode,
		emojiSize:    cfg.emojiSize,
		fontSize:     cfg.fontSize,
		decimals:     cfg.decimals,
		show:         cfg.show,
		textColor:    cfg.textColor,
		background:   cfg.background,
		animation:    cfg.animation,
		pulse:        cfg.pulse,
		higherBetter: cfg.higherBetter,
		compareMode:  cfg.compareMode,
		target:       cfg.target,
		alert:        cfg.alert,
		alertMessage: cfg.alertMessage,
		drilldown:    cfg.drilldown,
		source:       cfg.source,
		interval:     cfg.interval,
	}, nil
}
