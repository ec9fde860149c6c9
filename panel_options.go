package emojistatus

import (
	"errors"
	"fmt"
	"time"
)

// panelConfig holds mutable state during panel construction.
type panelConfig struct {
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

// PanelOption is a function that configures a [Panel] during construction.
//
// PanelOption implements the functional options pattern for [NewPanel].
// Options return an error if validation fails.
type PanelOption func(*panelConfig) error

// WithThresholds sets the four classification thresholds.
//
// The ordering Excellent >= Good >= OK >= Warning is expected but not
// enforced.
func WithThresholds(th Thresholds) PanelOption {
	return func(cfg *panelConfig) error {
		cfg.thresholds = th
		return nil
	}
}

// WithTheme selects a predefined emoji theme.
//
// Returns an error for a theme not listed by [Themes].
func WithTheme(t Theme) PanelOption {
	return func(cfg *panelConfig) error {
		parsed, err := ParseTheme(string(t))
		if err != nil {
			return err
		}
		cfg.theme = parsed
		return nil
	}
}

// WithCustomEmojis overrides the theme glyph for individual levels.
// Levels missing from custom, or mapped to "", keep the theme glyph.
//
// Example:
//
//	p, err := emojistatus.NewPanel("queue",
//	    emojistatus.WithCustomEmojis(emojistatus.EmojiSet{
//	        emojistatus.LevelCritical: "🔥",
//	    }),
//	)
//
// Returns an error if custom contains an unknown level.
func WithCustomEmojis(custom EmojiSet) PanelOption {
	return func(cfg *panelConfig) error {
		for l, g := range custom {
			if !l.Valid() {
				return fmt.Errorf("custom emoji for unknown level %q", l)
			}
			cfg.customEmojis[l] = g
		}
		return nil
	}
}

// WithDisplayMode sets how multiple fields are laid out.
func WithDisplayMode(m DisplayMode) PanelOption {
	return func(cfg *panelConfig) error {
		parsed, err := ParseDisplayMode(string(m))
		if err != nil {
			return err
		}
		cfg.displayMode = parsed
		return nil
	}
}

// WithEmojiSize sets the emoji size in pixels (20-300).
func WithEmojiSize(px int) PanelOption {
	return func(cfg *panelConfig) error {
		if px < 20 || px > 300 {
			return fmt.Errorf("emoji size must be between 20 and 300, got %d", px)
		}
		cfg.emojiSize = px
		return nil
	}
}

// WithFontSize sets the value text size in pixels (10-100).
func WithFontSize(px int) PanelOption {
	return func(cfg *panelConfig) error {
		if px < 10 || px > 100 {
			return fmt.Errorf("font size must be between 10 and 100, got %d", px)
		}
		cfg.fontSize = px
		return nil
	}
}

// WithDecimals sets the number of decimal places for formatted values (0-5).
func WithDecimals(n int) PanelOption {
	return func(cfg *panelConfig) error {
		if n < 0 || n > 5 {
			return fmt.Errorf("decimals must be between 0 and 5, got %d", n)
		}
		cfg.decimals = n
		return nil
	}
}

// WithVisibility replaces all show/hide toggles at once.
//
// Example:
//
//	emojistatus.WithVisibility(emojistatus.Visibility{
//	    Value: true, Trend: true, History: true,
//	})
func WithVisibility(v Visibility) PanelOption {
	return func(cfg *panelConfig) error {
		cfg.show = v
		return nil
	}
}

// WithLabel sets the caption text. An empty label hides the caption.
func WithLabel(label string) PanelOption {
	return func(cfg *panelConfig) error {
		cfg.label = label
		if label == "" {
			cfg.show.Label = false
		}
		return nil
	}
}

// WithColors sets the text and background colours. Empty values keep the
// defaults (#ffffff on transparent).
func WithColors(text, background string) PanelOption {
	return func(cfg *panelConfig) error {
		if text != "" {
			cfg.textColor = text
		}
		if background != "" {
			cfg.background = background
		}
		return nil
	}
}

// WithAnimation enables or disables emoji animation, and the pulse effect
// for critical levels.
func WithAnimation(enabled, pulseOnCritical bool) PanelOption {
	return func(cfg *panelConfig) error {
		cfg.animation = enabled
		cfg.pulse = pulseOnCritical
		return nil
	}
}

// WithHigherIsBetter declares whether rising values are good news. It only
// affects the trend arrow; classification always treats higher values as
// better.
func WithHigherIsBetter(b bool) PanelOption {
	return func(cfg *panelConfig) error {
		cfg.higherBetter = b
		return nil
	}
}

// WithComparison sets the comparison mode and target value, and turns the
// comparison display on. The target is ignored in [ComparePrevious] mode.
func WithComparison(mode ComparisonMode, target float64) PanelOption {
	return func(cfg *panelConfig) error {
		parsed, err := ParseComparisonMode(string(mode))
		if err != nil {
			return err
		}
		cfg.compareMode = parsed
		cfg.target = target
		cfg.show.Comparison = true
		return nil
	}
}

// WithCriticalAlert shows message whenever the panel is critical. An empty
// message keeps the default "⚠️ Critical Status!".
func WithCriticalAlert(message string) PanelOption {
	return func(cfg *panelConfig) error {
		cfg.alert = true
		if message != "" {
			cfg.alertMessage = message
		}
		return nil
	}
}

// WithDrilldown makes detailed statistics available regardless of the
// statistics toggle.
func WithDrilldown(enabled bool) PanelOption {
	return func(cfg *panelConfig) error {
		cfg.drilldown = enabled
		return nil
	}
}

// WithSource sets where a [Board] loads the panel's fields from.
//
// Returns an error if src is nil.
func WithSource(src SeriesSource) PanelOption {
	return func(cfg *panelConfig) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		cfg.source = src
		return nil
	}
}

// WithInterval sets a custom refresh interval for this panel when run by a
// [Board]. The interval must be between 1 second and 1 hour.
//
// Note: the interval is measured from when a refresh starts, not when it
// completes.
func WithInterval(d time.Duration) PanelOption {
	return func(cfg *panelConfig) error {
		if d < time.Second {
			return errors.New("interval must be at least 1 second")
		}
		if d > time.Hour {
			return errors.New("interval must not exceed 1 hour")
		}
		cfg.interval = d
		return nil
	}
}
