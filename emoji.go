package emojistatus

import "fmt"

// Theme names a predefined emoji table.
type Theme string

const (
	ThemeFaces   Theme = "faces"
	ThemeTraffic Theme = "traffic"
	ThemeWeather Theme = "weather"
	ThemeBattery Theme = "battery"
	ThemeThumbs  Theme = "thumbs"
	ThemeHearts  Theme = "hearts"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = ThemeFaces

// EmojiSet maps each [Level] to the glyph displayed for it.
type EmojiSet map[Level]string

var themes = map[Theme]EmojiSet{
	ThemeFaces: {
		LevelExcellent: "😍",
		LevelGood:      "😊",
		LevelOK:        "😐",
		LevelWarning:   "😟",
		LevelCritical:  "😱",
	},
	ThemeTraffic: {
		LevelExcellent: "🟢",
		LevelGood:      "🟢",
		LevelOK:        "🟡",
		LevelWarning:   "🟠",
		LevelCritical:  "🔴",
	},
	ThemeWeather: {
		LevelExcellent: "☀️",
		LevelGood:      "⛅",
		LevelOK:        "☁️",
		LevelWarning:   "🌧️",
		LevelCritical:  "⛈️",
	},
	ThemeBattery: {
		LevelExcellent: "🔋",
		LevelGood:      "🔋",
		LevelOK:        "🪫",
		LevelWarning:   "🪫",
		LevelCritical:  "⚠️",
	},
	ThemeThumbs: {
		LevelExcellent: "👍",
		LevelGood:      "👍",
		LevelOK:        "👌",
		LevelWarning:   "👎",
		LevelCritical:  "👎",
	},
	ThemeHearts: {
		LevelExcellent: "💚",
		LevelGood:      "💙",
		LevelOK:        "💛",
		LevelWarning:   "🧡",
		LevelCritical:  "❤️",
	},
}

// Themes lists the predefined themes in display order.
func Themes() []Theme {
	return []Theme{ThemeFaces, ThemeTraffic, ThemeWeather, ThemeBattery, ThemeThumbs, ThemeHearts}
}

// ParseTheme converts a configuration string to a [Theme]. The empty string
// selects [DefaultTheme].
func ParseTheme(s string) (Theme, error) {
	if s == "" {
		return DefaultTheme, nil
	}
	t := Theme(s)
	if _, ok := themes[t]; !ok {
		return "", fmt.Errorf("unknown theme %q", s)
	}
	return t, nil
}

// ThemeEmojis returns a copy of the glyph table for t. Unknown themes fall
// back to [DefaultTheme].
func ThemeEmojis(t Theme) EmojiSet {
	set, ok := themes[t]
	if !ok {
		set = themes[DefaultTheme]
	}
	out := make(EmojiSet, len(set))
	for l, g := range set {
		out[l] = g
	}
	return out
}

// Override returns a copy of e with the non-blank glyphs of custom applied.
func (e EmojiSet) Override(custom EmojiSet) EmojiSet {
	out := make(EmojiSet, len(e))
	for l, g := range e {
		out[l] = g
	}
	for l, g := range custom {
		if g != "" {
			out[l] = g
		}
	}
	return out
}

// Glyph returns the glyph for l, or an empty string if the set has none.
func (e EmojiSet) Glyph(l Level) string {
	return e[l]
}
