package emojistatus

import "testing"

func TestThemeEmojis_CoverEveryLevel(t *testing.T) {
	for _, theme := range Themes() {
		set := ThemeEmojis(theme)
		for _, l := range Levels() {
			if set.Glyph(l) == "" {
				t.Errorf("theme %q has no glyph for %q", theme, l)
			}
		}
	}
}

func TestThemeEmojis_Faces(t *testing.T) {
	want := EmojiSet{
		LevelExcellent: "😍",
		LevelGood:      "😊",
		LevelOK:        "😐",
		LevelWarning:   "😟",
		LevelCritical:  "😱",
	}
	got := ThemeEmojis(ThemeFaces)
	for l, g := range want {
		if got[l] != g {
			t.Errorf("faces[%q] = %q, want %q", l, got[l], g)
		}
	}
}

func TestThemeEmojis_UnknownFallsBackToDefault(t *testing.T) {
	got := ThemeEmojis(Theme("neon"))
	def := ThemeEmojis(DefaultTheme)
	for _, l := range Levels() {
		if got[l] != def[l] {
			t.Errorf("unknown theme glyph for %q = %q, want %q", l, got[l], def[l])
		}
	}
}

func TestThemeEmojis_ReturnsCopy(t *testing.T) {
	set := ThemeEmojis(ThemeHearts)
	set[LevelCritical] = "x"

	if got := ThemeEmojis(ThemeHearts).Glyph(LevelCritical); got != "❤️" {
		t.Errorf("theme table was mutated through a copy: %q", got)
	}
}

func TestEmojiSet_Override(t *testing.T) {
	base := ThemeEmojis(ThemeTraffic)
	got := base.Override(EmojiSet{
		LevelCritical: "🔥",
		LevelOK:       "",
	})

	if got.Glyph(LevelCritical) != "🔥" {
		t.Errorf("critical = %q, want 🔥", got.Glyph(LevelCritical))
	}
	if got.Glyph(LevelOK) != "🟡" {
		t.Errorf("blank override should keep theme glyph, got %q", got.Glyph(LevelOK))
	}
	if base.Glyph(LevelCritical) != "🔴" {
		t.Error("Override should not modify the receiver")
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"", ThemeFaces, false},
		{"faces", ThemeFaces, false},
		{"weather", ThemeWeather, false},
		{"battery", ThemeBattery, false},
		{"neon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTheme(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTheme(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTheme(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
