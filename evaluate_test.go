package emojistatus

import (
	"testing"
)

func mustPanel(t *testing.T, name string, opts ...PanelOption) Panel {
	t.Helper()
	p, err := NewPanel(name, opts...)
	if err != nil {
		t.Fatalf("NewPanel() error = %v", err)
	}
	return p
}

func TestEvaluateSeries_RisingScenario(t *testing.T) {
	p := mustPanel(t, "availability",
		WithVisibility(Visibility{Value: true, Label: true, Trend: true, History: true, Statistics: true}),
	)

	e := EvaluateSeries(p, Series{40, 50, 60, 70, 80, 90, 95, 96, 97, 98})

	if e.Level != LevelExcellent {
		t.Errorf("Level = %q, want %q", e.Level, LevelExcellent)
	}
	if e.Emoji != "😍" {
		t.Errorf("Emoji = %q, want 😍", e.Emoji)
	}
	if e.Formatted != "98.0" {
		t.Errorf("Formatted = %q, want 98.0", e.Formatted)
	}
	if e.Trend == nil || e.Trend.Direction != DirectionStable {
		t.Errorf("Trend = %+v, want stable", e.Trend)
	}
	want := HistogramSummary{Excellent: 4, Good: 2, OK: 2, Warning: 2, Total: 10}
	if e.History == nil || *e.History != want {
		t.Errorf("History = %+v, want %+v", e.History, want)
	}
	if e.Statistics == nil || e.Statistics.Min != 40 || e.Statistics.Max != 98 {
		t.Errorf("Statistics = %+v, want min 40 max 98", e.Statistics)
	}
	if e.Alert != "" || e.Pulse {
		t.Errorf("excellent level should not alert or pulse: %+v", e)
	}
}

func TestEvaluateSeries_Empty(t *testing.T) {
	p := mustPanel(t, "empty", WithCriticalAlert(""))
	e := EvaluateSeries(p, nil)

	if e.HasValue {
		t.Error("HasValue = true, want false")
	}
	if e.Formatted != "N/A" {
		t.Errorf("Formatted = %q, want N/A", e.Formatted)
	}
	if e.Level != LevelCritical {
		t.Errorf("Level = %q, want critical", e.Level)
	}
	if e.Emoji != "😱" {
		t.Errorf("Emoji = %q, want 😱", e.Emoji)
	}
	if e.Alert != "⚠️ Critical Status!" {
		t.Errorf("Alert = %q, want default message", e.Alert)
	}
	if !e.Pulse {
		t.Error("Pulse = false, want true for critical with default animation")
	}
	if e.Trend == nil || e.Trend.Direction != DirectionStable || e.Indicator != IndicatorNeutral {
		t.Errorf("Trend = %+v indicator %q, want stable/neutral", e.Trend, e.Indicator)
	}
}

func TestEvaluateSeries_Toggles(t *testing.T) {
	series := Series{50, 30}

	tests := []struct {
		name           string
		opts           []PanelOption
		wantTrend      bool
		wantHistory    bool
		wantStatistics bool
		wantComparison bool
		wantAlert      bool
		wantPulse      bool
	}{
		{
			name:      "defaults",
			wantTrend: true, wantPulse: true,
		},
		{
			name: "everything hidden",
			opts: []PanelOption{WithVisibility(Visibility{}), WithAnimation(false, false)},
		},
		{
			name:           "drilldown forces statistics",
			opts:           []PanelOption{WithVisibility(Visibility{}), WithDrilldown(true)},
			wantStatistics: true, wantPulse: true,
		},
		{
			name:           "comparison and alert",
			opts:           []PanelOption{WithComparison(ComparePrevious, 0), WithCriticalAlert("down")},
			wantTrend:      true,
			wantComparison: true, wantAlert: true, wantPulse: true,
		},
		{
			name:      "pulse needs animation",
			opts:      []PanelOption{WithAnimation(false, true)},
			wantTrend: true,
		},
		{
			name:        "history only",
			opts:        []PanelOption{WithVisibility(Visibility{History: true})},
			wantHistory: true, wantPulse: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := EvaluateSeries(mustPanel(t, "p", tt.opts...), series)

			if (e.Trend != nil) != tt.wantTrend {
				t.Errorf("Trend present = %v, want %v", e.Trend != nil, tt.wantTrend)
			}
			if (e.History != nil) != tt.wantHistory {
				t.Errorf("History present = %v, want %v", e.History != nil, tt.wantHistory)
			}
			if (e.Statistics != nil) != tt.wantStatistics {
				t.Errorf("Statistics present = %v, want %v", e.Statistics != nil, tt.wantStatistics)
			}
			if (e.Comparison != nil) != tt.wantComparison {
				t.Errorf("Comparison present = %v, want %v", e.Comparison != nil, tt.wantComparison)
			}
			if (e.Alert != "") != tt.wantAlert {
				t.Errorf("Alert = %q, want present %v", e.Alert, tt.wantAlert)
			}
			if e.Pulse != tt.wantPulse {
				t.Errorf("Pulse = %v, want %v", e.Pulse, tt.wantPulse)
			}
		})
	}
}

func TestEvaluateSeries_HigherIsBetterOnlyAffectsIndicator(t *testing.T) {
	series := Series{20, 30}

	up := EvaluateSeries(mustPanel(t, "latency"), series)
	down := EvaluateSeries(mustPanel(t, "latency", WithHigherIsBetter(false)), series)

	if up.Level != down.Level {
		t.Errorf("level changed with higherIsBetter: %q vs %q", up.Level, down.Level)
	}
	if up.Trend.Direction != DirectionImproving || down.Trend.Direction != DirectionImproving {
		t.Errorf("direction should be improving regardless, got %q and %q", up.Trend.Direction, down.Trend.Direction)
	}
	if up.Indicator != IndicatorUp {
		t.Errorf("higherIsBetter indicator = %q, want up", up.Indicator)
	}
	if down.Indicator != IndicatorDown {
		t.Errorf("lowerIsBetter indicator = %q, want down", down.Indicator)
	}
}

func TestEvaluateSeries_CustomEmojiAndDecimals(t *testing.T) {
	p := mustPanel(t, "queue",
		WithTheme(ThemeWeather),
		WithCustomEmojis(EmojiSet{LevelGood: "🌈"}),
		WithDecimals(3),
	)

	e := EvaluateSeries(p, Series{85.12345})
	if e.Emoji != "🌈" {
		t.Errorf("Emoji = %q, want custom 🌈", e.Emoji)
	}
	if e.Formatted != "85.123" {
		t.Errorf("Formatted = %q, want 85.123", e.Formatted)
	}

	e = EvaluateSeries(p, Series{10})
	if e.Emoji != "⛈️" {
		t.Errorf("Emoji = %q, want theme glyph ⛈️", e.Emoji)
	}
}

func TestEvaluate_DisplayModes(t *testing.T) {
	fields := []Field{
		{Name: "cpu", Values: Series{99}},
		{Name: "memory", Values: Series{50}},
		{Name: "disk", Values: Series{10}},
	}

	tests := []struct {
		name      string
		mode      DisplayMode
		fields    []Field
		wantCount int
		wantWorst Level
	}{
		{"single", DisplaySingle, fields, 1, LevelExcellent},
		{"grid", DisplayGrid, fields, 3, LevelCritical},
		{"list", DisplayList, fields, 3, LevelCritical},
		{"single skips empty field", DisplaySingle, []Field{{Name: "empty"}, {Name: "cpu", Values: Series{99}}}, 1, LevelExcellent},
		{"grid skips empty field", DisplayGrid, []Field{{Name: "cpu", Values: Series{99}}, {Name: "empty", Values: Series{}}}, 1, LevelExcellent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(mustPanel(t, "host", WithDisplayMode(tt.mode)), tt.fields)
			if len(v.Evaluations) != tt.wantCount {
				t.Fatalf("got %d evaluations, want %d", len(v.Evaluations), tt.wantCount)
			}
			if v.Evaluations[0].Field != "cpu" {
				t.Errorf("first field = %q, want cpu", v.Evaluations[0].Field)
			}
			if got := v.Worst(); got != tt.wantWorst {
				t.Errorf("Worst() = %q, want %q", got, tt.wantWorst)
			}
			if v.DisplayMode != tt.mode {
				t.Errorf("DisplayMode = %q, want %q", v.DisplayMode, tt.mode)
			}
		})
	}
}

func TestEvaluate_NoFields(t *testing.T) {
	v := Evaluate(mustPanel(t, "idle", WithDisplayMode(DisplayGrid)), nil)

	if len(v.Evaluations) != 1 {
		t.Fatalf("got %d evaluations, want 1", len(v.Evaluations))
	}
	e := v.Evaluations[0]
	if e.Field != DefaultFieldName || e.Level != LevelCritical || e.HasValue {
		t.Errorf("evaluation = %+v, want critical %q without value", e, DefaultFieldName)
	}
}

func TestEvaluate_OnlyEmptyFields(t *testing.T) {
	v := Evaluate(mustPanel(t, "idle", WithDisplayMode(DisplayList)), []Field{{Name: "a"}, {Name: "b"}})

	if len(v.Evaluations) != 1 {
		t.Fatalf("got %d evaluations, want 1", len(v.Evaluations))
	}
	if e := v.Evaluations[0]; e.Field != DefaultFieldName || e.Level != LevelCritical {
		t.Errorf("evaluation = %+v, want critical %q", e, DefaultFieldName)
	}
}

func TestEvaluate_Label(t *testing.T) {
	v := Evaluate(mustPanel(t, "a"), nil)
	if v.Label != "Status" {
		t.Errorf("Label = %q, want default Status", v.Label)
	}

	v = Evaluate(mustPanel(t, "a", WithLabel("")), nil)
	if v.Label != "" {
		t.Errorf("Label = %q, want hidden", v.Label)
	}

	v = Evaluate(mustPanel(t, "a", WithLabel("Uptime"), WithVisibility(Visibility{Value: true})), nil)
	if v.Label != "" {
		t.Errorf("Label = %q, want hidden when toggle is off", v.Label)
	}
}

func TestEvaluate_DoesNotModifyFields(t *testing.T) {
	fields := []Field{{Name: "cpu", Values: Series{3, 1, 2}}}
	p := mustPanel(t, "cpu", WithVisibility(Visibility{Trend: true, History: true, Statistics: true, Comparison: true}))

	Evaluate(p, fields)

	want := Series{3, 1, 2}
	for i := range want {
		if fields[0].Values[i] != want[i] {
			t.Fatalf("fields modified: %v", fields[0].Values)
		}
	}
}

func TestView_Worst_Empty(t *testing.T) {
	if got := (View{}).Worst(); got != LevelCritical {
		t.Errorf("Worst() = %q, want critical", got)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{98, 1, "98.0"},
		{98.25, 0, "98"},
		{1.23456, 5, "1.23456"},
		{-3.5, 1, "-3.5"},
		{7, -1, "7"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.v, tt.decimals); got != tt.want {
			t.Errorf("FormatValue(%v, %d) = %q, want %q", tt.v, tt.decimals, got, tt.want)
		}
	}
}
