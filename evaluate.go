package emojistatus

import "strconv"

// Evaluation is everything a renderer needs to draw one field of a panel.
//
// Optional sections are nil when the corresponding display toggle is off,
// so a renderer never has to consult the panel options again.
type Evaluation struct {
	Field string `json:"field"`

	// Value is the latest sample. HasValue is false for an empty series, in
	// which case Value is zero and Level is critical.
	Value    float64 `json:"value"`
	HasValue bool    `json:"has_value"`

	// Formatted is Value rendered with the panel's decimal places, or "N/A"
	// when there is no value.
	Formatted string `json:"formatted"`

	Level Level  `json:"level"`
	Emoji string `json:"emoji"`

	Trend     *Trend    `json:"trend,omitempty"`
	Indicator Indicator `json:"indicator,omitempty"`

	History    *HistogramSummary `json:"history,omitempty"`
	Statistics *Statistics       `json:"statistics,omitempty"`
	Comparison *Comparison       `json:"comparison,omitempty"`

	// Alert is the critical alert message, set only when alerts are enabled
	// and the level is critical.
	Alert string `json:"alert,omitempty"`

	// Pulse is true when the renderer should pulse the emoji.
	Pulse bool `json:"pulse"`
}

// View is the evaluation of a whole panel for one set of fields.
type View struct {
	Panel       string       `json:"panel"`
	Label       string       `json:"label,omitempty"`
	DisplayMode DisplayMode  `json:"display_mode"`
	Evaluations []Evaluation `json:"evaluations"`
}

// Worst returns the lowest level across the view's evaluations, or
// critical for a view with no evaluations.
func (v View) Worst() Level {
	if len(v.Evaluations) == 0 {
		return LevelCritical
	}
	worst := v.Evaluations[0].Level
	for _, e := range v.Evaluations[1:] {
		if e.Level.Rank() < worst.Rank() {
			worst = e.Level
		}
	}
	return worst
}

// Evaluate computes the [View] of p for the given fields.
//
// Fields without samples are skipped. In [DisplaySingle] mode only the
// first remaining field is evaluated; grid and list modes evaluate every
// remaining field in order. A panel left with no fields still produces one
// evaluation, for an empty series, so the renderer shows the critical state
// rather than nothing.
//
// Evaluate is pure: it keeps no state and does not modify fields.
func Evaluate(p Panel, fields []Field) View {
	view := View{
		Panel:       p.name,
		DisplayMode: p.displayMode,
	}
	if p.show.Label {
		view.Label = p.label
	}

	fields = withSamples(fields)
	if len(fields) == 0 {
		fields = []Field{{Name: DefaultFieldName}}
	}
	if p.displayMode == DisplaySingle {
		fields = fields[:1]
	}

	emojis := p.Emojis()
	view.Evaluations = make([]Evaluation, 0, len(fields))
	for _, f := range fields {
		view.Evaluations = append(view.Evaluations, evaluateField(p, emojis, f))
	}
	return view
}

// withSamples returns the fields that have at least one sample. The input
// slice is not modified.
func withSamples(fields []Field) []Field {
	kept := make([]Field, 0, len(fields))
	for _, f := range fields {
		if len(f.Values) > 0 {
			kept = append(kept, f)
		}
	}
	return kept
}

// EvaluateSeries is a convenience wrapper that evaluates a single unnamed
// series.
func EvaluateSeries(p Panel, s Series) Evaluation {
	return evaluateField(p, p.Emojis(), Field{Name: DefaultFieldName, Values: s})
}

func evaluateField(p Panel, emojis EmojiSet, f Field) Evaluation {
	s := f.Values
	level := ClassifyLatest(s, p.thresholds)

	e := Evaluation{
		Field:     f.Name,
		Formatted: "N/A",
		Level:     level,
		Emoji:     emojis.Glyph(level),
	}
	if v, ok := s.Latest(); ok {
		e.Value = v
		e.HasValue = true
		e.Formatted = FormatValue(v, p.decimals)
	}

	if p.show.Trend {
		t := TrendOf(s)
		e.Trend = &t
		e.Indicator = t.Direction.Indicator(p.higherBetter)
	}
	if p.show.History {
		h := HistoricalSummary(s, p.thresholds)
		e.History = &h
	}
	if p.show.Statistics || p.drilldown {
		st := StatisticsOf(s)
		e.Statistics = &st
	}
	if p.show.Comparison {
		if c, ok := Compare(s, p.compareMode, p.target); ok {
			e.Comparison = &c
		}
	}
	if level == LevelCritical {
		if p.alert {
			e.Alert = p.alertMessage
		}
		e.Pulse = p.animation && p.pulse
	}
	return e
}

// FormatValue renders v with a fixed number of decimal places.
func FormatValue(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
