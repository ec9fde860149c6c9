package emojistatus

import (
	"math"

	"github.com/jpalmerr/emojistatus/internal/store"
)

// PanelState is the JSON form of a refreshed panel, as served by the
// dashboard API. Non-finite numbers are carried as nil pointers, which
// encode as JSON null.
type PanelState = store.PanelState

// StateOf converts a refresh of p into its serialized [PanelState].
func StateOf(p Panel, r RefreshResult) PanelState {
	v := r.View

	state := PanelState{
		Name:        p.name,
		Label:       v.Label,
		DisplayMode: string(v.DisplayMode),
		Level:       v.Worst().String(),
		Fields:      make([]store.FieldState, 0, len(v.Evaluations)),
		Style: store.Style{
			EmojiSize:  p.emojiSize,
			FontSize:   p.fontSize,
			TextColor:  p.textColor,
			Background: p.background,
			Animation:  p.animation,
			Drilldown:  p.drilldown,
			ShowValue:  p.show.Value,
		},
		RefreshedAt: r.RefreshedAt,
		DurationMs:  r.Duration.Milliseconds(),
	}
	if r.Error != nil {
		msg := r.Error.Error()
		state.Error = &msg
	}

	for _, e := range v.Evaluations {
		state.Fields = append(state.Fields, fieldState(e))
	}
	return state
}

func fieldState(e Evaluation) store.FieldState {
	fs := store.FieldState{
		Field:     e.Field,
		Formatted: e.Formatted,
		Level:     e.Level.String(),
		Emoji:     e.Emoji,
		Alert:     e.Alert,
		Pulse:     e.Pulse,
	}
	if e.HasValue {
		fs.Value = finite(e.Value)
	}

	if e.Trend != nil {
		fs.Trend = &store.TrendState{
			Direction:     string(e.Trend.Direction),
			ChangePercent: finite(e.Trend.ChangePercent),
			Indicator:     string(e.Indicator),
			Glyph:         e.Indicator.Glyph(),
		}
	}
	if e.History != nil {
		h := e.History
		fs.History = &store.HistoryState{
			Excellent: h.Excellent,
			Good:      h.Good,
			OK:        h.OK,
			Warning:   h.Warning,
			Critical:  h.Critical,
			Total:     h.Total,
		}
	}
	if e.Statistics != nil {
		st := e.Statistics
		fs.Statistics = &store.StatisticsState{Count: st.Count}
		if st.Count > 0 {
			fs.Statistics.Min = finite(st.Min)
			fs.Statistics.Max = finite(st.Max)
			fs.Statistics.Avg = finite(st.Avg)
		}
	}
	if e.Comparison != nil {
		c := e.Comparison
		fs.Comparison = &store.ComparisonState{
			Mode:       string(c.Mode),
			Reference:  finite(c.Reference),
			Difference: finite(c.Difference),
			Percent:    finite(c.Percent),
			Met:        c.Met,
		}
	}
	return fs
}

// finite returns a pointer to v, or nil when v is NaN or infinite.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
