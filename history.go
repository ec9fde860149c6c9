package emojistatus

// HistoryWindow is the number of trailing samples summarized by
// [HistoricalSummary].
const HistoryWindow = 10

// HistogramSummary counts how many recent samples fell into each level.
type HistogramSummary struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	OK        int `json:"ok"`
	Warning   int `json:"warning"`
	Critical  int `json:"critical"`

	// Total is the number of samples in the window: min(HistoryWindow, len(series)).
	Total int `json:"total"`
}

// HistoricalSummary classifies the last [HistoryWindow] samples of s (fewer
// if s is shorter) and reports per-level counts.
//
// Each band is tested independently by range membership, e.g. good is
// [th.Good, th.Excellent). With ordered thresholds the bands partition the
// window and the counts sum to Total. With non-monotonic thresholds, or NaN
// samples, a sample may match no band; the counts then sum to less than
// Total.
func HistoricalSummary(s Series, th Thresholds) HistogramSummary {
	start := len(s) - HistoryWindow
	if start < 0 {
		start = 0
	}
	recent := s[start:]

	var h HistogramSummary
	for _, v := range recent {
		if v >= th.Excellent {
			h.Excellent++
		}
		if v >= th.Good && v < th.Excellent {
			h.Good++
		}
		if v >= th.OK && v < th.Good {
			h.OK++
		}
		if v >= th.Warning && v < th.OK {
			h.Warning++
		}
		if v < th.Warning {
			h.Critical++
		}
	}
	h.Total = len(recent)
	return h
}

// Count returns the number of windowed samples at the given level.
func (h HistogramSummary) Count(l Level) int {
	switch l {
	case LevelExcellent:
		return h.Excellent
	case LevelGood:
		return h.Good
	case LevelOK:
		return h.OK
	case LevelWarning:
		return h.Warning
	case LevelCritical:
		return h.Critical
	default:
		return 0
	}
}

// Fraction returns Count(l)/Total, or 0 for an empty window.
func (h HistogramSummary) Fraction(l Level) float64 {
	if h.Total == 0 {
		return 0
	}
	return float64(h.Count(l)) / float64(h.Total)
}
