package emojistatus

// TrendDeadband is the relative change, in percent, inside which the series
// is considered stable. It is fixed, not configurable.
const TrendDeadband = 5.0

// Direction is the short-term movement of a series between its two most
// recent samples.
type Direction string

const (
	// DirectionImproving means the latest sample rose by more than the deadband.
	DirectionImproving Direction = "improving"

	// DirectionDeclining means the latest sample fell by more than the deadband.
	DirectionDeclining Direction = "declining"

	// DirectionStable means the change stayed within ±TrendDeadband percent,
	// or there were fewer than two samples.
	DirectionStable Direction = "stable"
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	return string(d)
}

// Indicator is the arrow semantics shown for a trend, after taking into
// account whether higher values are better.
type Indicator string

const (
	IndicatorUp      Indicator = "up"
	IndicatorDown    Indicator = "down"
	IndicatorNeutral Indicator = "neutral"
)

// Glyph returns the emoji used to draw the indicator.
func (i Indicator) Glyph() string {
	switch i {
	case IndicatorUp:
		return "📈"
	case IndicatorDown:
		return "📉"
	default:
		return "➡️"
	}
}

// Indicator maps the direction to an arrow. When higherIsBetter is true an
// improving series points up and a declining one points down; when false the
// arrows are inverted. Stable is always neutral.
func (d Direction) Indicator(higherIsBetter bool) Indicator {
	switch d {
	case DirectionImproving:
		if higherIsBetter {
			return IndicatorUp
		}
		return IndicatorDown
	case DirectionDeclining:
		if higherIsBetter {
			return IndicatorDown
		}
		return IndicatorUp
	default:
		return IndicatorNeutral
	}
}

// Trend is the result of [TrendOf].
type Trend struct {
	Direction Direction `json:"direction"`

	// ChangePercent is (latest - previous) / previous * 100.
	// When previous is zero this is ±Inf or NaN.
	ChangePercent float64 `json:"change_percent"`
}

// TrendOf compares the two most recent samples of s.
//
// With fewer than two samples the trend is stable with zero change.
// Otherwise the relative change is computed without guarding against a zero
// previous sample: such a series yields an infinite (or NaN, for 0 → 0)
// ChangePercent. An infinite change is still classified by the deadband
// (+Inf improving, -Inf declining); NaN is stable.
func TrendOf(s Series) Trend {
	current, ok := s.Latest()
	if !ok {
		return Trend{Direction: DirectionStable}
	}
	previous, ok := s.Previous()
	if !ok {
		return Trend{Direction: DirectionStable}
	}

	change := (current - previous) / previous * 100

	switch {
	case change > TrendDeadband:
		return Trend{Direction: DirectionImproving, ChangePercent: change}
	case change < -TrendDeadband:
		return Trend{Direction: DirectionDeclining, ChangePercent: change}
	default:
		return Trend{Direction: DirectionStable, ChangePercent: change}
	}
}
