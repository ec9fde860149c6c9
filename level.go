package emojistatus

// Level is the qualitative status derived from comparing a value against
// the configured [Thresholds].
//
// Level is a string type so it serializes readably in JSON and logs. The
// five values are totally ordered; see [Level.Rank].
type Level string

const (
	// LevelExcellent is the best level: value >= Thresholds.Excellent.
	LevelExcellent Level = "excellent"

	// LevelGood means Thresholds.Good <= value < Thresholds.Excellent.
	LevelGood Level = "good"

	// LevelOK means Thresholds.OK <= value < Thresholds.Good.
	LevelOK Level = "ok"

	// LevelWarning means Thresholds.Warning <= value < Thresholds.OK.
	LevelWarning Level = "warning"

	// LevelCritical is the worst level. It is also the result when no data
	// is available.
	LevelCritical Level = "critical"
)

// Levels lists every level from best to worst.
func Levels() []Level {
	return []Level{LevelExcellent, LevelGood, LevelOK, LevelWarning, LevelCritical}
}

// String returns the string representation of the level.
// This implements the fmt.Stringer interface.
func (l Level) String() string {
	return string(l)
}

// Rank returns the ordinal position of the level: 4 for excellent down to 0
// for critical. Unknown levels rank -1.
func (l Level) Rank() int {
	switch l {
	case LevelExcellent:
		return 4
	case LevelGood:
		return 3
	case LevelOK:
		return 2
	case LevelWarning:
		return 1
	case LevelCritical:
		return 0
	default:
		return -1
	}
}

// Valid reports whether l is one of the five defined levels.
func (l Level) Valid() bool {
	return l.Rank() >= 0
}

// Thresholds holds the four lower bounds used for classification.
//
// Classification is monotonic only when Excellent >= Good >= OK >= Warning.
// The ordering is not validated here; a non-monotonic configuration is the
// caller's responsibility.
type Thresholds struct {
	Excellent float64 `json:"excellent" yaml:"excellent"`
	Good      float64 `json:"good" yaml:"good"`
	OK        float64 `json:"ok" yaml:"ok"`
	Warning   float64 `json:"warning" yaml:"warning"`
}

// DefaultThresholds returns the thresholds used when none are configured:
// excellent 95, good 80, ok 60, warning 40.
func DefaultThresholds() Thresholds {
	return Thresholds{Excellent: 95, Good: 80, OK: 60, Warning: 40}
}

// Classify maps a value to a [Level] by walking the thresholds from the top:
// the first threshold the value reaches determines the level, and a value
// below all four is [LevelCritical].
//
// Classify is total. NaN fails every comparison and classifies as critical.
func Classify(value float64, th Thresholds) Level {
	switch {
	case value >= th.Excellent:
		return LevelExcellent
	case value >= th.Good:
		return LevelGood
	case value >= th.OK:
		return LevelOK
	case value >= th.Warning:
		return LevelWarning
	default:
		return LevelCritical
	}
}

// ClassifyLatest classifies the most recent sample of s. An empty series
// has no value and yields [LevelCritical]: missing data is treated as the
// worst case, not as unknown.
func ClassifyLatest(s Series, th Thresholds) Level {
	v, ok := s.Latest()
	if !ok {
		return LevelCritical
	}
	return Classify(v, th)
}
