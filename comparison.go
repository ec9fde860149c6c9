package emojistatus

import "fmt"

// ComparisonMode selects the reference a panel compares its latest value to.
type ComparisonMode string

const (
	// CompareTarget compares against a fixed target value.
	CompareTarget ComparisonMode = "target"

	// ComparePrevious compares against the previous sample.
	ComparePrevious ComparisonMode = "previous"
)

// ParseComparisonMode converts a configuration string to a [ComparisonMode].
// The empty string selects [CompareTarget].
func ParseComparisonMode(s string) (ComparisonMode, error) {
	switch ComparisonMode(s) {
	case "", CompareTarget:
		return CompareTarget, nil
	case ComparePrevious:
		return ComparePrevious, nil
	default:
		return "", fmt.Errorf("unknown comparison mode %q (expected 'target' or 'previous')", s)
	}
}

// Comparison is the latest value measured against a reference.
type Comparison struct {
	Mode      ComparisonMode `json:"mode"`
	Reference float64        `json:"reference"`

	// Difference is latest - Reference.
	Difference float64 `json:"difference"`

	// Percent depends on the mode. Against a target it is the attainment,
	// latest / Reference * 100, so meeting the target exactly is 100.
	// Against the previous sample it is the change, Difference / Reference
	// * 100. Like [Trend.ChangePercent] neither is guarded against a zero
	// reference.
	Percent float64 `json:"percent"`

	// Met reports latest >= Reference in [CompareTarget] mode. It is always
	// false in [ComparePrevious] mode.
	Met bool `json:"met"`
}

// Compare measures the latest sample of s against the reference selected by
// mode. ok is false when there is nothing to compare: an empty series, or a
// single sample in [ComparePrevious] mode.
func Compare(s Series, mode ComparisonMode, target float64) (c Comparison, ok bool) {
	latest, ok := s.Latest()
	if !ok {
		return Comparison{}, false
	}

	ref := target
	if mode == ComparePrevious {
		ref, ok = s.Previous()
		if !ok {
			return Comparison{}, false
		}
	} else {
		mode = CompareTarget
	}

	c = Comparison{
		Mode:       mode,
		Reference:  ref,
		Difference: latest - ref,
	}
	if mode == CompareTarget {
		c.Percent = latest / ref * 100
		c.Met = latest >= ref
	} else {
		c.Percent = c.Difference / ref * 100
	}
	return c, true
}
