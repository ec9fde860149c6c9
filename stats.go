package emojistatus

// Statistics summarizes a whole series.
type Statistics struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// StatisticsOf returns min, max, arithmetic mean and count over every sample
// of s. An empty series returns the zero value.
func StatisticsOf(s Series) Statistics {
	if len(s) == 0 {
		return Statistics{}
	}

	lo, hi, sum := s[0], s[0], 0.0
	for _, v := range s {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		sum += v
	}

	return Statistics{
		Min:   lo,
		Max:   hi,
		Avg:   sum / float64(len(s)),
		Count: len(s),
	}
}
