package emojistatus

// Series is an ordered sequence of samples for one metric, oldest first.
//
// Series is supplied by the host on every evaluation. None of the functions
// in this package modify a Series; helpers that return sub-sequences return
// copies.
type Series []float64

// Latest returns the most recent sample. ok is false for an empty series.
func (s Series) Latest() (v float64, ok bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1], true
}

// Previous returns the sample before the most recent one. ok is false when
// the series has fewer than two samples.
func (s Series) Previous() (v float64, ok bool) {
	if len(s) < 2 {
		return 0, false
	}
	return s[len(s)-2], true
}

// Window returns a copy of the trailing n samples, or of the whole series
// when it is shorter than n. A non-positive n yields an empty series.
func (s Series) Window(n int) Series {
	if n <= 0 || len(s) == 0 {
		return Series{}
	}
	if n > len(s) {
		n = len(s)
	}
	out := make(Series, n)
	copy(out, s[len(s)-n:])
	return out
}

// Field is a named [Series], the unit a panel receives from its source.
type Field struct {
	// Name identifies the metric (e.g. "cpu" or "availability").
	Name string `json:"name" yaml:"name"`

	// Values holds the samples, oldest first.
	Values Series `json:"values" yaml:"values"`
}
