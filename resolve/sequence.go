package resolve

// Sequence is a deterministic RNG that returns its values in order and then
// keeps repeating the last one. An empty Sequence always returns 0.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence creates a Sequence over values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next value.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	i := min(s.next, len(s.values)-1)
	s.next++
	return s.values[i]
}

// Calls returns how many values have been drawn.
func (s *Sequence) Calls() int { return s.next }
