package simulation

// constantSource always returns the same draw.
type constantSource struct {
	value float64
	draws int
}

func (c *constantSource) Float64() float64 {
	c.draws++
	return c.value
}

// scriptedSource replays a fixed sequence, cycling when exhausted.
type scriptedSource struct {
	values []float64
	next   int
}

func (s *scriptedSource) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// splitMix64 is a small portable generator so golden values can be
// reproduced outside Go.
type splitMix64 struct {
	state uint64
}

func newSplitMix64(seed uint64) *splitMix64 {
	return &splitMix64{state: seed}
}

func (s *splitMix64) Float64() float64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return float64(z>>11) / (1 << 53)
}
