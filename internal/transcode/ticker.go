package transcode

import "math"

// Ticker turns cumulative percentages into whole-percent deltas.
//
// Each call returns ceil(percent) minus the highest value already counted,
// or zero when that would be negative. Feeding 0,5,5,12,12,12,100 yields
// 0,5,0,7,0,0,88.
type Ticker struct {
	last int
}

// Tick records percent and returns the number of new whole percents.
func (t *Ticker) Tick(percent float64) int {
	if math.IsNaN(percent) {
		return 0
	}
	p := int(math.Ceil(percent))
	if p > 100 {
		p = 100
	}
	if p <= t.last {
		return 0
	}
	delta := p - t.last
	t.last = p
	return delta
}

// Counted returns the whole percents counted so far.
func (t *Ticker) Counted() int {
	return t.last
}
