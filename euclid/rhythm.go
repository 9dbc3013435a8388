package euclid

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrNegative      = errors.New("euclid: negative pulse or step count")
	ErrTooManyPulses = errors.New("euclid: more pulses than steps")
)

// Rhythm is an endless cyclic on/off sequence with k pulses spread as evenly
// as possible over n steps. A Rhythm is never reset; build a new one instead.
type Rhythm struct {
	pattern []bool
	cursor  int
}

// New builds the rhythm for k pulses over n steps. If either is zero the
// rhythm is silent: Next always returns false.
func New(k, n int) (*Rhythm, error) {
	pattern, err := Pattern(k, n)
	if err != nil {
		return nil, err
	}
	return &Rhythm{pattern: pattern}, nil
}

// Silent returns a rhythm that never fires.
func Silent() *Rhythm {
	return &Rhythm{}
}

// Next returns the step under the cursor and advances the cursor, wrapping
// at the end of the period.
func (r *Rhythm) Next() bool {
	if len(r.pattern) == 0 {
		return false
	}
	on := r.pattern[r.cursor]
	r.cursor = (r.cursor + 1) % len(r.pattern)
	return on
}

// Cursor is the index of the step the next call to Next will return.
func (r *Rhythm) Cursor() int {
	return r.cursor
}

// Period returns a copy of one full cycle (nil for a silent rhythm).
func (r *Rhythm) Period() []bool {
	if len(r.pattern) == 0 {
		return nil
	}
	out := make([]bool, len(r.pattern))
	copy(out, r.pattern)
	return out
}

// String renders one period as x (pulse) and . (rest).
func (r *Rhythm) String() string {
	if len(r.pattern) == 0 {
		return "-"
	}
	var b strings.Builder
	for _, on := range r.pattern {
		if on {
			b.WriteByte('x')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// groups is the state of one Bjorklund pass: the sequences built so far
// and the ones still waiting to be paired with them.
type groups struct {
	heads, rems [][]bool
}

// pair appends one remainder onto each of the first heads. Whatever is left
// unpaired, on either side, becomes the next remainder.
func (g groups) pair() groups {
	p := min(len(g.heads), len(g.rems))
	next := groups{heads: make([][]bool, p)}
	for i := 0; i < p; i++ {
		next.heads[i] = append(append([]bool(nil), g.heads[i]...), g.rems[i]...)
	}
	if len(g.heads) > p {
		next.rems = g.heads[p:]
	} else {
		next.rems = g.rems[p:]
	}
	return next
}

// Pattern computes one period of the k-over-n rhythm, with the pulses spread
// as evenly as possible and the first step a pulse. It returns nil when k or
// n is zero.
func Pattern(k, n int) ([]bool, error) {
	if k < 0 || n < 0 {
		return nil, errors.Wrapf(ErrNegative, "k=%d n=%d", k, n)
	}
	if k == 0 || n == 0 {
		return nil, nil
	}
	if k > n {
		return nil, errors.Wrapf(ErrTooManyPulses, "k=%d n=%d", k, n)
	}

	g := groups{heads: make([][]bool, k), rems: make([][]bool, n-k)}
	for i := range g.heads {
		g.heads[i] = []bool{true}
	}
	for i := range g.rems {
		g.rems[i] = []bool{false}
	}
	for len(g.rems) > 1 {
		g = g.pair()
	}

	out := make([]bool, 0, n)
	for _, h := range g.heads {
		out = append(out, h...)
	}
	for _, r := range g.rems {
		out = append(out, r...)
	}
	return out, nil
}
