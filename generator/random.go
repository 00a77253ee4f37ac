package generator

import (
	"math/rand/v2"
	"sync"
	"time"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// idLength gives roughly 56 bits per id, enough for batches of a few thousand
// without collisions.
const idLength = 11

// Random is the single source of randomness for every generator. It is safe
// for concurrent use.
type Random struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRandom returns a deterministic source, for tests and reproducible data
func NewRandom(seed uint64) *Random {
	return &Random{src: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomFromTime returns a non-deterministic source
func NewRandomFromTime() *Random {
	now := uint64(time.Now().UnixNano())
	return &Random{src: rand.New(rand.NewPCG(now, rand.Uint64()))}
}

// Float64 returns a uniform value in [0,1)
func (r *Random) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

func (r *Random) intN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}

// Int returns a uniform integer in [min, max]. Swapped bounds are reordered.
func (r *Random) Int(min, max int) int {
	if min > max {
		min, max = max, min
	}
	return min + r.intN(max-min+1)
}

// Chance reports true with probability p
func (r *Random) Chance(p float64) bool {
	return r.Float64() < p
}

// TimeBetween returns a time in [start, end)
func (r *Random) TimeBetween(start, end time.Time) time.Time {
	span := end.Sub(start)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(r.Float64() * float64(span)))
}

// NewID returns a short base36 identifier
func (r *Random) NewID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[r.src.IntN(len(idAlphabet))]
	}
	return string(b)
}

// Element picks a uniform element of list. list must not be empty.
func Element[T any](r *Random, list []T) T {
	if len(list) == 0 {
		panic("generator: Element called with an empty list")
	}
	return list[r.intN(len(list))]
}

// Weighted is one catalog entry
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// WeightedPick draws a value with probability proportional to its weight.
// If rounding leaves the draw positive after every entry, the first entry wins.
func WeightedPick[T any](r *Random, entries []Weighted[T]) T {
	if len(entries) == 0 {
		panic("generator: WeightedPick called with an empty catalog")
	}

	var total float64
	for _, e := range entries {
		total += e.Weight
	}

	x := r.Float64() * total
	for _, e := range entries {
		x -= e.Weight
		if x <= 0 {
			return e.Value
		}
	}
	return entries[0].Value
}
