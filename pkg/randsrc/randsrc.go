// Package randsrc provides the injectable random source behind every
// randomized figure in the engines: stock-level jitter, forecast confidence
// draws and supplier trend factors.
package randsrc

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

// locked wraps a *rand.Rand, which is not safe for concurrent use.
type locked struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a goroutine-safe Source. A zero seed picks a time-based seed.
func New(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &locked{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.Float64()
}

// Fixed returns a Source that cycles through values in order. With no values
// it always returns 0. Intended for deterministic tests and snapshots.
func Fixed(values ...float64) Source {
	return &fixed{values: values}
}

type fixed struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func (f *fixed) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}
