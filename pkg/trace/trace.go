// Package trace produces the access streams the simulator replays. Synthetic
// generators cover the canonical workload shapes (skewed popularity, uniform
// noise, cyclic loops and one-shot scans); arbitrary recorded traces are read
// from plain text files.

package trace

import (
	"fmt"
	"math/rand/v2"
)

// Generator yields one key per call. Generators are deterministic for a
// given seed so simulation runs are reproducible.
type Generator interface {
	Next() uint64
}

// Keys materialises n keys from the generator into a slice the simulator can
// replay against several policies without re-generating.
func Keys(g Generator, n int) []uint64 {
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = g.Next()
	}
	return keys
}

// Zipf draws keys with the skewed popularity distribution most cache
// workloads exhibit: a few keys dominate, a long tail follows.
type Zipf struct {
	zipf *rand.Zipf
}

// NewZipf returns a Zipf generator over [0, maxKey]. s must be > 1 and v >= 1.
func NewZipf(seed uint64, s, v float64, maxKey uint64) *Zipf {
	return &Zipf{zipf: rand.NewZipf(rand.New(rand.NewPCG(seed, 0)), s, v, maxKey)}
}

func (z *Zipf) Next() uint64 { return z.zipf.Uint64() }

// Uniform draws keys uniformly from [0, maxKey].
type Uniform struct {
	rand   *rand.Rand
	maxKey uint64
}

func NewUniform(seed, maxKey uint64) *Uniform {
	return &Uniform{rand: rand.New(rand.NewPCG(seed, 0)), maxKey: maxKey}
}

func (u *Uniform) Next() uint64 { return u.rand.Uint64N(u.maxKey + 1) }

// Loop cycles through [0, maxKey] in order, endlessly. With a key space just
// above the cache size this is the workload LRU degrades on.
type Loop struct {
	next   uint64
	maxKey uint64
}

func NewLoop(maxKey uint64) *Loop { return &Loop{maxKey: maxKey} }

func (l *Loop) Next() uint64 {
	key := l.next
	if l.next == l.maxKey {
		l.next = 0
	} else {
		l.next++
	}
	return key
}

// Scan emits every key exactly once, in order. Scans never repeat, so every
// retained scan entry is wasted cache space.
type Scan struct {
	next uint64
}

func NewScan() *Scan { return &Scan{} }

func (s *Scan) Next() uint64 {
	key := s.next
	s.next++
	return key
}

// New builds a named generator. File traces are handled separately by ReadFile.
func New(name string, seed, maxKey uint64, zipfS, zipfV float64) (Generator, error) {
	switch name {
	case "zipf":
		if zipfS <= 1 || zipfV < 1 {
			return nil, fmt.Errorf("zipf trace needs s > 1 and v >= 1, got s=%v v=%v", zipfS, zipfV)
		}
		return NewZipf(seed, zipfS, zipfV, maxKey), nil
	case "uniform":
		return NewUniform(seed, maxKey), nil
	case "loop":
		return NewLoop(maxKey), nil
	case "scan":
		return NewScan(), nil
	default:
		return nil, fmt.Errorf("unknown trace %q, supported traces are zipf/uniform/loop/scan", name)
	}
}
