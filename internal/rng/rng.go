// Package rng provides the random source injected into the ocean, wind and
// ship subsystems. Production code uses Engine; tests substitute scripted
// sources to make triggers and selections reproducible.
package rng

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source is the set of distributions the simulation draws from.
type Source interface {
	// UniformReal returns a value in [min, max).
	UniformReal(min, max float32) float32
	// UniformInt returns a value in [min, max], both inclusive.
	UniformInt(min, max int) int
	// UniformBool returns true with the given probability.
	UniformBool(probability float32) bool
	// ExponentialReal returns an exponentially distributed value with the
	// given rate (lambda).
	ExponentialReal(lambda float32) float32
}

// Engine is a seeded Source backed by a PCG generator.
type Engine struct {
	src rand.Source
	rnd *rand.Rand
}

// NewEngine returns an Engine whose sequence is fully determined by seed.
func NewEngine(seed uint64) *Engine {
	src := rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)
	return &Engine{
		src: src,
		rnd: rand.New(src),
	}
}

func (e *Engine) UniformReal(min, max float32) float32 {
	if max <= min {
		return min
	}
	u := distuv.Uniform{Min: float64(min), Max: float64(max), Src: e.src}
	return float32(u.Rand())
}

func (e *Engine) UniformInt(min, max int) int {
	if max <= min {
		return min
	}
	return min + e.rnd.IntN(max-min+1)
}

func (e *Engine) UniformBool(probability float32) bool {
	switch {
	case probability <= 0:
		return false
	case probability >= 1:
		return true
	}
	b := distuv.Bernoulli{P: float64(probability), Src: e.src}
	return b.Rand() == 1
}

func (e *Engine) ExponentialReal(lambda float32) float32 {
	if lambda <= 0 {
		return 0
	}
	x := distuv.Exponential{Rate: float64(lambda), Src: e.src}
	return float32(x.Rand())
}
