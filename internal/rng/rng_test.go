package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func TestEngineIsDeterministic(t *testing.T) {
	a := NewEngine(42)
	b := NewEngine(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.UniformReal(-10, 10), b.UniformReal(-10, 10))
		assert.Equal(t, a.UniformInt(0, 7), b.UniformInt(0, 7))
		assert.Equal(t, a.ExponentialReal(0.5), b.ExponentialReal(0.5))
	}
}

func TestUniformRanges(t *testing.T) {
	e := NewEngine(7)
	for i := 0; i < 1000; i++ {
		r := e.UniformReal(0.7, 2.0)
		assert.GreaterOrEqual(t, r, float32(0.7))
		assert.Less(t, r, float32(2.0))

		n := e.UniformInt(3, 5)
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 5)
	}
	assert.Equal(t, float32(4), e.UniformReal(4, 4))
	assert.Equal(t, 9, e.UniformInt(9, 2))
}

func TestUniformBoolEdges(t *testing.T) {
	e := NewEngine(1)
	for i := 0; i < 50; i++ {
		assert.False(t, e.UniformBool(0))
		assert.True(t, e.UniformBool(1))
	}
}

func TestExponentialMean(t *testing.T) {
	e := NewEngine(99)
	samples := make([]float64, 20000)
	for i := range samples {
		samples[i] = float64(e.ExponentialReal(0.25))
		assert.GreaterOrEqual(t, samples[i], 0.0)
	}
	assert.InDelta(t, 4.0, stat.Mean(samples, nil), 0.2)
	assert.Zero(t, e.ExponentialReal(0))
}
