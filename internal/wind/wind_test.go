package wind

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oceansandbox/internal/params"
)

func TestGustsStayBetweenBaseAndMax(t *testing.T) {
	for _, base := range []float32{20, -35} {
		w := New(7)
		p := params.Default()
		p.WindSpeedBase = base

		var lo, hi float32 = 1e9, -1e9
		for i := 0; i < 64*120; i++ {
			w.Update(float32(i)/64, &p)
			m := w.CurrentSpeed().Len()
			lo = min(lo, m)
			hi = max(hi, m)
			assert.Equal(t, base, w.BaseAndStormSpeedMagnitude())
			assert.Equal(t, base*p.WindSpeedMaxFactor, w.MaxSpeedMagnitude())
		}
		abs := max(base, -base)
		assert.GreaterOrEqual(t, lo, abs-1e-3)
		assert.LessOrEqual(t, hi, abs*p.WindSpeedMaxFactor+1e-3)
		assert.Greater(t, hi, lo)
	}
}

func TestUnmodulatedWindIsSteady(t *testing.T) {
	w := New(1)
	p := params.Default()
	p.DoModulateWind = false
	for i := 0; i < 100; i++ {
		w.Update(float32(i)/64, &p)
		assert.Equal(t, p.WindSpeedBase, w.CurrentSpeed().X())
	}
}

func TestStormRampsUpAndEnds(t *testing.T) {
	w := New(1)
	p := params.Default()
	p.DoModulateWind = false

	w.TriggerStorm(0)
	w.Update(5, &p)
	assert.InDelta(t, p.WindSpeedBase+20, w.BaseAndStormSpeedMagnitude(), 1e-4)

	w.Update(30, &p)
	assert.InDelta(t, p.WindSpeedBase+stormMaxSpeed, w.BaseAndStormSpeedMagnitude(), 1e-4)
	assert.True(t, w.IsStorming())

	w.Update(61, &p)
	assert.False(t, w.IsStorming())
	assert.Equal(t, p.WindSpeedBase, w.BaseAndStormSpeedMagnitude())

	p.WindSpeedBase = -10
	w.TriggerStorm(100)
	w.Update(130, &p)
	assert.InDelta(t, -10-stormMaxSpeed, w.BaseAndStormSpeedMagnitude(), 1e-4)
}
