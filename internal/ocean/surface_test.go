package ocean

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"oceansandbox/internal/params"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func quietParams() params.Parameters {
	p := params.Default()
	p.TsunamiRate = 0
	p.RogueWaveRate = 0
	return p
}

func newTestSurface() (*Surface, *recordedEvents) {
	events := &recordedEvents{}
	return New(events, midpointRandom{exponential: 30}, epoch), events
}

func TestFlatSeaGeneratesZeroSamples(t *testing.T) {
	s, _ := newTestSurface()
	p := quietParams()
	s.Update(epoch, 0, calmWind(), &p)
	s.Update(epoch, 1, calmWind(), &p)

	for i, smp := range s.samples {
		require.Zero(t, smp.Value, "sample %d", i)
		require.Zero(t, smp.Delta, "sample %d", i)
	}
	assert.Zero(t, s.HeightAt(123.4))
}

func TestSentinelSampleHasZeroDelta(t *testing.T) {
	s, _ := newTestSurface()
	p := quietParams()
	wind := fakeWind{base: 30, max: 75, current: mgl32.Vec2{60, 0}}
	for i := 0; i < 10; i++ {
		s.Update(epoch, float32(i)*step, wind, &p)
		assert.Zero(t, s.samples[SamplesCount].Delta)
		assert.Zero(t, s.samples[SamplesCount-1].Delta)
		assert.Equal(t, s.samples[SamplesCount-1].Value, s.samples[SamplesCount].Value)
	}
}

func TestIncrementalSamplesMatchDirectEvaluation(t *testing.T) {
	s, _ := newTestSurface()
	p := quietParams()
	wind := fakeWind{base: 20, max: 50, current: mgl32.Vec2{20, 0}}
	const now = float32(12.5)
	s.Update(epoch, now, wind, &p)

	got := make([]float64, SamplesCount)
	want := make([]float64, SamplesCount)
	coeff2 := float64(s.basalWaveAmplitude2 / s.basalWaveAmplitude1)
	phase2 := math.Pi * math.Sin(float64(now))
	for i := range got {
		x := float64(-params.HalfMaxWorldWidth) + float64(i)*float64(Dx)
		arg1 := (float64(s.basalWaveNumber1)*x - float64(s.basalWaveAngularVelocity1)*float64(now)) / (2 * math.Pi)
		arg2 := (float64(s.basalWaveNumber2)*x - float64(s.basalWaveAngularVelocity2)*float64(now) + phase2) / (2 * math.Pi)
		want[i] = float64(s.basalWaveSin1.LinearlyInterpolatedPeriodic(arg1)) +
			coeff2*float64(s.basalWaveSin1.LinearlyInterpolatedPeriodic(arg2))
		got[i] = float64(s.samples[i].Value)
	}
	assert.True(t, floats.EqualApprox(got, want, 1e-3))
	assert.NotZero(t, floats.Norm(got, 2))
}

func TestWaveCoefficients(t *testing.T) {
	s, _ := newTestSurface()
	p := quietParams()
	s.Update(epoch, 0, fakeWind{base: 20, max: 50}, &p)

	require.Greater(t, s.basalWaveAmplitude1, float32(0))
	assert.InDelta(t, 0.75*s.basalWaveAmplitude1, s.basalWaveAmplitude2, 1e-6)
	assert.InDelta(t, 0.66*s.basalWaveNumber1, s.basalWaveNumber2, 1e-6)
	assert.InDelta(t, 0.75*s.basalWaveAngularVelocity1, s.basalWaveAngularVelocity2, 1e-6)
	assert.Greater(t, s.basalWaveNumber1, float32(0))
	a1 := s.basalWaveAmplitude1

	p.BasalWaveHeightAdjustment = 2
	s.Update(epoch, step, fakeWind{base: 20, max: 50}, &p)
	assert.InDelta(t, 2*a1, s.basalWaveAmplitude1, 1e-5)

	s.Update(epoch, 2*step, fakeWind{base: -20, max: 50}, &p)
	assert.Less(t, s.basalWaveNumber1, float32(0))
	assert.InDelta(t, 2*a1, s.basalWaveAmplitude1, 1e-5)
}

func TestAbnormalWaveSchedule(t *testing.T) {
	events := &recordedEvents{}
	disturbed := 0
	s := New(events, midpointRandom{exponential: 30}, epoch, WithDisturbanceHandler(func() { disturbed++ }))
	p := params.Default()
	p.TsunamiRate = 10 * time.Minute
	p.RogueWaveRate = 0

	s.Update(epoch, 0, calmWind(), &p)
	assert.Equal(t, epoch.Add(150*time.Second), s.NextTsunami())
	assert.True(t, s.NextRogueWave().IsZero())
	assert.False(t, s.HasTsunami())

	later := epoch.Add(151 * time.Second)
	s.Update(later, step, calmWind(), &p)
	require.True(t, s.HasTsunami())
	assert.Equal(t, []float32{0}, events.tsunamis)
	assert.Equal(t, 1, disturbed)
	assert.Equal(t, later.Add(150*time.Second), s.NextTsunami())

	p.TsunamiRate = 0
	s.Update(later, 2*step, calmWind(), &p)
	assert.True(t, s.NextTsunami().IsZero())
}

func TestTsunamiRisesAndRetires(t *testing.T) {
	s, events := newTestSurface()
	p := quietParams()
	s.TriggerTsunami(0)
	require.Equal(t, []float32{0}, events.tsunamis)

	w, ok := s.tsunamiWave.get()
	require.True(t, ok)
	assert.Equal(t, SWEOuterLayerSamples+toSampleIndex(0), w.CenterIndex())
	assert.InDelta(t, 105, w.highHeight, 1e-4)

	var peak float32
	for i := 0; i <= 64*7; i++ {
		s.Update(epoch, float32(i)*step, calmWind(), &p)
		peak = max(peak, s.HeightAt(0))
	}
	assert.Greater(t, peak, float32(100))

	for i := 64*7 + 1; i <= 64*13 && s.HasTsunami(); i++ {
		s.Update(epoch, float32(i)*step, calmWind(), &p)
	}
	assert.False(t, s.HasTsunami())
}

func TestRogueWaveLocusFollowsWind(t *testing.T) {
	s, _ := newTestSurface()
	s.TriggerRogueWave(0, fakeWind{base: 10})
	w, ok := s.rogueWave.get()
	require.True(t, ok)
	assert.Equal(t, SWEBoundaryConditionsSamples, w.CenterIndex())
	assert.InDelta(t, 0.675+SWEHeightFieldOffset, w.highHeight, 1e-4)
	assert.InDelta(t, 1.35, w.phaseDelay, 1e-6)
	assert.InDelta(t, 1.35, w.fallDelay, 1e-6)

	s.TriggerRogueWave(0, fakeWind{base: -10})
	w, ok = s.rogueWave.get()
	require.True(t, ok)
	assert.Equal(t, SWEOuterLayerSamples+SamplesCount, w.CenterIndex())
}

func TestAdjustToLifecycle(t *testing.T) {
	s, _ := newTestSurface()
	p := quietParams()

	s.AdjustTo(nil, 0)
	assert.False(t, s.HasInteractiveWave())

	s.AdjustTo(&mgl32.Vec2{0, 100}, 0)
	w, ok := s.interactiveWave.get()
	require.True(t, ok)
	assert.Equal(t, SWEOuterLayerSamples+toSampleIndex(0), w.CenterIndex())
	assert.Equal(t, float32(102), w.phaseTargetHeight)

	s.AdjustTo(&mgl32.Vec2{300, 10000}, 0.5)
	w, _ = s.interactiveWave.get()
	assert.Equal(t, SWEOuterLayerSamples+toSampleIndex(0), w.CenterIndex())
	assert.Equal(t, float32(104), w.phaseTargetHeight)

	s.AdjustTo(nil, 1)
	assert.Equal(t, phaseFall, w.phase)

	for i := 64; i < 64*60 && s.HasInteractiveWave(); i++ {
		s.Update(epoch, float32(i)*step, calmWind(), &p)
	}
	assert.False(t, s.HasInteractiveWave())

	s.AdjustTo(&mgl32.Vec2{-10000, -10000}, 70)
	w, _ = s.interactiveWave.get()
	assert.Equal(t, SWEOuterLayerSamples, w.CenterIndex())
	assert.Equal(t, float32(98), w.phaseTargetHeight)
}

func TestThanosSnapDepressesRange(t *testing.T) {
	s, _ := newTestSurface()
	s.ApplyThanosSnap(-10, 10)

	in := SWEOuterLayerSamples + toSampleIndex(0)
	out := SWEOuterLayerSamples + toSampleIndex(20)
	assert.InDelta(t, SWEHeightFieldOffset-0.02, s.field.height[in], 1e-5)
	assert.Equal(t, SWEHeightFieldOffset, s.field.height[out])

	s.ApplyThanosSnap(-1e6, 1e6)
	assert.InDelta(t, SWEHeightFieldOffset-0.02, s.field.height[SWEOuterLayerSamples], 1e-5)
	assert.InDelta(t, SWEHeightFieldOffset-0.02, s.field.height[SWEOuterLayerSamples+SamplesCount-1], 1e-5)
	assert.Equal(t, SWEHeightFieldOffset, s.field.height[SWEOuterLayerSamples-1])
}

func TestDisplaceAtRaisesWaterNextUpdate(t *testing.T) {
	s, _ := newTestSurface()
	p := quietParams()
	s.DisplaceAt(0, 5)
	s.Update(epoch, 0, calmWind(), &p)
	assert.Greater(t, s.HeightAt(0), float32(0))
	assert.True(t, s.IsUnderwater(mgl32.Vec2{0, -1}))
	assert.False(t, s.IsUnderwater(mgl32.Vec2{1000, 1}))
	assert.InDelta(t, 1.0, s.DepthAt(mgl32.Vec2{1000, -1}), 1e-6)
}

func TestSurfaceStaysBoundedUnderCombinedWaves(t *testing.T) {
	s, _ := newTestSurface()
	p := quietParams()
	wind := fakeWind{base: 30, max: 75, current: mgl32.Vec2{60, 0}}

	const steps = 64 * 60 * 10
	for i := 0; i < steps; i++ {
		now := float32(i) * step
		if !s.HasTsunami() {
			s.TriggerTsunami(now)
		}
		if !s.HasRogueWave() {
			s.TriggerRogueWave(now, wind)
		}
		// Alternate the interactive wave between its extremes every 10 s.
		target := mgl32.Vec2{100, 10000}
		if (i/640)%2 == 1 {
			target = mgl32.Vec2{100, -10000}
		}
		s.AdjustTo(&target, now)

		s.Update(epoch, now, wind, &p)
	}

	for i, h := range s.field.height[:SWETotalSamples] {
		require.False(t, math.IsNaN(float64(h)) || math.IsInf(float64(h), 0), "height %d", i)
		require.InDelta(t, SWEHeightFieldOffset, h, 30, "height %d", i)
	}
	for _, x := range []float32{-2400, -100, 0, 100, 2400} {
		v := s.HeightAt(x)
		require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0), "x %v", x)
	}
}
