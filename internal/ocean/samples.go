package ocean

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/params"
)

// Sample is one renderable surface point. Delta is the next sample's value
// minus this one, so interpolation needs a single multiply-add.
type Sample struct {
	Value float32
	Delta float32
}

// generateSamples combines the SWE heights, the two basal components and
// the wind ripples into the sample array. Sine arguments advance
// incrementally per sample and are kept in float64 to bound drift.
func (s *Surface) generateSamples(t float32, wind Wind) {
	secondaryPhase := math.Pi * math.Sin(float64(t))

	base := wind.BaseAndStormSpeedMagnitude()
	gustAmplitude := wind.MaxSpeedMagnitude() - base
	incisiveness := float32(0)
	if gustAmplitude != 0 {
		incisiveness = max(0, wind.CurrentSpeed().Len()-abs32(base)) / abs32(gustAmplitude)
	}
	rippleAngularVelocity := 128.0
	if base < 0 {
		rippleAngularVelocity = -128.0
	}
	rippleHeight := windRippleWaveHeight * s.windIncisiveness.Update(incisiveness)

	var basal2Coeff, rippleCoeff float32
	if s.basalWaveAmplitude1 != 0 {
		basal2Coeff = s.basalWaveAmplitude2 / s.basalWaveAmplitude1
		rippleCoeff = rippleHeight / s.basalWaveAmplitude1
	}

	const twoPi = 2 * math.Pi
	x := float64(-params.HalfMaxWorldWidth)
	tt := float64(t)
	k1, k2 := float64(s.basalWaveNumber1), float64(s.basalWaveNumber2)
	w1, w2 := float64(s.basalWaveAngularVelocity1), float64(s.basalWaveAngularVelocity2)

	arg1 := (k1*x - w1*tt) / twoPi
	arg2 := (k2*x - w2*tt + secondaryPhase) / twoPi
	argRipple := (windRippleWaveNumber*x - rippleAngularVelocity*tt) / twoPi

	arg1Dx := k1 * float64(Dx) / twoPi
	arg2Dx := k2 * float64(Dx) / twoPi
	argRippleDx := windRippleWaveNumber * float64(Dx) / twoPi

	sin1 := &s.basalWaveSin1
	var previous float32
	for i := 0; i < SamplesCount; i++ {
		if i > 0 {
			arg1 += arg1Dx
			arg2 += arg2Dx
			argRipple += argRippleDx
		}
		v := s.field.heightAt(i)*SWEHeightFieldAmplification +
			sin1.LinearlyInterpolatedPeriodic(arg1) +
			basal2Coeff*sin1.LinearlyInterpolatedPeriodic(arg2) +
			rippleCoeff*sin1.LinearlyInterpolatedPeriodic(argRipple)

		s.samples[i].Value = v
		if i > 0 {
			s.samples[i-1].Delta = v - previous
		}
		previous = v
	}

	s.samples[SamplesCount-1].Delta = 0
	s.samples[SamplesCount] = Sample{Value: previous}
}

// HeightAt returns the surface height at world X, interpolated between
// samples. X outside the world is clamped to its edges.
func (s *Surface) HeightAt(x float32) float32 {
	f := clampF((x+params.HalfMaxWorldWidth)/Dx, 0, SamplesCount)
	i := int(f)
	return s.samples[i].Value + s.samples[i].Delta*(f-float32(i))
}

// IsUnderwater reports whether pos lies below the surface.
func (s *Surface) IsUnderwater(pos mgl32.Vec2) bool {
	return pos.Y() < s.HeightAt(pos.X())
}

// DepthAt returns how far below the surface pos is; negative above water.
func (s *Surface) DepthAt(pos mgl32.Vec2) float32 {
	return s.HeightAt(pos.X()) - pos.Y()
}

// DisplaceAt queues a surface displacement of yOffset world units at x,
// applied smoothed on the next update.
func (s *Surface) DisplaceAt(x, yOffset float32) {
	s.field.addDelta(toSampleIndex(x), yOffset/SWEHeightFieldAmplification)
}
