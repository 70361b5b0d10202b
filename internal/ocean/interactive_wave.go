package ocean

import "math"

type wavePhase int

const (
	phaseRise wavePhase = iota
	phaseFall
)

// InteractiveWave drives one SWE cell window towards a user-chosen height
// and, once released, lets it decay back to where it started.
type InteractiveWave struct {
	centerIndex int

	originalHeight    float32
	phaseStartHeight  float32
	phaseTargetHeight float32
	currentHeight     float32

	startTime float32
	phase     wavePhase

	risingDuration float32
	fallingDecay   float32
}

// NewInteractiveWave starts a rise from startHeight to targetHeight at t0.
func NewInteractiveWave(centerIndex int, startHeight, targetHeight, t0 float32) InteractiveWave {
	return InteractiveWave{
		centerIndex:       centerIndex,
		originalHeight:    startHeight,
		phaseStartHeight:  startHeight,
		phaseTargetHeight: targetHeight,
		currentHeight:     startHeight,
		startTime:         t0,
		phase:             phaseRise,
		risingDuration:    risingPhaseDuration(targetHeight - startHeight),
	}
}

// CenterIndex is the SWE cell the wave is centered on.
func (w *InteractiveWave) CenterIndex() int {
	return w.centerIndex
}

// Restart retargets the wave. During a rise the curve is re-parameterised so
// that the current height, time and slope carry over; during a fall a fresh
// rise begins from the current height.
func (w *InteractiveWave) Restart(targetHeight, t float32) {
	if w.phase == phaseRise {
		progress := float32(0.9)
		if w.risingDuration > 0 {
			progress = min((t-w.startTime)/w.risingDuration, 0.9)
		}

		newDuration := risingPhaseDuration(targetHeight - w.originalHeight)
		w.startTime = t - newDuration*progress
		w.phaseTargetHeight = targetHeight

		valueFraction := smoothStep(0, 1, progress)
		w.phaseStartHeight = (w.currentHeight - w.phaseTargetHeight*valueFraction) / (1 - valueFraction)
		w.risingDuration = newDuration
		return
	}

	w.phaseStartHeight = w.currentHeight
	w.phaseTargetHeight = targetHeight
	w.startTime = t
	w.phase = phaseRise
	w.risingDuration = risingPhaseDuration(targetHeight - w.originalHeight)
}

// Release starts the fall back to the original height. It has no effect
// unless the wave is rising.
func (w *InteractiveWave) Release(t float32) {
	if w.phase != phaseRise {
		return
	}
	w.phaseStartHeight = w.currentHeight
	w.phaseTargetHeight = w.originalHeight
	w.startTime = t
	w.phase = phaseFall
	w.fallingDecay = fallingPhaseDecayCoefficient(w.currentHeight - w.originalHeight)
}

// Update returns the wave height at t, or false once the fall has settled
// and the wave should be retired.
func (w *InteractiveWave) Update(t float32) (float32, bool) {
	if w.phase == phaseRise {
		f := smoothStep(0, w.risingDuration, t-w.startTime)
		w.currentHeight = w.phaseStartHeight + (w.phaseTargetHeight-w.phaseStartHeight)*f
		return w.currentHeight, true
	}

	w.currentHeight += (w.phaseTargetHeight - w.currentHeight) * w.fallingDecay
	if abs32(w.phaseTargetHeight-w.currentHeight) < 0.001 {
		return 0, false
	}
	return w.currentHeight, true
}

// MayBeOverridden reports whether a new engagement may replace this wave.
func (w *InteractiveWave) MayBeOverridden() bool {
	return w.phase == phaseFall && abs32(w.phaseTargetHeight-w.currentHeight) < 0.2
}

// risingPhaseDuration is a fit through (0, 0), (0.01, 0.13), (0.1, ~1.5) and
// (0.5, 2.5): small rises are quick, large ones stay shallow.
func risingPhaseDuration(deltaHeight float32) float32 {
	d := 2.53079 - 2.572298*math.Exp(-9.031207*float64(abs32(deltaHeight)))
	return float32(max(d, 0))
}

func fallingPhaseDecayCoefficient(deltaHeight float32) float32 {
	return 0.65 - (0.65-0.025)*smoothStep(0, 0.1, abs32(deltaHeight))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
