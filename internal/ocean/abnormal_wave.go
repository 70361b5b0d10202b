package ocean

import "math"

// AbnormalWave is a one-shot pulse: an eased rise from the current field
// height to a peak, followed by an eased fall back down.
type AbnormalWave struct {
	centerIndex int
	lowHeight   float32
	highHeight  float32
	fallDelay   float32

	phaseStartTime float32
	phaseDelay     float32
	phase          wavePhase
}

// NewAbnormalWave builds a pulse whose rise and fall last riseDelay and
// fallDelay seconds of simulation time.
func NewAbnormalWave(centerIndex int, lowHeight, highHeight, riseDelay, fallDelay, t0 float32) AbnormalWave {
	return AbnormalWave{
		centerIndex:    centerIndex,
		lowHeight:      lowHeight,
		highHeight:     highHeight,
		fallDelay:      fallDelay,
		phaseStartTime: t0,
		phaseDelay:     riseDelay,
		phase:          phaseRise,
	}
}

// CenterIndex is the SWE cell the pulse is centered on.
func (w *AbnormalWave) CenterIndex() int {
	return w.centerIndex
}

// Update returns the pulse height at t, or false once the fall completed.
func (w *AbnormalWave) Update(t float32) (float32, bool) {
	progress := float32(1)
	if w.phaseDelay > 0 {
		progress = (t - w.phaseStartTime) / w.phaseDelay
	}
	eased := float32(math.Sin(math.Pi / 2 * float64(min(progress, 1))))

	var h float32
	if w.phase == phaseRise {
		h = w.lowHeight + (w.highHeight-w.lowHeight)*eased
	} else {
		h = w.highHeight - (w.highHeight-w.lowHeight)*eased
	}

	if progress >= 1 {
		if w.phase == phaseFall {
			return 0, false
		}
		w.phaseStartTime = t
		w.phaseDelay = w.fallDelay
		w.phase = phaseFall
	}
	return h, true
}
