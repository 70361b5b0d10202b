package ocean

import "oceansandbox/internal/params"

// Grid and rendering constants for the ocean surface.
const (
	// SamplesCount is the number of renderable samples spanning the world width.
	SamplesCount = 4096

	// Dx is the world distance between two consecutive samples.
	Dx = params.MaxWorldWidth / float32(SamplesCount-1)

	// SWEHeightFieldOffset is the rest height of the SWE height field.
	SWEHeightFieldOffset = float32(100.0)

	// SWEHeightFieldAmplification maps SWE height deviations to world meters.
	SWEHeightFieldAmplification = float32(50.0)

	// SWEWaveGenerationSamples are set apart at each end for wave generation.
	SWEWaveGenerationSamples = 1

	// SWEBoundaryConditionsSamples is the width of the damping sponge at each end.
	SWEBoundaryConditionsSamples = 3

	SWEOuterLayerSamples = SWEWaveGenerationSamples + SWEBoundaryConditionsSamples

	SWETotalSamples = SWEOuterLayerSamples + SamplesCount + SWEOuterLayerSamples

	// SWEWaveStateMachinePerturbedSamplesCount is the width of the window a
	// wave state machine writes its height into.
	SWEWaveStateMachinePerturbedSamplesCount = 3

	// DeltaHeightSmoothing is the width of the triangular kernel applied to
	// injected height deltas.
	DeltaHeightSmoothing = 5

	// RenderSlices caps the number of quads uploaded per frame.
	RenderSlices = 500
)

const deltaHeightHalf = DeltaHeightSmoothing / 2

// toSampleIndex converts a world X into a sample index, clamped to the
// valid sample range.
func toSampleIndex(x float32) int {
	idx := int((x + params.HalfMaxWorldWidth) / Dx)
	if idx < 0 {
		return 0
	}
	if idx > SamplesCount-1 {
		return SamplesCount - 1
	}
	return idx
}

func clampF(v, lo, hi float32) float32 {
	// NaN maps to lo.
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// smoothStep is the cubic Hermite step between lEdge and rEdge. A zero-width
// interval steps straight to 1 at rEdge.
func smoothStep(lEdge, rEdge, x float32) float32 {
	if x <= lEdge && lEdge < rEdge {
		return 0
	}
	if x >= rEdge {
		return 1
	}
	t := (x - lEdge) / (rEdge - lEdge)
	return t * t * (3 - 2*t)
}
