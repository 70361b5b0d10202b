package ocean

import (
	"fmt"

	"oceansandbox/internal/params"
)

// Field stores the shallow water buffers stepped by a fieldSolver.
//
// Heights and velocities live on a staggered grid of SWETotalSamples cells
// plus one extra slot, so the velocity at i+1 is always addressable. The
// renderable samples start at SWEOuterLayerSamples.
type Field struct {
	height   []float32
	velocity []float32

	// delta accumulates externally injected height changes, indexed by
	// sample with deltaHeightHalf cells of padding on each side.
	delta []float32

	solver fieldSolver
}

// fieldSolver advances the height and velocity buffers by one time step.
type fieldSolver interface {
	Step(height, velocity []float32) error
	Name() string
	Close()
}

// NewField allocates a field at rest, stepped on the CPU.
func NewField() *Field {
	f := &Field{
		height:   make([]float32, SWETotalSamples+1),
		velocity: make([]float32, SWETotalSamples+1),
		delta:    make([]float32, SamplesCount+2*deltaHeightHalf),
		solver:   cpuSolver{},
	}
	for i := range f.height {
		f.height[i] = SWEHeightFieldOffset
	}
	return f
}

// heightAt returns the SWE height at a sample index, without the offset.
func (f *Field) heightAt(sampleIndex int) float32 {
	return f.height[SWEOuterLayerSamples+sampleIndex] - SWEHeightFieldOffset
}

// addDelta queues a height change at a sample index for the next step.
func (f *Field) addDelta(sampleIndex int, d float32) {
	f.delta[deltaHeightHalf+sampleIndex] += d
}

// setWaveHeight writes a wave machine's height into the perturbed window
// around center, skipping cells inside the left sponge or past the right
// wave generation cell.
func (f *Field) setWaveHeight(center int, h float32) {
	first := center - SWEWaveStateMachinePerturbedSamplesCount/2
	for i := 0; i < SWEWaveStateMachinePerturbedSamplesCount; i++ {
		idx := first + i
		if idx >= SWEBoundaryConditionsSamples && idx < SWEOuterLayerSamples+SamplesCount+SWEWaveGenerationSamples {
			f.height[idx] = h
		}
	}
}

// ApplyDampingBoundaryConditions pulls the sponge cells at both ends towards
// rest. Height mirrors at Total-1-i while velocity mirrors at Total-i.
func (f *Field) ApplyDampingBoundaryConditions() {
	for i := 0; i < SWEBoundaryConditionsSamples; i++ {
		factor := float32(i) / float32(SWEBoundaryConditionsSamples)

		f.height[i] = (f.height[i]-SWEHeightFieldOffset)*factor + SWEHeightFieldOffset
		f.velocity[i] *= factor

		f.height[SWETotalSamples-1-i] = (f.height[SWETotalSamples-1-i]-SWEHeightFieldOffset)*factor + SWEHeightFieldOffset
		f.velocity[SWETotalSamples-i] *= factor
	}
}

// IncorporateDeltaHeight smooths the queued deltas with a triangular kernel,
// adds them to the renderable heights, and clears the queue.
func (f *Field) IncorporateDeltaHeight() {
	const norm = 1.0 / float32(DeltaHeightSmoothing*DeltaHeightSmoothing)
	for i := 0; i < SamplesCount; i++ {
		center := deltaHeightHalf + i
		sum := f.delta[center] * float32(deltaHeightHalf+1)
		for l := 1; l <= deltaHeightHalf; l++ {
			weight := float32(deltaHeightHalf + 1 - l)
			sum += (f.delta[center-l] + f.delta[center+l]) * weight
		}
		f.height[SWEOuterLayerSamples+i] += sum * norm
	}
	clear(f.delta)
}

// Step advances the field by one simulation step. A failing accelerated
// solver is replaced by the CPU solver and the step is retried there.
func (f *Field) Step() error {
	if err := f.solver.Step(f.height, f.velocity); err != nil {
		name := f.solver.Name()
		f.solver.Close()
		f.solver = cpuSolver{}
		if cpuErr := f.solver.Step(f.height, f.velocity); cpuErr != nil {
			return cpuErr
		}
		return fmt.Errorf("%s solver failed, fell back to CPU: %w", name, err)
	}
	return nil
}

// useSolver replaces the active solver, closing the previous one.
func (f *Field) useSolver(s fieldSolver) {
	if f.solver != nil {
		f.solver.Close()
	}
	f.solver = s
}

// cpuSolver steps the field serially. Heights depend only on velocities
// from the previous step and velocities only on heights from this step,
// so the single sweep matches a two-pass parallel update exactly.
type cpuSolver struct{}

func (cpuSolver) Step(height, velocity []float32) error {
	if len(height) != SWETotalSamples+1 || len(velocity) != SWETotalSamples+1 {
		return fmt.Errorf("unexpected field buffer size %d/%d", len(height), len(velocity))
	}
	const dt = params.SimulationStepTimeDuration
	const factorH = dt / Dx
	const factorV = params.GravityMagnitude * dt / Dx

	height[0] -= height[0] * (velocity[1] - velocity[0]) * factorH
	for i := 1; i < SWETotalSamples; i++ {
		height[i] -= height[i] * (velocity[i+1] - velocity[i]) * factorH
		velocity[i] += (height[i-1] - height[i]) * factorV
	}
	return nil
}

func (cpuSolver) Name() string { return "CPU" }

func (cpuSolver) Close() {}

// SolverName reports which solver steps the field.
func (f *Field) SolverName() string {
	return f.solver.Name()
}
