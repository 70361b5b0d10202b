// Package ocean simulates the sea surface: a 1D shallow water height field
// driven by user interaction and scripted abnormal waves, overlaid with
// wind-dependent basal waves and ripples.
package ocean

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/params"
	"oceansandbox/internal/rng"
)

// Wind is the subset of the wind model the ocean reads each tick.
type Wind interface {
	BaseAndStormSpeedMagnitude() float32
	MaxSpeedMagnitude() float32
	CurrentSpeed() mgl32.Vec2
}

// EventSink receives ocean notifications.
type EventSink interface {
	OnTsunami(x float32)
}

// Option configures a Surface at construction.
type Option func(*Surface)

// WithDisturbanceHandler registers fn to be called whenever an automatic
// tsunami disturbs the ocean.
func WithDisturbanceHandler(fn func()) Option {
	return func(s *Surface) {
		s.onDisturbed = fn
	}
}

const (
	abnormalWaveGracePeriod = 120 * time.Second

	windRippleWaveNumber         = 2.0
	windRippleWaveHeight         = float32(0.125)
	windIncisivenessAverageWidth = 15

	interactiveMaxRelativeHeight = float32(4.0)
	interactiveMinRelativeHeight = float32(-2.0)
)

// Surface is the ocean surface of one world.
type Surface struct {
	events      EventSink
	random      rng.Source
	onDisturbed func()

	field   *Field
	samples []Sample

	basalWaveAmplitude1       float32
	basalWaveAmplitude2       float32
	basalWaveNumber1          float32
	basalWaveNumber2          float32
	basalWaveAngularVelocity1 float32
	basalWaveAngularVelocity2 float32
	basalWaveSin1             SineTable

	// A zero next timestamp means the event is not scheduled.
	nextTsunami   time.Time
	nextRogueWave time.Time
	lastTsunami   time.Time
	lastRogueWave time.Time

	// Parameter values the coefficients and schedule were computed from.
	windBaseAndStormSpeedMagnitude float32
	basalWaveHeightAdjustment      float32
	basalWaveLengthAdjustment      float32
	basalWaveSpeedAdjustment       float32
	tsunamiRate                    time.Duration
	rogueWaveRate                  time.Duration

	interactiveWave optional[InteractiveWave]
	tsunamiWave     optional[AbnormalWave]
	rogueWave       optional[AbnormalWave]

	windIncisiveness runningAverage

	solverErrorLogged bool
}

// New returns a surface at rest. now seeds the abnormal wave schedule.
func New(events EventSink, random rng.Source, now time.Time, opts ...Option) *Surface {
	inf := float32(math.Inf(1))
	s := &Surface{
		events:                         events,
		random:                         random,
		field:                          NewField(),
		samples:                        make([]Sample, SamplesCount+1),
		lastTsunami:                    now,
		lastRogueWave:                  now,
		windBaseAndStormSpeedMagnitude: inf,
		basalWaveHeightAdjustment:      inf,
		basalWaveLengthAdjustment:      inf,
		basalWaveSpeedAdjustment:       inf,
		tsunamiRate:                    -1,
		rogueWaveRate:                  -1,
		windIncisiveness:               newRunningAverage(windIncisivenessAverageWidth),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UseOpenCL moves the SWE step onto an OpenCL device.
func (s *Surface) UseOpenCL() error {
	solver, err := newOpenCLFieldSolver()
	if err != nil {
		return fmt.Errorf("enabling OpenCL SWE solver: %w", err)
	}
	s.field.useSolver(solver)
	log.Printf("ocean: SWE solver running on %s", solver.Name())
	return nil
}

// SolverName reports which solver steps the SWE field.
func (s *Surface) SolverName() string {
	return s.field.SolverName()
}

// Close releases solver resources.
func (s *Surface) Close() {
	s.field.useSolver(cpuSolver{})
}

// Update advances the surface by one simulation step. now is the wall clock
// driving the abnormal wave schedule; t is the simulation time.
func (s *Surface) Update(now time.Time, t float32, wind Wind, p *params.Parameters) {
	if s.windBaseAndStormSpeedMagnitude != wind.BaseAndStormSpeedMagnitude() ||
		s.basalWaveHeightAdjustment != p.BasalWaveHeightAdjustment ||
		s.basalWaveLengthAdjustment != p.BasalWaveLengthAdjustment ||
		s.basalWaveSpeedAdjustment != p.BasalWaveSpeedAdjustment {
		s.recalculateWaveCoefficients(wind, p)
	}

	if s.tsunamiRate != p.TsunamiRate || s.rogueWaveRate != p.RogueWaveRate {
		s.recalculateAbnormalWaveTimestamps(p)
	}

	// Wave state machines
	if w, ok := s.interactiveWave.get(); ok {
		if h, alive := w.Update(t); alive {
			s.field.setWaveHeight(w.CenterIndex(), h)
		} else {
			s.interactiveWave.reset()
		}
	}

	if w, ok := s.tsunamiWave.get(); ok {
		if h, alive := w.Update(t); alive {
			s.field.setWaveHeight(w.CenterIndex(), h)
		} else {
			s.tsunamiWave.reset()
		}
	} else if !s.nextTsunami.IsZero() && now.After(s.nextTsunami) {
		s.TriggerTsunami(t)
		s.lastTsunami = now
		s.nextTsunami = s.nextAbnormalWaveTimestamp(now, p.TsunamiRate)
		if s.onDisturbed != nil {
			s.onDisturbed()
		}
	}

	if w, ok := s.rogueWave.get(); ok {
		if h, alive := w.Update(t); alive {
			s.field.setWaveHeight(w.CenterIndex(), h)
		} else {
			s.rogueWave.reset()
		}
	} else if !s.nextRogueWave.IsZero() && now.After(s.nextRogueWave) {
		s.TriggerRogueWave(t, wind)
		s.lastRogueWave = now
		s.nextRogueWave = s.nextAbnormalWaveTimestamp(now, p.RogueWaveRate)
	}

	// SWE
	s.field.ApplyDampingBoundaryConditions()
	s.field.IncorporateDeltaHeight()
	if err := s.field.Step(); err != nil && !s.solverErrorLogged {
		log.Printf("ocean: %v", err)
		s.solverErrorLogged = true
	}

	s.generateSamples(t, wind)
}

// AdjustTo engages the interactive wave towards pos, or releases it when
// pos is nil.
func (s *Surface) AdjustTo(pos *mgl32.Vec2, t float32) {
	if pos == nil {
		if w, ok := s.interactiveWave.get(); ok {
			w.Release(t)
		}
		return
	}

	target := clampF(pos.Y()/SWEHeightFieldAmplification, interactiveMinRelativeHeight, interactiveMaxRelativeHeight) +
		SWEHeightFieldOffset

	if w, ok := s.interactiveWave.get(); ok && !w.MayBeOverridden() {
		w.Restart(target, t)
		return
	}

	center := SWEOuterLayerSamples + toSampleIndex(pos.X())
	s.interactiveWave.emplace(NewInteractiveWave(center, s.field.height[center], target, t))
}

// ApplyThanosSnap depresses the water between the two world X fronts.
func (s *Surface) ApplyThanosSnap(leftFrontX, rightFrontX float32) {
	start := SWEOuterLayerSamples + toSampleIndex(max(leftFrontX, -params.HalfMaxWorldWidth))
	end := SWEOuterLayerSamples + toSampleIndex(min(rightFrontX, params.HalfMaxWorldWidth))

	const depression = 1.0 / SWEHeightFieldAmplification
	for idx := start; idx <= end; idx++ {
		s.field.height[idx] -= depression
	}
}

// TriggerTsunami starts a tsunami at a random X, replacing any running one.
func (s *Surface) TriggerTsunami(t float32) {
	x := s.random.UniformReal(-params.HalfMaxWorldWidth, params.HalfMaxWorldWidth)

	const averageHeight = 250.0 / SWEHeightFieldAmplification
	height := s.random.UniformReal(averageHeight*0.96, averageHeight*1.04) + SWEHeightFieldOffset

	center := SWEOuterLayerSamples + toSampleIndex(x)
	s.tsunamiWave.emplace(NewAbnormalWave(center, s.field.height[center], height, 7, 5, t))

	log.Printf("ocean: tsunami at x=%.1f", x)
	s.events.OnTsunami(x)
}

// TriggerRogueWave starts a rogue wave at the upwind edge of the world,
// replacing any running one.
func (s *Surface) TriggerRogueWave(t float32, wind Wind) {
	center := SWEBoundaryConditionsSamples
	if wind.BaseAndStormSpeedMagnitude() < 0 {
		center = SWEOuterLayerSamples + SamplesCount
	}

	const maxHeight = 50.0 / SWEHeightFieldAmplification
	height := s.random.UniformReal(maxHeight*0.35, maxHeight) + SWEHeightFieldOffset
	delay := s.random.UniformReal(0.7, 2.0)

	s.rogueWave.emplace(NewAbnormalWave(center, s.field.height[center], height, delay, delay, t))
}

// HasInteractiveWave reports whether an interactive wave is active.
func (s *Surface) HasInteractiveWave() bool { return s.interactiveWave.set }

// HasTsunami reports whether a tsunami is running.
func (s *Surface) HasTsunami() bool { return s.tsunamiWave.set }

// HasRogueWave reports whether a rogue wave is running.
func (s *Surface) HasRogueWave() bool { return s.rogueWave.set }

// NextTsunami is the wall clock instant of the next automatic tsunami; the
// zero time means none is scheduled.
func (s *Surface) NextTsunami() time.Time { return s.nextTsunami }

// NextRogueWave is the wall clock instant of the next automatic rogue wave;
// the zero time means none is scheduled.
func (s *Surface) NextRogueWave() time.Time { return s.nextRogueWave }

func (s *Surface) recalculateWaveCoefficients(wind Wind, p *params.Parameters) {
	base := wind.BaseAndStormSpeedMagnitude()

	speed := float64(abs32(base)) // km/h
	if speed < 60 {
		speed = 63.09401 - 63.09401*math.Exp(-0.05025263*speed)
	}
	sign := float32(1)
	if base < 0 {
		sign = -1
	}

	// Wave height over wind speed, fitted on fully developed seas.
	heightBase := 0.0
	if speed != 0 {
		heightBase = 0.002481548*speed*speed - 0.08155357*speed + 1.039702
	}
	s.basalWaveAmplitude1 = float32(heightBase/2) * p.BasalWaveHeightAdjustment
	s.basalWaveAmplitude2 = 0.75 * s.basalWaveAmplitude1

	// Wavelength over wave height, same data set.
	lengthBase := -738512.1 + 738525.2*math.Exp(0.00001895026*2*float64(s.basalWaveAmplitude1))
	length := float32(lengthBase) * p.BasalWaveLengthAdjustment
	s.basalWaveNumber1 = sign * 2 * math.Pi / length
	s.basalWaveNumber2 = 0.66 * s.basalWaveNumber1

	// Period over wavelength.
	periodBase := 17.91851 - 15.52928*math.Exp(-0.006572834*float64(length))
	period := float32(periodBase) / p.BasalWaveSpeedAdjustment
	s.basalWaveAngularVelocity1 = 2 * math.Pi / period
	s.basalWaveAngularVelocity2 = 0.75 * s.basalWaveAngularVelocity1

	a := float64(s.basalWaveAmplitude1)
	s.basalWaveSin1.Recalculate(func(x float64) float64 {
		return a * math.Sin(2*math.Pi*x)
	})

	s.windBaseAndStormSpeedMagnitude = base
	s.basalWaveHeightAdjustment = p.BasalWaveHeightAdjustment
	s.basalWaveLengthAdjustment = p.BasalWaveLengthAdjustment
	s.basalWaveSpeedAdjustment = p.BasalWaveSpeedAdjustment
}

func (s *Surface) recalculateAbnormalWaveTimestamps(p *params.Parameters) {
	s.nextTsunami = time.Time{}
	if p.TsunamiRate > 0 {
		s.nextTsunami = s.nextAbnormalWaveTimestamp(s.lastTsunami, p.TsunamiRate)
	}
	s.nextRogueWave = time.Time{}
	if p.RogueWaveRate > 0 {
		s.nextRogueWave = s.nextAbnormalWaveTimestamp(s.lastRogueWave, p.RogueWaveRate)
	}
	s.tsunamiRate = p.TsunamiRate
	s.rogueWaveRate = p.RogueWaveRate
}

// nextAbnormalWaveTimestamp adds the grace period and an exponentially
// distributed wait with the given mean to last.
func (s *Surface) nextAbnormalWaveTimestamp(last time.Time, rate time.Duration) time.Time {
	rateSeconds := float32(rate / time.Second)
	wait := s.random.ExponentialReal(1 / rateSeconds)
	return last.Add(abnormalWaveGracePeriod + time.Duration(float64(wait)*float64(time.Second)))
}
