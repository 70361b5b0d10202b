// Package wind models the wind blowing over the ocean: a signed base speed,
// an optional storm on top of it, and noise-driven gusts up to a maximum.
package wind

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"

	"oceansandbox/internal/params"
)

const (
	gustFrequency   = 0.35 // noise units per second of simulation time
	gustOctaves     = 3
	gustPersistence = 0.5

	// Storms ramp up, hold, and ramp down over these many seconds.
	stormRampSeconds = 10.0
	stormHoldSeconds = 40.0
	stormMaxSpeed    = float32(40.0) // km/h added to the base speed
)

// Wind is the wind provider of one world. Speeds are in km/h; the sign of
// the base speed is the wind direction along X.
type Wind struct {
	noise opensimplex.Noise

	baseAndStormSpeed float32
	maxSpeed          float32
	currentSpeed      mgl32.Vec2

	stormActive bool
	stormStart  float32
	stormSpeed  float32
}

// New returns a calm wind whose gusts are driven by a noise field seeded
// with seed.
func New(seed int64) *Wind {
	return &Wind{noise: opensimplex.New(seed)}
}

// TriggerStorm starts a storm at simulation time t, restarting any storm in
// progress.
func (w *Wind) TriggerStorm(t float32) {
	w.stormActive = true
	w.stormStart = t
}

// IsStorming reports whether a storm is in progress.
func (w *Wind) IsStorming() bool {
	return w.stormActive
}

// Update recomputes the wind for simulation time t.
func (w *Wind) Update(t float32, p *params.Parameters) {
	w.stormSpeed = 0
	if w.stormActive {
		elapsed := t - w.stormStart
		switch {
		case elapsed < stormRampSeconds:
			w.stormSpeed = stormMaxSpeed * elapsed / stormRampSeconds
		case elapsed < stormRampSeconds+stormHoldSeconds:
			w.stormSpeed = stormMaxSpeed
		case elapsed < 2*stormRampSeconds+stormHoldSeconds:
			w.stormSpeed = stormMaxSpeed * (2*stormRampSeconds + stormHoldSeconds - elapsed) / stormRampSeconds
		default:
			w.stormActive = false
		}
	}

	sign := float32(1)
	if p.WindSpeedBase < 0 {
		sign = -1
	}
	w.baseAndStormSpeed = p.WindSpeedBase + sign*w.stormSpeed
	w.maxSpeed = w.baseAndStormSpeed * p.WindSpeedMaxFactor

	magnitude := w.baseAndStormSpeed
	if p.DoModulateWind {
		magnitude += (w.maxSpeed - w.baseAndStormSpeed) * w.gust(float64(t))
	}
	w.currentSpeed = mgl32.Vec2{magnitude, 0}
}

// gust returns the gust strength in [0, 1] at time t.
func (w *Wind) gust(t float64) float32 {
	var total, maxValue float64
	frequency, amplitude := gustFrequency, 1.0
	for i := 0; i < gustOctaves; i++ {
		total += w.noise.Eval2(t*frequency, float64(i)*7.31) * amplitude
		maxValue += amplitude
		amplitude *= gustPersistence
		frequency *= 2
	}
	// Map [-1, 1] to [0, 1] and square it so gusts are occasional.
	g := (total/maxValue + 1) / 2
	g = math.Max(0, math.Min(1, g))
	return float32(g * g)
}

// BaseAndStormSpeedMagnitude is the signed base speed plus any storm.
func (w *Wind) BaseAndStormSpeedMagnitude() float32 {
	return w.baseAndStormSpeed
}

// MaxSpeedMagnitude is the signed speed reached at the peak of a gust.
func (w *Wind) MaxSpeedMagnitude() float32 {
	return w.maxSpeed
}

// CurrentSpeed is the wind velocity right now.
func (w *Wind) CurrentSpeed() mgl32.Vec2 {
	return w.currentSpeed
}
