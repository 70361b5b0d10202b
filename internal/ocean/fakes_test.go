package ocean

import "github.com/go-gl/mathgl/mgl32"

type fakeWind struct {
	base, max float32
	current   mgl32.Vec2
}

func (w fakeWind) BaseAndStormSpeedMagnitude() float32 { return w.base }
func (w fakeWind) MaxSpeedMagnitude() float32          { return w.max }
func (w fakeWind) CurrentSpeed() mgl32.Vec2            { return w.current }

func calmWind() fakeWind {
	return fakeWind{}
}

// midpointRandom always picks the middle of uniform ranges and a fixed
// exponential wait.
type midpointRandom struct {
	exponential float32
}

func (r midpointRandom) UniformReal(min, max float32) float32 { return (min + max) / 2 }
func (r midpointRandom) UniformInt(min, max int) int          { return min }
func (r midpointRandom) UniformBool(float32) bool             { return false }
func (r midpointRandom) ExponentialReal(float32) float32      { return r.exponential }

type recordedEvents struct {
	tsunamis []float32
}

func (e *recordedEvents) OnTsunami(x float32) {
	e.tsunamis = append(e.tsunamis, x)
}
