package ship

import (
	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/events"
	"oceansandbox/internal/gadgets"
	"oceansandbox/internal/params"
)

// flatOcean is a still sea at a fixed height.
type flatOcean struct {
	level     float32
	displaced []float32
}

func (o *flatOcean) HeightAt(float32) float32 { return o.level }

func (o *flatOcean) DisplaceAt(x, _ float32) { o.displaced = append(o.displaced, x) }

func (o *flatOcean) IsUnderwater(pos mgl32.Vec2) bool { return pos.Y() < o.level }

func (o *flatOcean) DepthAt(pos mgl32.Vec2) float32 { return o.level - pos.Y() }

// fixedRandom always draws the low end of every range.
type fixedRandom struct {
	weak bool
}

func (fixedRandom) UniformReal(lo, _ float32) float32 { return lo }
func (fixedRandom) UniformInt(lo, _ int) int          { return lo }
func (r fixedRandom) UniformBool(float32) bool        { return r.weak }
func (fixedRandom) ExponentialReal(float32) float32   { return 0 }

type recordingSink struct {
	springs, points, explosions int
}

func (s *recordingSink) UploadSpring(gadgets.PlaneID, mgl32.Vec2, mgl32.Vec2, float32) { s.springs++ }
func (s *recordingSink) UploadPoint(gadgets.PlaneID, mgl32.Vec2, float32)              { s.points++ }
func (s *recordingSink) UploadExplosion(gadgets.PlaneID, mgl32.Vec2, float32, float32) {
	s.explosions++
}

// smallRaft is a 10x4 raft with its bottom-left corner at origin.
func smallRaft(origin mgl32.Vec2) Raft {
	r := DefaultRaft()
	r.Columns = 10
	r.Rows = 4
	r.Origin = origin
	return r
}

func newTestShip(raft Raft, ocean *flatOcean, workers int) (*Ship, *params.Parameters) {
	p := params.Default()
	pool := NewTaskPool(workers)
	s := New(0, raft, fixedRandom{}, ocean, events.NewDispatcher(events.NewBus()), pool)
	return s, &p
}

func (s *Ship) meanY() float32 {
	var sum float32
	for i := range s.points {
		sum += s.points[i].pos.Y()
	}
	return sum / float32(len(s.points))
}
