// Package ship implements a small mass-spring ship: the mesh the gadgets
// attach to, its buoyancy in the ocean, and the blasts and force fields the
// gadgets unleash on it.
package ship

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/gadgets"
	"oceansandbox/internal/params"
	"oceansandbox/internal/rng"
)

// Ocean is the view of the ocean surface the ship needs each step.
type Ocean interface {
	HeightAt(x float32) float32
	DisplaceAt(x, yOffset float32)
}

type point struct {
	pos            mgl32.Vec2
	vel            mgl32.Vec2
	nonSpringForce mgl32.Vec2
	springForce    mgl32.Vec2

	mass        float32
	gadgetMass  float32
	hasGadget   bool
	temperature float32
	plane       gadgets.PlaneID
	underwater  bool

	springs []gadgets.SpringIndex
}

func (p *point) totalMass() float32 {
	return p.mass + p.gadgetMass
}

type spring struct {
	a, b       gadgets.PointIndex
	restLength float32
	strength   float32 // breaking elongation, as a fraction of restLength
	deleted    bool
}

// Ship is one mass-spring structure and the gadgets attached to it.
type Ship struct {
	id      gadgets.ShipID
	points  []point
	springs []spring
	pool    *TaskPool
	gadgets *gadgets.Gadgets

	explosions  []explosion
	forceFields []forceField

	brokenSprings  int
	detachedPoints int
}

// New builds a ship from raft. Gadget notifications go to events and
// gadgets query env for water.
func New(id gadgets.ShipID, raft Raft, random rng.Source, env gadgets.Environment, events gadgets.EventSink, pool *TaskPool) *Ship {
	s := &Ship{
		id:   id,
		pool: pool,
	}
	s.points, s.springs = raft.build(random)
	for i := range s.points {
		s.points[i].temperature = params.AmbientTemperature
	}
	s.gadgets = gadgets.New(id, s, s, env, events)
	return s
}

func (s *Ship) ID() gadgets.ShipID { return s.id }

// Gadgets returns the ship's gadget container.
func (s *Ship) Gadgets() *gadgets.Gadgets { return s.gadgets }

// BrokenSprings returns how many springs have broken so far.
func (s *Ship) BrokenSprings() int { return s.brokenSprings }

// DetachedPoints returns how many points have been blown or torn loose.
func (s *Ship) DetachedPoints() int { return s.detachedPoints }

// SpringCount returns the number of intact springs.
func (s *Ship) SpringCount() int {
	return len(s.springs) - s.brokenSprings
}

func (s *Ship) Count() int { return len(s.points) }

func (s *Ship) Position(p gadgets.PointIndex) mgl32.Vec2 { return s.points[p].pos }

func (s *Ship) Velocity(p gadgets.PointIndex) mgl32.Vec2 { return s.points[p].vel }

func (s *Ship) Temperature(p gadgets.PointIndex) float32 { return s.points[p].temperature }

func (s *Ship) PlaneID(p gadgets.PointIndex) gadgets.PlaneID { return s.points[p].plane }

func (s *Ship) ConnectedSprings(p gadgets.PointIndex) []gadgets.SpringIndex {
	return s.points[p].springs
}

func (s *Ship) OtherEndpoint(sp gadgets.SpringIndex, p gadgets.PointIndex) gadgets.PointIndex {
	if s.springs[sp].a == p {
		return s.springs[sp].b
	}
	return s.springs[sp].a
}

func (s *Ship) SpringMidpoint(sp gadgets.SpringIndex) mgl32.Vec2 {
	return s.points[s.springs[sp].a].pos.Add(s.points[s.springs[sp].b].pos).Mul(0.5)
}

func (s *Ship) IsGadgetAttached(p gadgets.PointIndex) bool { return s.points[p].hasGadget }

func (s *Ship) AttachGadget(p gadgets.PointIndex, mass float32) {
	if s.points[p].hasGadget {
		panic("ship: point already carries a gadget")
	}
	s.points[p].hasGadget = true
	s.points[p].gadgetMass = mass
}

func (s *Ship) DetachGadget(p gadgets.PointIndex) {
	s.points[p].hasGadget = false
	s.points[p].gadgetMass = 0
}

// NearestPointAt returns the closest point within radius of pos.
func (s *Ship) NearestPointAt(pos mgl32.Vec2, radius float32) (gadgets.PointIndex, bool) {
	best := gadgets.PointIndex(-1)
	bestDistance := radius * radius
	for i := range s.points {
		d := s.points[i].pos.Sub(pos)
		if sq := d.Dot(d); sq < bestDistance {
			best = gadgets.PointIndex(i)
			bestDistance = sq
		}
	}
	return best, best >= 0
}

// destroySpring removes a spring from the mesh and tells the gadgets.
func (s *Ship) destroySpring(sp gadgets.SpringIndex) {
	spr := &s.springs[sp]
	if spr.deleted {
		return
	}
	spr.deleted = true
	s.brokenSprings++

	for _, p := range []gadgets.PointIndex{spr.a, spr.b} {
		pt := &s.points[p]
		pt.springs = slices.DeleteFunc(pt.springs, func(x gadgets.SpringIndex) bool { return x == sp })
	}
	s.gadgets.OnSpringDestroyed(sp)
}

// detachPoint tears every spring off p. It reports false when p was
// already loose.
func (s *Ship) detachPoint(p gadgets.PointIndex) bool {
	pt := &s.points[p]
	if len(pt.springs) == 0 {
		return false
	}
	for len(pt.springs) > 0 {
		s.destroySpring(pt.springs[len(pt.springs)-1])
	}
	s.detachedPoints++
	s.gadgets.OnPointDetached(p)
	return true
}
