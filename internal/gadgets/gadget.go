package gadgets

import (
	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/params"
)

// deps bundles the collaborators every gadget talks to.
type deps struct {
	ship    ShipID
	points  Points
	physics PhysicsHandler
	env     Environment
	events  EventSink
}

// base carries the state shared by all gadget variants: identity, the
// point it sits on, and the spring it uses to orient its sprite.
type base struct {
	deps

	id       ID
	kind     Type
	point    PointIndex
	mass     float32
	attached bool

	trackedSpring    SpringIndex
	hasTrackedSpring bool
	rotationBaseAxis mgl32.Vec2
}

func newBase(d deps, id ID, kind Type, point PointIndex, mass float32) base {
	b := base{
		deps:             d,
		id:               id,
		kind:             kind,
		point:            point,
		mass:             mass,
		rotationBaseAxis: mgl32.Vec2{0, 1},
	}
	if springs := d.points.ConnectedSprings(point); len(springs) > 0 {
		b.trackedSpring = springs[0]
		b.hasTrackedSpring = true
		b.rotationBaseAxis = b.springAxis()
	}
	return b
}

func (b *base) ID() ID                 { return b.id }
func (b *base) Type() Type             { return b.kind }
func (b *base) PointIndex() PointIndex { return b.point }
func (b *base) Mass() float32          { return b.mass }

func (b *base) Position() mgl32.Vec2 {
	return b.points.Position(b.point)
}

func (b *base) planeID() PlaneID {
	return b.points.PlaneID(b.point)
}

func (b *base) TrackedSpring() (SpringIndex, bool) {
	return b.trackedSpring, b.hasTrackedSpring
}

func (b *base) OnTrackedSpringDestroyed() {
	b.hasTrackedSpring = false
}

func (b *base) Detonate() {}

// attach records that the container attached this gadget to its point.
func (b *base) attach() {
	b.points.AttachGadget(b.point, b.mass)
	b.attached = true
}

// detach releases the point. Safe to call more than once.
func (b *base) detach() {
	if b.attached {
		b.points.DetachGadget(b.point)
		b.attached = false
	}
}

// springAxis is the unit vector from the gadget's point along its tracked
// spring.
func (b *base) springAxis() mgl32.Vec2 {
	other := b.points.OtherEndpoint(b.trackedSpring, b.point)
	d := b.points.Position(other).Sub(b.Position())
	if d.Len() == 0 {
		return b.rotationBaseAxis
	}
	return d.Normalize()
}

// rotationOffsetAxis follows the tracked spring; once the spring is gone
// the sprite stays at its original orientation.
func (b *base) rotationOffsetAxis() mgl32.Vec2 {
	if !b.hasTrackedSpring {
		return b.rotationBaseAxis
	}
	return b.springAxis()
}

func (b *base) isUnderwater(pos mgl32.Vec2) bool {
	return b.env.IsUnderwater(pos)
}

func (b *base) sprite(frame int, pos mgl32.Vec2, plane PlaneID, alpha float32) Sprite {
	return Sprite{
		Plane:          plane,
		Frame:          TextureFrame{Group: b.kind, Index: frame},
		Position:       pos,
		Scale:          1,
		RotationBase:   b.rotationBaseAxis,
		RotationOffset: b.rotationOffsetAxis(),
		Alpha:          alpha,
	}
}

func (b *base) upload(sink RenderSink, s Sprite) {
	sink.UploadGadget(b.ship, s)
}

// blast computes the radius, strength and heat of a regular bomb's
// explosion. Ultra-violent mode scales radius and heat tenfold.
func blast(p *params.Parameters) (radius, strength, heat float32) {
	radius = p.BombBlastRadius
	strength = 60 * p.BombBlastForceAdjustment
	heat = p.BombBlastHeat * 1.2
	if p.IsUltraViolentMode {
		radius *= 10
		heat *= 10
	}
	return radius, strength, heat
}
