package gadgets

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/params"
)

// Points is the view of a ship's mesh that gadgets need.
type Points interface {
	Count() int
	Position(p PointIndex) mgl32.Vec2
	Velocity(p PointIndex) mgl32.Vec2
	Temperature(p PointIndex) float32
	PlaneID(p PointIndex) PlaneID
	ConnectedSprings(p PointIndex) []SpringIndex
	OtherEndpoint(s SpringIndex, p PointIndex) PointIndex
	SpringMidpoint(s SpringIndex) mgl32.Vec2
	IsGadgetAttached(p PointIndex) bool
	AttachGadget(p PointIndex, mass float32)
	DetachGadget(p PointIndex)
}

// PhysicsHandler applies the physical side effects of gadgets to the ship.
type PhysicsHandler interface {
	StartExplosion(t float32, plane PlaneID, center mgl32.Vec2, blastRadius, blastStrength, blastHeat float32, kind ExplosionType, p *params.Parameters)
	DoAntiMatterBombPreimplosion(center mgl32.Vec2, progress, radius float32, p *params.Parameters)
	DoAntiMatterBombImplosion(center mgl32.Vec2, progress float32, p *params.Parameters)
	DoAntiMatterBombExplosion(center mgl32.Vec2, progress float32, p *params.Parameters)
}

// Environment answers questions about the world around a gadget.
type Environment interface {
	IsUnderwater(pos mgl32.Vec2) bool
	DepthAt(pos mgl32.Vec2) float32
}

// EventSink receives gadget notifications.
type EventSink interface {
	OnGadgetPlaced(id ID, t Type, underwater bool)
	OnGadgetRemoved(id ID, t Type, sound RemovalSound)
	OnBombExplosion(t Type, underwater bool, count int)
	OnTimerBombFuse(id ID, fuse FuseState)
	OnTimerBombDefused(underwater bool, count int)
	OnRCBombPing(underwater bool, count int)
	OnAntiMatterBombContained(id ID, contained bool)
	OnAntiMatterBombPreImploding()
	OnAntiMatterBombImploding()
	OnPhysicsProbeReading(velocity mgl32.Vec2, temperature, depth float32)
}

// RenderSink consumes gadget sprites.
type RenderSink interface {
	UploadGadget(ship ShipID, s Sprite)
}

// Gadget is the closed set of operations every gadget variant supports.
// Only this package implements it.
type Gadget interface {
	ID() ID
	Type() Type
	PointIndex() PointIndex
	Position() mgl32.Vec2
	TrackedSpring() (SpringIndex, bool)
	Mass() float32

	// Update advances the state machine and returns false once the gadget
	// has expired. An expired gadget has already detached itself.
	Update(now time.Time, t float32, p *params.Parameters) bool

	MayBeRemoved() bool
	OnExternallyRemoved()
	OnNeighborhoodDisturbed()
	OnTrackedSpringDestroyed()

	// Detonate is a no-op for variants that cannot be detonated remotely.
	Detonate()

	Upload(sink RenderSink)

	attach()
	detach()
}
