package gadgets

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// NeighborhoodRadius is how close to a structural failure a gadget has
	// to be for it to notice.
	NeighborhoodRadius = float32(3.5)

	// ExplosionFadeoutStepsCount is the number of updates an explosion
	// sprite takes to fade out.
	ExplosionFadeoutStepsCount = 8
)

// ShipID identifies the ship a gadget is attached to.
type ShipID int

// ID identifies a gadget within the world.
type ID struct {
	Ship  ShipID
	Local uint32
}

func (id ID) String() string {
	return fmt.Sprintf("%d:%d", id.Ship, id.Local)
}

// PointIndex and SpringIndex address elements of a ship's mesh.
type (
	PointIndex  int
	SpringIndex int
)

// PlaneID is the depth layer a point is drawn on.
type PlaneID uint32

// Type is the gadget variant.
type Type int

const (
	TypeImpactBomb Type = iota
	TypeTimerBomb
	TypeRCBomb
	TypeAntiMatterBomb
	TypePhysicsProbe
)

func (t Type) String() string {
	switch t {
	case TypeImpactBomb:
		return "impact bomb"
	case TypeTimerBomb:
		return "timer bomb"
	case TypeRCBomb:
		return "RC bomb"
	case TypeAntiMatterBomb:
		return "anti-matter bomb"
	case TypePhysicsProbe:
		return "physics probe"
	}
	return fmt.Sprintf("gadget type %d", int(t))
}

// ExplosionType selects how the ship renders and propagates a blast.
type ExplosionType int

const (
	ExplosionDeflagration ExplosionType = iota
	ExplosionCombustion
)

// RemovalSound tells listeners how a removal should be announced.
type RemovalSound int

const (
	RemovalSilent RemovalSound = iota
	RemovalAboveWater
	RemovalUnderwater
)

func removalSound(underwater bool) RemovalSound {
	if underwater {
		return RemovalUnderwater
	}
	return RemovalAboveWater
}

// FuseState is reported whenever a timer bomb's fuse changes.
type FuseState int

const (
	FuseStopped FuseState = iota
	FuseSlow
	FuseFast
)

// ToggleResult is the outcome of a toggle tool operation.
type ToggleResult int

const (
	ToggleNoOp ToggleResult = iota
	TogglePlaced
	ToggleRemoved
)

func (r ToggleResult) String() string {
	switch r {
	case TogglePlaced:
		return "placed"
	case ToggleRemoved:
		return "removed"
	}
	return "no-op"
}

// TextureFrame names one sprite frame of a gadget texture group.
type TextureFrame struct {
	Group Type
	Index int
}

// Sprite is everything a renderer needs to draw one gadget.
type Sprite struct {
	Plane          PlaneID
	Frame          TextureFrame
	Position       mgl32.Vec2
	Scale          float32
	RotationBase   mgl32.Vec2
	RotationOffset mgl32.Vec2
	Alpha          float32
}
