// Package gadgets implements the bombs and probes that can be attached to a
// ship's mesh points, and the per-ship container that drives them.
package gadgets

import (
	"fmt"
	"log"
	"math"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/params"
)

// Gadgets owns the gadgets of one ship. The physics probe lives in its own
// slot and does not count towards MaxGadgets.
type Gadgets struct {
	deps

	gadgets     []Gadget
	probe       *PhysicsProbe
	nextLocalID uint32
}

// New returns an empty container for the given ship.
func New(ship ShipID, points Points, physics PhysicsHandler, env Environment, events EventSink) *Gadgets {
	return &Gadgets{deps: deps{
		ship:    ship,
		points:  points,
		physics: physics,
		env:     env,
		events:  events,
	}}
}

// Update advances every gadget and drops the ones that expired.
func (c *Gadgets) Update(now time.Time, t float32, p *params.Parameters) {
	c.gadgets = slices.DeleteFunc(c.gadgets, func(g Gadget) bool {
		if g.Update(now, t, p) {
			return false
		}
		if c.points.IsGadgetAttached(g.PointIndex()) {
			panic(fmt.Sprintf("gadgets: expired %s %s is still attached to point %d", g.Type(), g.ID(), g.PointIndex()))
		}
		c.events.OnGadgetRemoved(g.ID(), g.Type(), RemovalSilent)
		return true
	})

	if c.probe != nil && !c.probe.Update(now, t, p) {
		panic("gadgets: physics probe expired")
	}
}

// OnPointDetached tells gadgets near a point that just broke loose.
func (c *Gadgets) OnPointDetached(point PointIndex) {
	c.disturbNeighborhood(c.points.Position(point))
}

// OnSpringDestroyed tells gadgets tracking the spring, and those near its
// midpoint, that it broke.
func (c *Gadgets) OnSpringDestroyed(spring SpringIndex) {
	center := c.points.SpringMidpoint(spring)
	for _, g := range c.gadgets {
		if s, ok := g.TrackedSpring(); ok && s == spring {
			g.OnTrackedSpringDestroyed()
		}
	}
	c.disturbNeighborhood(center)

	if c.probe != nil {
		if s, ok := c.probe.TrackedSpring(); ok && s == spring {
			c.probe.OnTrackedSpringDestroyed()
		}
	}
}

func (c *Gadgets) disturbNeighborhood(center mgl32.Vec2) {
	const squareRadius = NeighborhoodRadius * NeighborhoodRadius
	for _, g := range c.gadgets {
		if squareDistance(g.Position(), center) < squareRadius {
			g.OnNeighborhoodDisturbed()
		}
	}
}

// ToggleGadgetAt removes the newest removable gadget within the tool search
// radius of pos or, when there is none, places a new gadget of type kind on
// the nearest free point. A gadget in range that may not be removed blocks
// placement.
func (c *Gadgets) ToggleGadgetAt(kind Type, pos mgl32.Vec2, p *params.Parameters) ToggleResult {
	if kind == TypePhysicsProbe {
		return c.TogglePhysicsProbeAt(pos, p)
	}
	squareSearchRadius := p.ToolSearchRadius * p.ToolSearchRadius

	for i := len(c.gadgets) - 1; i >= 0; i-- {
		g := c.gadgets[i]
		if squareDistance(g.Position(), pos) >= squareSearchRadius {
			continue
		}
		if !g.MayBeRemoved() {
			return ToggleNoOp
		}
		c.remove(i)
		return ToggleRemoved
	}

	point, ok := c.nearestFreePoint(pos, squareSearchRadius)
	if !ok {
		return ToggleNoOp
	}

	if len(c.gadgets) >= params.MaxGadgets {
		oldest := slices.IndexFunc(c.gadgets, Gadget.MayBeRemoved)
		if oldest < 0 {
			return ToggleNoOp
		}
		c.remove(oldest)
	}

	g := c.newGadget(kind, point)
	g.attach()
	c.gadgets = append(c.gadgets, g)
	c.events.OnGadgetPlaced(g.ID(), g.Type(), c.env.IsUnderwater(g.Position()))
	log.Printf("gadgets: placed %s %s at point %d", g.Type(), g.ID(), point)
	return TogglePlaced
}

// remove takes out the gadget at index i with an audible notification.
func (c *Gadgets) remove(i int) {
	g := c.gadgets[i]
	g.OnExternallyRemoved()
	g.detach()
	c.events.OnGadgetRemoved(g.ID(), g.Type(), removalSound(c.env.IsUnderwater(g.Position())))
	c.gadgets = slices.Delete(c.gadgets, i, i+1)
}

// TogglePhysicsProbeAt removes the probe when it is within the tool search
// radius of pos, otherwise attaches it to the nearest free point, moving
// it if it already exists. A move is announced as a placement only.
func (c *Gadgets) TogglePhysicsProbeAt(pos mgl32.Vec2, p *params.Parameters) ToggleResult {
	squareSearchRadius := p.ToolSearchRadius * p.ToolSearchRadius

	if c.probe != nil && squareDistance(c.probe.Position(), pos) < squareSearchRadius {
		c.RemovePhysicsProbe()
		return ToggleRemoved
	}

	point, ok := c.nearestFreePoint(pos, squareSearchRadius)
	if !ok {
		return ToggleNoOp
	}

	if c.probe != nil {
		// Relocating, not removing: no removal notification.
		c.probe.OnExternallyRemoved()
		c.probe.detach()
		c.probe = nil
	}

	c.probe = newPhysicsProbe(c.deps, c.nextID(), point)
	c.probe.attach()
	c.events.OnGadgetPlaced(c.probe.ID(), TypePhysicsProbe, c.env.IsUnderwater(c.probe.Position()))
	return TogglePlaced
}

// RemovePhysicsProbe removes the probe, if any.
func (c *Gadgets) RemovePhysicsProbe() {
	if c.probe == nil {
		return
	}
	c.probe.OnExternallyRemoved()
	c.probe.detach()
	c.events.OnGadgetRemoved(c.probe.ID(), TypePhysicsProbe, removalSound(c.env.IsUnderwater(c.probe.Position())))
	c.probe = nil
}

// HasPhysicsProbe reports whether the probe is placed.
func (c *Gadgets) HasPhysicsProbe() bool {
	return c.probe != nil
}

// DetonateRCBombs detonates every RC bomb.
func (c *Gadgets) DetonateRCBombs() {
	c.detonate(TypeRCBomb)
}

// DetonateAntiMatterBombs detonates every anti-matter bomb.
func (c *Gadgets) DetonateAntiMatterBombs() {
	c.detonate(TypeAntiMatterBomb)
}

func (c *Gadgets) detonate(kind Type) {
	for _, g := range c.gadgets {
		if g.Type() == kind {
			g.Detonate()
		}
	}
}

// RemoveAll removes every gadget and the probe, whatever their state.
func (c *Gadgets) RemoveAll() {
	for i := len(c.gadgets) - 1; i >= 0; i-- {
		c.remove(i)
	}
	c.RemovePhysicsProbe()
}

// Count returns the number of gadgets, excluding the physics probe.
func (c *Gadgets) Count() int {
	return len(c.gadgets)
}

// All returns the active gadgets, oldest first. The probe is not included.
func (c *Gadgets) All() []Gadget {
	return slices.Clone(c.gadgets)
}

// Upload sends a sprite for every gadget, probe last.
func (c *Gadgets) Upload(sink RenderSink) {
	for _, g := range c.gadgets {
		g.Upload(sink)
	}
	if c.probe != nil {
		c.probe.Upload(sink)
	}
}

// nearestFreePoint finds the closest point within the search radius that
// has at least one spring and no gadget. Ties go to the lowest index.
func (c *Gadgets) nearestFreePoint(pos mgl32.Vec2, squareSearchRadius float32) (PointIndex, bool) {
	best := PointIndex(-1)
	bestDistance := float32(math.MaxFloat32)
	for i := 0; i < c.points.Count(); i++ {
		p := PointIndex(i)
		if len(c.points.ConnectedSprings(p)) == 0 || c.points.IsGadgetAttached(p) {
			continue
		}
		d := squareDistance(c.points.Position(p), pos)
		if d < squareSearchRadius && d < bestDistance {
			best = p
			bestDistance = d
		}
	}
	return best, best >= 0
}

func (c *Gadgets) nextID() ID {
	id := ID{Ship: c.ship, Local: c.nextLocalID}
	c.nextLocalID++
	return id
}

func (c *Gadgets) newGadget(kind Type, point PointIndex) Gadget {
	id := c.nextID()
	switch kind {
	case TypeTimerBomb:
		return newTimerBomb(c.deps, id, point)
	case TypeRCBomb:
		return newRCBomb(c.deps, id, point)
	case TypeAntiMatterBomb:
		return newAntiMatterBomb(c.deps, id, point)
	case TypeImpactBomb:
		return newImpactBomb(c.deps, id, point)
	}
	panic(fmt.Sprintf("gadgets: cannot place %s", kind))
}

func squareDistance(a, b mgl32.Vec2) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}
