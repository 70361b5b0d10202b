package events

import (
	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/gadgets"
)

// Dispatcher turns the ocean and gadget callbacks into bus events.
type Dispatcher struct {
	bus *Bus
}

func NewDispatcher(bus *Bus) *Dispatcher {
	return &Dispatcher{bus: bus}
}

func (d *Dispatcher) OnTsunami(x float32) {
	d.bus.Emit(Event{Kind: KindTsunami, X: x})
}

func (d *Dispatcher) OnGadgetPlaced(id gadgets.ID, t gadgets.Type, underwater bool) {
	d.bus.Emit(Event{Kind: KindGadgetPlaced, Gadget: id, GadgetType: t, Underwater: underwater})
}

func (d *Dispatcher) OnGadgetRemoved(id gadgets.ID, t gadgets.Type, sound gadgets.RemovalSound) {
	d.bus.Emit(Event{Kind: KindGadgetRemoved, Gadget: id, GadgetType: t, Sound: sound})
}

func (d *Dispatcher) OnBombExplosion(t gadgets.Type, underwater bool, count int) {
	d.bus.Emit(Event{Kind: KindBombExplosion, GadgetType: t, Underwater: underwater, Count: count})
}

func (d *Dispatcher) OnTimerBombFuse(id gadgets.ID, fuse gadgets.FuseState) {
	d.bus.Emit(Event{Kind: KindTimerBombFuse, Gadget: id, GadgetType: gadgets.TypeTimerBomb, Fuse: fuse})
}

func (d *Dispatcher) OnTimerBombDefused(underwater bool, count int) {
	d.bus.Emit(Event{Kind: KindTimerBombDefused, GadgetType: gadgets.TypeTimerBomb, Underwater: underwater, Count: count})
}

func (d *Dispatcher) OnRCBombPing(underwater bool, count int) {
	d.bus.Emit(Event{Kind: KindRCBombPing, GadgetType: gadgets.TypeRCBomb, Underwater: underwater, Count: count})
}

func (d *Dispatcher) OnAntiMatterBombContained(id gadgets.ID, contained bool) {
	d.bus.Emit(Event{Kind: KindAntiMatterBombContained, Gadget: id, GadgetType: gadgets.TypeAntiMatterBomb, Contained: contained})
}

func (d *Dispatcher) OnAntiMatterBombPreImploding() {
	d.bus.Emit(Event{Kind: KindAntiMatterBombPreImploding, GadgetType: gadgets.TypeAntiMatterBomb})
}

func (d *Dispatcher) OnAntiMatterBombImploding() {
	d.bus.Emit(Event{Kind: KindAntiMatterBombImploding, GadgetType: gadgets.TypeAntiMatterBomb})
}

func (d *Dispatcher) OnPhysicsProbeReading(velocity mgl32.Vec2, temperature, depth float32) {
	d.bus.Emit(Event{
		Kind:        KindPhysicsProbeReading,
		GadgetType:  gadgets.TypePhysicsProbe,
		Velocity:    velocity,
		Temperature: temperature,
		Depth:       depth,
	})
}
