// Package events fans simulation notifications out to subscribers such as
// the audio player, the HUD and the terminal event log.
package events

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"oceansandbox/internal/gadgets"
)

type Kind int

const (
	KindTsunami Kind = iota
	KindGadgetPlaced
	KindGadgetRemoved
	KindBombExplosion
	KindTimerBombFuse
	KindTimerBombDefused
	KindRCBombPing
	KindAntiMatterBombContained
	KindAntiMatterBombPreImploding
	KindAntiMatterBombImploding
	KindPhysicsProbeReading
	kindCount
)

var kindNames = [kindCount]string{
	"tsunami",
	"gadget placed",
	"gadget removed",
	"bomb explosion",
	"timer bomb fuse",
	"timer bomb defused",
	"RC bomb ping",
	"anti-matter containment",
	"anti-matter pre-implosion",
	"anti-matter implosion",
	"probe reading",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("event %d", int(k))
	}
	return kindNames[k]
}

// Event carries the payload of every kind; fields a kind does not use are
// left zero.
type Event struct {
	Kind Kind

	X          float32 // tsunami locus
	Gadget     gadgets.ID
	GadgetType gadgets.Type
	Underwater bool
	Count      int
	Sound      gadgets.RemovalSound
	Fuse       gadgets.FuseState
	Contained  bool

	Velocity    mgl32.Vec2
	Temperature float32
	Depth       float32
}

func (e Event) String() string {
	switch e.Kind {
	case KindTsunami:
		return fmt.Sprintf("tsunami at x=%.0f", e.X)
	case KindGadgetPlaced, KindGadgetRemoved:
		return fmt.Sprintf("%s: %s %s", e.Kind, e.GadgetType, e.Gadget)
	case KindBombExplosion:
		return fmt.Sprintf("%s exploded%s", e.GadgetType, underwaterSuffix(e.Underwater))
	case KindPhysicsProbeReading:
		return fmt.Sprintf("probe: v=%.1f m/s t=%.1f K depth=%.1f m", e.Velocity.Len(), e.Temperature, e.Depth)
	}
	return e.Kind.String()
}

func underwaterSuffix(underwater bool) string {
	if underwater {
		return " underwater"
	}
	return ""
}

type Handler func(Event)

// Bus delivers events synchronously, in subscription order.
type Bus struct {
	handlers map[Kind][]Handler
	all      []Handler
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Kind][]Handler),
	}
}

func (b *Bus) Subscribe(k Kind, fn Handler) {
	b.handlers[k] = append(b.handlers[k], fn)
}

// SubscribeAll registers fn for every kind. It runs after the kind-specific
// handlers.
func (b *Bus) SubscribeAll(fn Handler) {
	b.all = append(b.all, fn)
}

func (b *Bus) Emit(e Event) {
	for _, fn := range b.handlers[e.Kind] {
		fn(e)
	}
	for _, fn := range b.all {
		fn(e)
	}
}
