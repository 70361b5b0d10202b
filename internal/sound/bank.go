package sound

import (
	"time"

	"oceansandbox/internal/events"
	"oceansandbox/internal/gadgets"
)

// Cue names one of the sounds in a Bank.
type Cue int

const (
	CueExplosion Cue = iota
	CueTsunami
	CueGadgetPlaced
	CueGadgetRemoved
	CueFuseTick
	CueDefused
	CueRCPing
	CueAntiMatterContainment
	CuePreImplosion
	CueImplosion
	cueCount
)

// underwaterGain attenuates sounds made below the surface.
const underwaterGain = 0.45

// Bank holds one sample per cue.
type Bank struct {
	samples [cueCount]Sample
}

// NewBank synthesizes the default cue set at sampleRate.
func NewBank(sampleRate int, seed int64) *Bank {
	b := &Bank{}
	b.samples[CueExplosion] = Normalize(Rumble(sampleRate, seed, 90, 1500*time.Millisecond, 3), 0.9)
	b.samples[CueTsunami] = Normalize(Rumble(sampleRate, seed+1, 25, 4*time.Second, 0.8), 0.7)
	b.samples[CueGadgetPlaced] = Tone(sampleRate, 660, 120*time.Millisecond, 30)
	b.samples[CueGadgetRemoved] = Tone(sampleRate, 440, 120*time.Millisecond, 30)
	b.samples[CueFuseTick] = Tone(sampleRate, 2200, 30*time.Millisecond, 150)
	b.samples[CueDefused] = Normalize(Rumble(sampleRate, seed+2, 900, 600*time.Millisecond, 6), 0.4)
	b.samples[CueRCPing] = Tone(sampleRate, 1200, 180*time.Millisecond, 18)
	b.samples[CueAntiMatterContainment] = Sweep(sampleRate, 220, 110, 800*time.Millisecond)
	b.samples[CuePreImplosion] = Sweep(sampleRate, 80, 900, time.Second)
	b.samples[CueImplosion] = Sweep(sampleRate, 900, 40, 4*time.Second)
	return b
}

// Set replaces the sample for c.
func (b *Bank) Set(c Cue, s Sample) {
	b.samples[c] = s
}

func (b *Bank) Sample(c Cue) Sample {
	return b.samples[c]
}

// Attach subscribes to bus and plays the matching cue on m for every event
// that makes a sound.
func (b *Bank) Attach(bus *events.Bus, m *Mixer) {
	bus.SubscribeAll(func(e events.Event) {
		c, gain, ok := cueFor(e)
		if !ok {
			return
		}
		m.Play(b.samples[c], gain)
	})
}

// cueFor maps an event to the cue it plays, if any.
func cueFor(e events.Event) (Cue, float32, bool) {
	gain := float32(1)
	if e.Underwater {
		gain = underwaterGain
	}
	switch e.Kind {
	case events.KindTsunami:
		return CueTsunami, 1, true
	case events.KindGadgetPlaced:
		return CueGadgetPlaced, gain, true
	case events.KindGadgetRemoved:
		switch e.Sound {
		case gadgets.RemovalAboveWater:
			return CueGadgetRemoved, 1, true
		case gadgets.RemovalUnderwater:
			return CueGadgetRemoved, underwaterGain, true
		}
		return 0, 0, false
	case events.KindBombExplosion:
		return CueExplosion, gain, true
	case events.KindTimerBombFuse:
		if e.Fuse == gadgets.FuseStopped {
			return 0, 0, false
		}
		return CueFuseTick, 0.5, true
	case events.KindTimerBombDefused:
		return CueDefused, gain, true
	case events.KindRCBombPing:
		return CueRCPing, gain, true
	case events.KindAntiMatterBombContained:
		return CueAntiMatterContainment, 0.6, true
	case events.KindAntiMatterBombPreImploding:
		return CuePreImplosion, 1, true
	case events.KindAntiMatterBombImploding:
		return CueImplosion, 1, true
	}
	return 0, 0, false
}
