package sound

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oceansandbox/internal/events"
	"oceansandbox/internal/gadgets"
)

const testRate = 8000

func frames(t *testing.T, m *Mixer, n int) []int16 {
	t.Helper()
	buf := make([]byte, n*frameBytes+3)
	read, err := m.Read(buf)
	require.NoError(t, err)
	require.Equal(t, n*frameBytes, read)
	out := make([]int16, n)
	for i := range out {
		l := int16(binary.LittleEndian.Uint16(buf[i*frameBytes:]))
		r := int16(binary.LittleEndian.Uint16(buf[i*frameBytes+2:]))
		require.Equal(t, l, r)
		out[i] = l
	}
	return out
}

func TestMixerSilentWithoutVoices(t *testing.T) {
	m := NewMixer(4)
	for _, v := range frames(t, m, 64) {
		assert.Zero(t, v)
	}
}

func TestMixerPlaysAndRetiresVoices(t *testing.T) {
	m := NewMixer(4)
	m.Play(Sample{0.5, 0.5, 0.5}, 1)
	require.Equal(t, 1, m.Active())

	out := frames(t, m, 5)
	assert.Equal(t, toPCM16(0.4), out[0])
	assert.Equal(t, int16(0), out[3])
	assert.Zero(t, m.Active())
}

func TestMixerClipsAndStealsOldest(t *testing.T) {
	m := NewMixer(2)
	loud := Sample{1, 1, 1, 1}
	m.Play(loud, 1)
	m.Play(loud, 1)
	m.Play(Sample{-1}, 1)
	assert.Equal(t, 2, m.Active())

	out := frames(t, m, 1)
	// The oldest voice was dropped, leaving +1 and -1.
	assert.Equal(t, int16(0), out[0])

	m.Play(loud, 4)
	out = frames(t, m, 1)
	assert.Equal(t, int16(pcm16MaxValue), out[0])
}

func TestMixerIgnoresEmptyOrMutedSamples(t *testing.T) {
	m := NewMixer(2)
	m.Play(nil, 1)
	m.Play(Sample{1}, 0)
	assert.Zero(t, m.Active())
	require.NoError(t, m.Close())
}

func TestSynthesizedCuesAreBounded(t *testing.T) {
	b := NewBank(testRate, 5)
	for c := Cue(0); c < cueCount; c++ {
		s := b.Sample(c)
		require.NotEmpty(t, s, "cue %d", c)
		for _, v := range s {
			assert.LessOrEqual(t, v, float32(1.0001))
			assert.GreaterOrEqual(t, v, float32(-1.0001))
		}
	}
	assert.Len(t, b.Sample(CueRCPing), int(testRate*0.18))
}

func TestToneDecays(t *testing.T) {
	s := Tone(testRate, 100, time.Second, 10)
	head, tail := peak(s[:testRate/10]), peak(s[len(s)-testRate/10:])
	assert.Greater(t, head, 10*tail)
}

func peak(s Sample) float32 {
	var m float32
	for _, v := range s {
		m = max(m, v, -v)
	}
	return m
}

func TestEventsTriggerCues(t *testing.T) {
	bus := events.NewBus()
	m := NewMixer(8)
	NewBank(testRate, 1).Attach(bus, m)

	bus.Emit(events.Event{Kind: events.KindPhysicsProbeReading})
	bus.Emit(events.Event{Kind: events.KindGadgetRemoved, Sound: gadgets.RemovalSilent})
	bus.Emit(events.Event{Kind: events.KindTimerBombFuse, Fuse: gadgets.FuseStopped})
	assert.Zero(t, m.Active())

	bus.Emit(events.Event{Kind: events.KindBombExplosion, GadgetType: gadgets.TypeImpactBomb})
	bus.Emit(events.Event{Kind: events.KindRCBombPing, Underwater: true})
	assert.Equal(t, 2, m.Active())
}

func TestUnderwaterCuesAreQuieter(t *testing.T) {
	_, dry, ok := cueFor(events.Event{Kind: events.KindBombExplosion})
	require.True(t, ok)
	_, wet, ok := cueFor(events.Event{Kind: events.KindBombExplosion, Underwater: true})
	require.True(t, ok)
	assert.Less(t, wet, dry)

	c, _, ok := cueFor(events.Event{Kind: events.KindGadgetRemoved, Sound: gadgets.RemovalUnderwater})
	require.True(t, ok)
	assert.Equal(t, CueGadgetRemoved, c)
}
