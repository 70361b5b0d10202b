// Package sound mixes short one-shot samples into a 16-bit stereo PCM
// stream suitable for an audio player.
package sound

import (
	"sync"
)

const (
	frameBytes    = 4
	pcm16MaxValue = 32767
	pcm16MinValue = -32768
)

// Sample is mono audio in [-1, 1] at the mixer's sample rate.
type Sample []float32

type voice struct {
	sample Sample
	pos    int
	gain   float32
}

// Mixer is an io.Reader producing interleaved little-endian int16 stereo
// frames. Play may be called from any goroutine while a player reads.
type Mixer struct {
	mu        sync.Mutex
	voices    []voice
	maxVoices int
	master    float32
}

// NewMixer returns a silent mixer that plays at most maxVoices samples at
// once; extra voices steal the oldest slot.
func NewMixer(maxVoices int) *Mixer {
	if maxVoices < 1 {
		maxVoices = 1
	}
	return &Mixer{
		voices:    make([]voice, 0, maxVoices),
		maxVoices: maxVoices,
		master:    0.8,
	}
}

// Play starts s at the given gain.
func (m *Mixer) Play(s Sample, gain float32) {
	if len(s) == 0 || gain <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.voices) == m.maxVoices {
		m.voices = m.voices[1:]
	}
	m.voices = append(m.voices, voice{sample: s, gain: gain})
}

// Active returns the number of voices still playing.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

func (m *Mixer) Read(p []byte) (int, error) {
	n := len(p) - len(p)%frameBytes
	if n == 0 {
		return 0, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < n; i += frameBytes {
		var mix float32
		for j := range m.voices {
			v := &m.voices[j]
			if v.pos < len(v.sample) {
				mix += v.sample[v.pos] * v.gain
				v.pos++
			}
		}
		s := toPCM16(mix * m.master)
		p[i] = byte(s)
		p[i+1] = byte(s >> 8)
		p[i+2] = p[i]
		p[i+3] = p[i+1]
	}

	live := m.voices[:0]
	for _, v := range m.voices {
		if v.pos < len(v.sample) {
			live = append(live, v)
		}
	}
	m.voices = live
	return n, nil
}

func (m *Mixer) Close() error {
	m.mu.Lock()
	m.voices = m.voices[:0]
	m.mu.Unlock()
	return nil
}

func toPCM16(v float32) int16 {
	s := v * pcm16MaxValue
	if s > pcm16MaxValue {
		return pcm16MaxValue
	}
	if s < pcm16MinValue {
		return pcm16MinValue
	}
	return int16(s)
}
