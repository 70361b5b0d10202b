package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"oceansandbox/internal/events"
	"oceansandbox/internal/sound"
)

// eventAudio plays gadget and ocean event cues through an ebiten player.
type eventAudio struct {
	mixer  *sound.Mixer
	player *audio.Player
}

// newEventAudio starts a player fed by a mixer subscribed to bus. When
// explosionWAV is set the sample replaces the synthesized explosion.
func newEventAudio(bus *events.Bus, explosionWAV string) (*eventAudio, error) {
	bank := sound.NewBank(audioSampleRate, time.Now().UnixNano())
	if explosionWAV != "" {
		s, err := loadSample(audioSampleRate, explosionWAV)
		if err != nil {
			return nil, err
		}
		bank.Set(sound.CueExplosion, s)
		log.Printf("Loaded explosion sample %q (%d samples)", explosionWAV, len(s))
	}

	ctx := audio.NewContext(audioSampleRate)
	mixer := sound.NewMixer(maxVoices)
	player, err := ctx.NewPlayer(mixer)
	if err != nil {
		return nil, fmt.Errorf("creating audio player: %w", err)
	}
	player.SetBufferSize(audioBufferDuration)
	player.Play()

	bank.Attach(bus, mixer)
	return &eventAudio{mixer: mixer, player: player}, nil
}

func (a *eventAudio) close() {
	_ = a.player.Close()
	_ = a.mixer.Close()
}

// loadSample decodes the WAV at path and returns stereo-averaged samples at sampleRate.
func loadSample(sampleRate int, path string) (sound.Sample, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("reading decoded %q: %w", path, err)
	}
	samples := decodeStereoI16ToFloat(decoded)
	if len(samples) == 0 {
		return nil, fmt.Errorf("wav %q has no usable samples", path)
	}
	return sound.Normalize(samples, 0.9), nil
}

func decodeStereoI16ToFloat(pcm []byte) sound.Sample {
	frameCount := len(pcm) / 4
	if frameCount == 0 {
		return nil
	}
	samples := make(sound.Sample, frameCount)
	for i := 0; i < frameCount; i++ {
		offset := i * 4
		left := int16(binary.LittleEndian.Uint16(pcm[offset : offset+2]))
		right := int16(binary.LittleEndian.Uint16(pcm[offset+2 : offset+4]))
		samples[i] = (float32(left) + float32(right)) * (0.5 / 32768.0)
	}
	return samples
}
