package sound

import (
	"math"
	"time"

	"github.com/ojrac/opensimplex-go"
)

func sampleCount(sampleRate int, d time.Duration) int {
	return int(float64(sampleRate) * d.Seconds())
}

// envelope is a short linear attack followed by an exponential decay.
func envelope(i, attack int, decayPerSample float64) float64 {
	if i < attack {
		return float64(i) / float64(attack)
	}
	return math.Exp(-decayPerSample * float64(i-attack))
}

// Tone synthesizes a decaying sine at freq Hz.
func Tone(sampleRate int, freq float64, d time.Duration, decay float64) Sample {
	n := sampleCount(sampleRate, d)
	out := make(Sample, n)
	attack := sampleRate / 500
	k := decay / float64(sampleRate)
	for i := range out {
		phase := 2 * math.Pi * freq * float64(i) / float64(sampleRate)
		out[i] = float32(math.Sin(phase) * envelope(i, attack, k))
	}
	return out
}

// Rumble synthesizes band-limited noise around freq Hz by sampling simplex
// noise along a line, decaying over d.
func Rumble(sampleRate int, seed int64, freq float64, d time.Duration, decay float64) Sample {
	noise := opensimplex.New(seed)
	n := sampleCount(sampleRate, d)
	out := make(Sample, n)
	attack := sampleRate / 200
	k := decay / float64(sampleRate)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		v := noise.Eval2(t*freq, 0)*0.7 + noise.Eval2(t*freq*4, 3.3)*0.3
		out[i] = float32(v * envelope(i, attack, k))
	}
	return out
}

// Sweep glides a sine from f0 to f1 Hz over d.
func Sweep(sampleRate int, f0, f1 float64, d time.Duration) Sample {
	n := sampleCount(sampleRate, d)
	out := make(Sample, n)
	var phase float64
	for i := range out {
		u := float64(i) / float64(max(n-1, 1))
		phase += 2 * math.Pi * (f0 + (f1-f0)*u) / float64(sampleRate)
		out[i] = float32(math.Sin(phase) * math.Sin(math.Pi*u))
	}
	return out
}

// Normalize scales s in place so its peak magnitude is peak.
func Normalize(s Sample, peak float32) Sample {
	var m float32
	for _, v := range s {
		if v < 0 {
			v = -v
		}
		m = max(m, v)
	}
	if m == 0 {
		return s
	}
	scale := peak / m
	for i := range s {
		s[i] *= scale
	}
	return s
}
