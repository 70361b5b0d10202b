package main

import "time"

// Window, camera, timing and audio constants for the ebiten front end. The
// simulation itself is configured through params.Parameters.
const (
	screenWidth, screenHeight = 960, 540
	windowScale               = 1
	defaultTPS                = 64.0
	pixelsPerMeter            = 8.0
	minZoom                   = 0.25
	maxZoom                   = 8.0
	zoomStep                  = 1.25
	panSpeedMeters            = 1.5
	seaLevelScreenFraction    = 0.55
	toolHeatRate              = float32(20000.0) // KJ/s
	toolDestroyRadius         = float32(1.0)
	hudLineHeight             = 16
	hudEventLines             = 6
	pgoRecordDuration         = 15 * time.Second
	autoplayToolInterval      = 40
	audioSampleRate           = 48000
	audioBufferDuration       = 80 * time.Millisecond
	maxVoices                 = 16
)
