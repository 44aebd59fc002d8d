package timecode

import (
	"fmt"
	"math"
)

// Format renders an offset in seconds as a zero-padded HH:MM:SS.mmm
// timestamp, the form accepted by both ffmpeg's -ss option and WebVTT
// cue timings. Negative offsets are clamped to zero.
func Format(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	h := int(seconds) / 3600
	m := (int(seconds) % 3600) / 60
	s := int(seconds) % 60
	ms := int((seconds - math.Floor(seconds)) * 1000)

	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
