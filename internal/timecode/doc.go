// Package timecode formats second offsets as HH:MM:SS.mmm timestamps,
// shared by ffmpeg seek arguments and WebVTT cue timings.
package timecode
