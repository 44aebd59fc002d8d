// Package vtt emits WebVTT thumbnail tracks: one cue per sprite tile,
// mapping a playback time range to an #xywh sub-rectangle of the sprite
// image. Players parse this format literally, so the output layout is
// fixed.
package vtt
