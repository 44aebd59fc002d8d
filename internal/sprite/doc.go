// Package sprite implements the frame-level stages of sprite
// generation: sampling a video into ordered thumbnail stills and
// composing the survivors into a single tiled image.
//
// Both stages consume the Toolchain capability interface rather than
// invoking ffmpeg directly, which keeps the timing and grid arithmetic
// testable without a media toolchain installed.
package sprite
