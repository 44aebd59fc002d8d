// Package ffmpeg wraps the external ffmpeg/ffprobe toolchain behind
// three narrow operations: duration probing, single-frame extraction,
// and grid tiling. Every invocation is bounded by a per-operation
// timeout and reported to Prometheus.
package ffmpeg
