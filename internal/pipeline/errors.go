package pipeline

import "errors"

// Stage-level failures. Each aborts the remaining pipeline; callers use
// errors.Is to tell a bad URL apart from an unreadable video or an
// internal tiling failure.
var (
	// ErrFetch means the source video could not be downloaded.
	ErrFetch = errors.New("failed to download video")

	// ErrProbe means no valid duration could be read from the video.
	ErrProbe = errors.New("could not get valid video duration")

	// ErrNoFrames means every frame extraction failed.
	ErrNoFrames = errors.New("failed to generate any valid thumbnails")

	// ErrCompose means sprite tiling failed.
	ErrCompose = errors.New("failed to create sprite image")

	// ErrVTT means the cue file could not be written.
	ErrVTT = errors.New("failed to create VTT file")
)
