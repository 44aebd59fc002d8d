package vtt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"video-sprite-generator/internal/logging"
	"video-sprite-generator/internal/timecode"
)

// Filename is the cue file name within a job workspace.
const Filename = "sprite.vtt"

// maxCueSeconds is the largest cue timestamp the format can carry
// (23:59:59.999).
const maxCueSeconds = 86399.999

// Options describe the sprite the cues point into.
type Options struct {
	// Interval is the cue duration in seconds. For short videos this is
	// the adjusted interval, which may differ from the sampling cadence.
	Interval float64

	// Columns, ThumbWidth, and ThumbHeight define the sprite grid and
	// must match the composed image exactly.
	Columns     int
	ThumbWidth  int
	ThumbHeight int

	// SpriteURL is the public URL of the sprite image, written verbatim
	// into every cue.
	SpriteURL string
}

// Build writes a WebVTT track with one cue per frame. Cue i covers
// [i*interval, (i+1)*interval), capped at the format maximum, and its
// #xywh fragment addresses position i of the row-major sprite grid.
func Build(w io.Writer, frameCount int, opts Options) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString("WEBVTT\n\n"); err != nil {
		return err
	}

	for i := 0; i < frameCount; i++ {
		start := math.Min(float64(i)*opts.Interval, maxCueSeconds)
		end := math.Min(start+opts.Interval, maxCueSeconds)

		col := i % opts.Columns
		row := i / opts.Columns
		x := col * opts.ThumbWidth
		y := row * opts.ThumbHeight

		if _, err := fmt.Fprintf(bw, "%s --> %s\n%s#xywh=%d,%d,%d,%d\n\n",
			timecode.Format(start),
			timecode.Format(end),
			opts.SpriteURL,
			x, y, opts.ThumbWidth, opts.ThumbHeight,
		); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile builds the cue track into dir and returns the file path.
func WriteFile(dir string, frameCount int, opts Options) (string, error) {
	path := filepath.Join(dir, Filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create VTT file: %w", err)
	}

	if err := Build(file, frameCount, opts); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to write VTT file: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close VTT file: %w", err)
	}

	logging.Info("VTT file created at %s (%d cues)", path, frameCount)
	return path, nil
}
