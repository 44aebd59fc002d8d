package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"video-sprite-generator/internal/logging"
	"video-sprite-generator/internal/metrics"
	"video-sprite-generator/internal/timecode"
)

// Tools invokes the ffmpeg/ffprobe toolchain with per-operation timeouts.
type Tools struct {
	probeTimeout   time.Duration
	extractTimeout time.Duration
	tileTimeout    time.Duration
}

// New creates a Tools instance with the given per-operation timeouts.
func New(probeTimeout, extractTimeout, tileTimeout time.Duration) *Tools {
	return &Tools{
		probeTimeout:   probeTimeout,
		extractTimeout: extractTimeout,
		tileTimeout:    tileTimeout,
	}
}

// ProbeDuration returns the duration of a video file in seconds.
func (t *Tools) ProbeDuration(ctx context.Context, videoPath string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, t.probeTimeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	metrics.FFmpegDuration.WithLabelValues(metrics.OpProbe).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FFmpegErrorsTotal.WithLabelValues(metrics.OpProbe).Inc()
		return 0, fmt.Errorf("ffprobe error: %w - %s", commandError(ctx, err), stderr.String())
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(stdout.String()), 64)
	if err != nil {
		metrics.FFmpegErrorsTotal.WithLabelValues(metrics.OpProbe).Inc()
		return 0, fmt.Errorf("could not parse duration from ffprobe output %q: %w", strings.TrimSpace(stdout.String()), err)
	}

	logging.Debug("Probed duration for %s: %.2fs", videoPath, duration)
	return duration, nil
}

// ExtractFrame extracts a single frame at the given offset, scaled to
// width x height, and writes it to outPath.
func (t *Tools) ExtractFrame(ctx context.Context, videoPath string, offsetSeconds float64, width, height int, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, t.extractTimeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-ss", timecode.Format(offsetSeconds),
		"-i", videoPath,
		"-vframes", "1",
		"-vf", fmt.Sprintf("scale=%d:%d", width, height),
		"-q:v", "2",
		outPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	metrics.FFmpegDuration.WithLabelValues(metrics.OpExtract).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FFmpegErrorsTotal.WithLabelValues(metrics.OpExtract).Inc()
		return fmt.Errorf("ffmpeg frame extraction error: %w - %s", commandError(ctx, err), stderr.String())
	}

	return nil
}

// Tile arranges the frames named by the concat list file into a single
// columns x rows grid image at outPath. The list file entries are
// relative paths, so ffmpeg runs with the list file's directory as its
// working directory.
func (t *Tools) Tile(ctx context.Context, listPath string, columns, rows int, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, t.tileTimeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-vf", fmt.Sprintf("tile=%dx%d", columns, rows),
		"-q:v", "2",
		outPath,
	)
	cmd.Dir = filepath.Dir(listPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	metrics.FFmpegDuration.WithLabelValues(metrics.OpTile).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FFmpegErrorsTotal.WithLabelValues(metrics.OpTile).Inc()
		return fmt.Errorf("ffmpeg tile error: %w - %s", commandError(ctx, err), stderr.String())
	}

	logging.Debug("Composed %dx%d sprite at %s", columns, rows, outPath)
	return nil
}

// commandError prefers the context error so callers can tell a timeout
// apart from a non-zero exit.
func commandError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
