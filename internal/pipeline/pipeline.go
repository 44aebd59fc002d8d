package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"path"
	"path/filepath"
	"time"

	"video-sprite-generator/internal/logging"
	"video-sprite-generator/internal/metrics"
	"video-sprite-generator/internal/sprite"
	"video-sprite-generator/internal/startup"
	"video-sprite-generator/internal/vtt"

	"github.com/google/uuid"
)

// SpriteFilename is the sprite image name within a job workspace.
const SpriteFilename = "sprite.jpg"

// AssetURLPrefix is the public route assets are served under.
const AssetURLPrefix = "/thumbnails"

// Generator runs the sprite generation pipeline for one video URL at a
// time: download, probe, sample, compose, and cue generation, with
// unconditional cleanup of intermediate files.
type Generator struct {
	tools    sprite.Toolchain
	fetcher  Fetcher
	sampler  *sprite.Sampler
	composer *sprite.Composer

	videoDir     string
	thumbnailDir string
	interval     float64
	columns      int
	thumbWidth   int
	thumbHeight  int
}

// New creates a Generator from the application configuration.
func New(tools sprite.Toolchain, fetcher Fetcher, config *startup.Config) *Generator {
	interval := config.FrameInterval.Seconds()

	return &Generator{
		tools:        tools,
		fetcher:      fetcher,
		sampler:      sprite.NewSampler(tools, config.ThumbWidth, config.ThumbHeight, interval),
		composer:     sprite.NewComposer(tools, config.ThumbsPerRow),
		videoDir:     config.VideoDir,
		thumbnailDir: config.ThumbnailDir,
		interval:     interval,
		columns:      config.ThumbsPerRow,
		thumbWidth:   config.ThumbWidth,
		thumbHeight:  config.ThumbHeight,
	}
}

// Result describes a completed job, with asset paths inside the job
// workspace and the public URLs they are served under.
type Result struct {
	JobID             string
	Duration          float64
	EffectiveInterval float64
	FrameCount        int
	SkippedFrames     int
	Columns           int
	Rows              int
	SpritePath        string
	VTTPath           string
	SpriteURL         string
	VTTURL            string
}

// Run executes the full pipeline for videoURL. The first stage failure
// aborts the rest and is returned wrapped in its stage error. The
// downloaded video and all individual frame files are removed on every
// path; the sprite and VTT file stay in the job workspace for
// retrieval.
func (g *Generator) Run(ctx context.Context, videoURL string) (*Result, error) {
	jobID := uuid.NewString()
	logging.Info("Job %s: processing %s", jobID, videoURL)

	metrics.JobsInFlight.Inc()
	defer metrics.JobsInFlight.Dec()

	workspace := filepath.Join(g.thumbnailDir, jobID)
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create job workspace: %w", err)
	}

	videoPath := filepath.Join(g.videoDir, "input_"+jobID+".mp4")

	var frames []sprite.Frame
	defer func() {
		g.cleanup(jobID, videoPath, frames)
	}()

	// Download
	stageStart := time.Now()
	if err := g.fetcher.Fetch(ctx, videoURL, videoPath); err != nil {
		return nil, g.fail(jobID, metrics.OutcomeFetchError, ErrFetch, err)
	}
	metrics.JobStageDuration.WithLabelValues(metrics.StageDownload).Observe(time.Since(stageStart).Seconds())

	// Probe
	stageStart = time.Now()
	duration, err := g.tools.ProbeDuration(ctx, videoPath)
	if err != nil {
		return nil, g.fail(jobID, metrics.OutcomeProbeError, ErrProbe, err)
	}
	if duration <= 0 {
		return nil, g.fail(jobID, metrics.OutcomeProbeError, ErrProbe, fmt.Errorf("non-positive duration %.3f", duration))
	}
	metrics.JobStageDuration.WithLabelValues(metrics.StageProbe).Observe(time.Since(stageStart).Seconds())
	logging.Info("Job %s: video duration %.2fs", jobID, duration)

	// Cue timing degrades for clips shorter than one sampling interval.
	// Frame extraction keeps the configured cadence; only the cue
	// interval is adjusted.
	effectiveInterval := g.interval
	if duration < g.interval {
		effectiveInterval = math.Max(1, math.Floor(duration/2))
		logging.Warn("Job %s: video is very short (%.2fs) for interval %.0fs, using %.0fs cue interval",
			jobID, duration, g.interval, effectiveInterval)
	}

	// Sample
	stageStart = time.Now()
	var skips []sprite.Skip
	frames, skips = g.sampler.Sample(ctx, videoPath, workspace, duration)
	if len(frames) == 0 {
		return nil, g.fail(jobID, metrics.OutcomeNoFrames, ErrNoFrames, fmt.Errorf("all %d extractions failed", len(skips)))
	}
	metrics.JobStageDuration.WithLabelValues(metrics.StageExtract).Observe(time.Since(stageStart).Seconds())
	logging.Info("Job %s: extracted %d frames (%d skipped)", jobID, len(frames), len(skips))

	// Compose
	stageStart = time.Now()
	spritePath := filepath.Join(workspace, SpriteFilename)
	rows, err := g.composer.Compose(ctx, frames, spritePath)
	if err != nil {
		return nil, g.fail(jobID, metrics.OutcomeComposeError, ErrCompose, err)
	}
	metrics.JobStageDuration.WithLabelValues(metrics.StageCompose).Observe(time.Since(stageStart).Seconds())

	// Cue track
	stageStart = time.Now()
	spriteURL := path.Join(AssetURLPrefix, jobID, SpriteFilename)
	vttPath, err := vtt.WriteFile(workspace, len(frames), vtt.Options{
		Interval:    effectiveInterval,
		Columns:     g.columns,
		ThumbWidth:  g.thumbWidth,
		ThumbHeight: g.thumbHeight,
		SpriteURL:   spriteURL,
	})
	if err != nil {
		return nil, g.fail(jobID, metrics.OutcomeVTTError, ErrVTT, err)
	}
	metrics.JobStageDuration.WithLabelValues(metrics.StageVTT).Observe(time.Since(stageStart).Seconds())

	metrics.JobsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logging.Info("Job %s: sprite and VTT generated", jobID)

	return &Result{
		JobID:             jobID,
		Duration:          duration,
		EffectiveInterval: effectiveInterval,
		FrameCount:        len(frames),
		SkippedFrames:     len(skips),
		Columns:           g.columns,
		Rows:              rows,
		SpritePath:        spritePath,
		VTTPath:           vttPath,
		SpriteURL:         spriteURL,
		VTTURL:            path.Join(AssetURLPrefix, jobID, vtt.Filename),
	}, nil
}

// fail records the job outcome and wraps the stage error so callers can
// match it with errors.Is.
func (g *Generator) fail(jobID, outcome string, stageErr, cause error) error {
	metrics.JobsTotal.WithLabelValues(outcome).Inc()
	logging.Error("Job %s: %v: %v", jobID, stageErr, cause)
	return fmt.Errorf("%w: %v", stageErr, cause)
}

// cleanup removes the downloaded video and every extracted frame. The
// sprite and VTT file are intentionally left behind; an external
// retention policy reaps workspaces.
func (g *Generator) cleanup(jobID, videoPath string, frames []sprite.Frame) {
	if err := os.Remove(videoPath); err != nil {
		if !os.IsNotExist(err) {
			logging.Error("Job %s: failed to remove video file %s: %v", jobID, videoPath, err)
		}
	} else {
		logging.Debug("Job %s: removed source video %s", jobID, videoPath)
	}

	for _, frame := range frames {
		if err := os.Remove(frame.Path); err != nil && !os.IsNotExist(err) {
			logging.Error("Job %s: failed to remove frame file %s: %v", jobID, frame.Path, err)
		}
	}
	logging.Info("Job %s: cleanup complete", jobID)
}
