package sprite

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"video-sprite-generator/internal/logging"
	"video-sprite-generator/internal/metrics"
	"video-sprite-generator/internal/workers"
)

// endOfStreamMargin keeps the last seek offset just short of the video
// duration so ffmpeg does not seek past the final frame.
const endOfStreamMargin = 0.1

// maxExtractWorkers caps the per-job extraction fan-out so one job
// cannot monopolize the host with ffmpeg processes.
const maxExtractWorkers = 8

// Sampler extracts still frames from a video at a fixed cadence.
type Sampler struct {
	tools      Toolchain
	width      int
	height     int
	interval   float64
	numWorkers int
}

// NewSampler creates a Sampler producing width x height frames every
// interval seconds.
func NewSampler(tools Toolchain, width, height int, interval float64) *Sampler {
	return &Sampler{
		tools:      tools,
		width:      width,
		height:     height,
		interval:   interval,
		numWorkers: workers.ForSubprocess(maxExtractWorkers),
	}
}

type sampleResult struct {
	frame Frame
	err   error
}

// Sample extracts ceil(duration/interval) frames from videoPath into
// outDir. Extraction failures are skipped, not fatal: the returned
// frames are the surviving subsequence in strictly increasing index
// order, and every skipped index is reported alongside its reason.
// Individual extractions run concurrently; each is bounded by the
// toolchain's own per-operation timeout.
func (s *Sampler) Sample(ctx context.Context, videoPath, outDir string, duration float64) ([]Frame, []Skip) {
	count := int(math.Ceil(duration / s.interval))
	logging.Info("Preparing to extract %d frames from %s", count, videoPath)

	results := make([]sampleResult, count)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.extractOne(ctx, videoPath, outDir, i, duration)
			}
		}()
	}
	for i := 0; i < count; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Fold back into index order: extraction may complete out of order,
	// but the surviving sequence must not.
	var frames []Frame
	var skips []Skip
	for i, res := range results {
		if res.err != nil {
			offset := s.offsetFor(i, duration)
			logging.Warn("Skipping frame %d at %.3fs: %v", i, offset, res.err)
			skips = append(skips, Skip{Index: i, Offset: offset, Reason: res.err})
			continue
		}
		frames = append(frames, res.frame)
	}

	metrics.FramesExtractedTotal.Add(float64(len(frames)))
	metrics.FramesSkippedTotal.Add(float64(len(skips)))

	return frames, skips
}

// offsetFor computes the seek offset for sample i, clamped to stay
// short of end of stream.
func (s *Sampler) offsetFor(i int, duration float64) float64 {
	return math.Min(float64(i)*s.interval, duration-endOfStreamMargin)
}

func (s *Sampler) extractOne(ctx context.Context, videoPath, outDir string, i int, duration float64) sampleResult {
	offset := s.offsetFor(i, duration)
	outPath := filepath.Join(outDir, fmt.Sprintf("thumb_%04d.jpg", i))

	if err := s.tools.ExtractFrame(ctx, videoPath, offset, s.width, s.height, outPath); err != nil {
		return sampleResult{err: err}
	}

	// ffmpeg can exit zero yet write nothing usable near end of stream.
	info, err := os.Stat(outPath)
	if err != nil {
		return sampleResult{err: fmt.Errorf("frame file not created: %w", err)}
	}
	if info.Size() == 0 {
		if rmErr := os.Remove(outPath); rmErr != nil {
			logging.Warn("failed to remove empty frame file %s: %v", outPath, rmErr)
		}
		return sampleResult{err: fmt.Errorf("frame file %s is empty", outPath)}
	}

	logging.Debug("Extracted frame %d at %.3fs -> %s", i, offset, outPath)
	return sampleResult{frame: Frame{Index: i, Offset: offset, Path: outPath}}
}
