package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"video-sprite-generator/internal/logging"
	"video-sprite-generator/internal/metrics"
)

// Fetcher downloads a remote video to a local file.
type Fetcher interface {
	Fetch(ctx context.Context, videoURL, destPath string) error
}

// HTTPFetcher streams a remote video to disk over HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher whose requests are bounded by
// the given timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads videoURL to destPath, streaming the body to disk.
// Any network failure or non-2xx status is an error, and no partial
// file is left behind.
func (f *HTTPFetcher) Fetch(ctx context.Context, videoURL, destPath string) error {
	logging.Info("Downloading video from %s", videoURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return fmt.Errorf("invalid video URL: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn("failed to close download body: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create video file: %w", err)
	}

	written, err := io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(destPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logging.Warn("failed to remove partial download %s: %v", destPath, rmErr)
		}
		return fmt.Errorf("download interrupted: %w", err)
	}

	metrics.DownloadBytesTotal.Add(float64(written))
	logging.Info("Video downloaded to %s (%d bytes)", destPath, written)
	return nil
}
