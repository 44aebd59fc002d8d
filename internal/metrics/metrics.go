package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sprite_generator_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sprite_generator_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sprite_generator_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Job metrics
var (
	JobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sprite_generator_jobs_total",
			Help: "Total number of sprite generation jobs by outcome",
		},
		[]string{"outcome"},
	)

	JobsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sprite_generator_jobs_in_flight",
			Help: "Number of sprite generation jobs currently running",
		},
	)

	JobStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sprite_generator_job_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"stage"},
	)

	DownloadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sprite_generator_download_bytes_total",
			Help: "Total number of source video bytes downloaded",
		},
	)
)

// Frame extraction metrics
var (
	FramesExtractedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sprite_generator_frames_extracted_total",
			Help: "Total number of thumbnail frames successfully extracted",
		},
	)

	FramesSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sprite_generator_frames_skipped_total",
			Help: "Total number of thumbnail frames skipped after extraction failures",
		},
	)
)

// External tool metrics
var (
	FFmpegDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sprite_generator_ffmpeg_duration_seconds",
			Help:    "Duration of ffmpeg/ffprobe invocations in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"operation"},
	)

	FFmpegErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sprite_generator_ffmpeg_errors_total",
			Help: "Total number of failed ffmpeg/ffprobe invocations",
		},
		[]string{"operation"},
	)
)
