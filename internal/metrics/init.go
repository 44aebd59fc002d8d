package metrics

// Pipeline stage labels used with JobStageDuration.
const (
	StageDownload = "download"
	StageProbe    = "probe"
	StageExtract  = "extract"
	StageCompose  = "compose"
	StageVTT      = "vtt"
)

// Job outcome labels used with JobsTotal.
const (
	OutcomeSuccess      = "success"
	OutcomeFetchError   = "fetch_error"
	OutcomeProbeError   = "probe_error"
	OutcomeNoFrames     = "no_frames"
	OutcomeComposeError = "compose_error"
	OutcomeVTTError     = "vtt_error"
)

// Tool operation labels used with FFmpegDuration and FFmpegErrorsTotal.
const (
	OpProbe   = "probe"
	OpExtract = "extract"
	OpTile    = "tile"
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, outcome := range []string{
		OutcomeSuccess, OutcomeFetchError, OutcomeProbeError,
		OutcomeNoFrames, OutcomeComposeError, OutcomeVTTError,
	} {
		JobsTotal.WithLabelValues(outcome)
	}

	for _, stage := range []string{
		StageDownload, StageProbe, StageExtract, StageCompose, StageVTT,
	} {
		JobStageDuration.WithLabelValues(stage)
	}

	for _, op := range []string{OpProbe, OpExtract, OpTile} {
		FFmpegDuration.WithLabelValues(op)
		FFmpegErrorsTotal.WithLabelValues(op)
	}
}
