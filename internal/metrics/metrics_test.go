package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitializeMetrics(t *testing.T) {
	// Must not panic, and must make label combinations visible without
	// any job having run.
	InitializeMetrics()

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	series := map[string]int{}
	for _, mf := range families {
		series[mf.GetName()] = len(mf.GetMetric())
	}

	for _, name := range []string{
		"sprite_generator_jobs_total",
		"sprite_generator_job_stage_duration_seconds",
		"sprite_generator_ffmpeg_duration_seconds",
		"sprite_generator_ffmpeg_errors_total",
	} {
		n, ok := series[name]
		if !ok {
			t.Errorf("metric family %s not exported", name)
			continue
		}
		if n == 0 {
			t.Errorf("metric family %s has no pre-populated series", name)
		}
	}
}

func TestJobsTotalIncrement(t *testing.T) {
	before := testutil.ToFloat64(JobsTotal.WithLabelValues(OutcomeSuccess))
	JobsTotal.WithLabelValues(OutcomeSuccess).Inc()
	after := testutil.ToFloat64(JobsTotal.WithLabelValues(OutcomeSuccess))

	if after != before+1 {
		t.Errorf("JobsTotal success = %v, want %v", after, before+1)
	}
}

func TestFrameCounters(t *testing.T) {
	before := testutil.ToFloat64(FramesSkippedTotal)
	FramesSkippedTotal.Inc()
	if got := testutil.ToFloat64(FramesSkippedTotal); got != before+1 {
		t.Errorf("FramesSkippedTotal = %v, want %v", got, before+1)
	}
}
