package ffmpeg

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tools := New(20*time.Second, 30*time.Second, 120*time.Second)

	if tools.probeTimeout != 20*time.Second {
		t.Errorf("probeTimeout = %s, want 20s", tools.probeTimeout)
	}
	if tools.extractTimeout != 30*time.Second {
		t.Errorf("extractTimeout = %s, want 30s", tools.extractTimeout)
	}
	if tools.tileTimeout != 120*time.Second {
		t.Errorf("tileTimeout = %s, want 120s", tools.tileTimeout)
	}
}

func TestCommandError(t *testing.T) {
	plain := errors.New("exit status 1")

	if got := commandError(context.Background(), plain); got != plain {
		t.Errorf("commandError with live context = %v, want %v", got, plain)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	if got := commandError(ctx, plain); !errors.Is(got, context.DeadlineExceeded) {
		t.Errorf("commandError with expired context = %v, want deadline exceeded", got)
	}
}

func TestExtractFrameRespectsCancelledContext(t *testing.T) {
	tools := New(time.Second, time.Second, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Fails fast whether ffmpeg is installed (cancelled context) or not
	// (missing binary); either way no frame may be produced.
	err := tools.ExtractFrame(ctx, "missing.mp4", 0, 160, 90, t.TempDir()+"/out.jpg")
	if err == nil {
		t.Fatal("ExtractFrame with cancelled context succeeded")
	}
}
