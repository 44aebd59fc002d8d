package sprite

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"video-sprite-generator/internal/testsupport"
)

func TestSampleOffsets(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		interval float64
		want     []float64
	}{
		{"EvenSpacing", 23, 5, []float64{0, 5, 10, 15, 20}},
		{"LastClamped", 10.05, 5, []float64{0, 5, 9.95}},
		{"SingleFrame", 3, 5, []float64{0}},
		{"ExactMultiple", 10, 5, []float64{0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &testsupport.FakeToolchain{}
			sampler := NewSampler(fake, 160, 90, tt.interval)

			frames, skips := sampler.Sample(context.Background(), "in.mp4", t.TempDir(), tt.duration)

			if len(skips) != 0 {
				t.Fatalf("got %d skips, want 0", len(skips))
			}
			if len(frames) != len(tt.want) {
				t.Fatalf("got %d frames, want %d", len(frames), len(tt.want))
			}
			for i, frame := range frames {
				if frame.Index != i {
					t.Errorf("frame %d has index %d", i, frame.Index)
				}
				if math.Abs(frame.Offset-tt.want[i]) > 1e-9 {
					t.Errorf("frame %d offset = %v, want %v", i, frame.Offset, tt.want[i])
				}
			}
		})
	}
}

func TestSampleRequestedCount(t *testing.T) {
	// Number of requested extractions must be ceil(duration/interval).
	tests := []struct {
		duration float64
		interval float64
		want     int
	}{
		{23, 5, 5},
		{25, 5, 5},
		{25.1, 5, 6},
		{1, 5, 1},
		{0.5, 1, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("d%v_k%v", tt.duration, tt.interval), func(t *testing.T) {
			fake := &testsupport.FakeToolchain{}
			sampler := NewSampler(fake, 160, 90, tt.interval)

			sampler.Sample(context.Background(), "in.mp4", t.TempDir(), tt.duration)

			if len(fake.Extracted) != tt.want {
				t.Errorf("requested %d extractions, want %d", len(fake.Extracted), tt.want)
			}
			for _, offset := range fake.Extracted {
				if offset > tt.duration-endOfStreamMargin+1e-9 {
					t.Errorf("offset %v exceeds duration-%v", offset, endOfStreamMargin)
				}
			}
		})
	}
}

func TestSampleSkipsFailedExtractions(t *testing.T) {
	fake := &testsupport.FakeToolchain{
		FailExtract: func(offset float64) error {
			if offset == 10 {
				return errors.New("boom")
			}
			return nil
		},
	}
	sampler := NewSampler(fake, 160, 90, 5)

	frames, skips := sampler.Sample(context.Background(), "in.mp4", t.TempDir(), 23)

	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	if len(skips) != 1 {
		t.Fatalf("got %d skips, want 1", len(skips))
	}
	if skips[0].Index != 2 {
		t.Errorf("skipped index = %d, want 2", skips[0].Index)
	}

	// Survivors keep their original indices, in strictly increasing order.
	wantIndices := []int{0, 1, 3, 4}
	for i, frame := range frames {
		if frame.Index != wantIndices[i] {
			t.Errorf("frame %d index = %d, want %d", i, frame.Index, wantIndices[i])
		}
	}
	if !sort.SliceIsSorted(frames, func(i, j int) bool { return frames[i].Index < frames[j].Index }) {
		t.Error("frames are not in increasing index order")
	}
}

func TestSampleSkipsEmptyOutput(t *testing.T) {
	fake := &testsupport.FakeToolchain{
		EmptyExtract: func(offset float64) bool { return offset == 5 },
	}
	sampler := NewSampler(fake, 160, 90, 5)
	dir := t.TempDir()

	frames, skips := sampler.Sample(context.Background(), "in.mp4", dir, 23)

	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	if len(skips) != 1 || skips[0].Index != 1 {
		t.Fatalf("skips = %+v, want single skip of index 1", skips)
	}

	// The zero-byte file must not linger in the workspace.
	if _, err := os.Stat(filepath.Join(dir, "thumb_0001.jpg")); !os.IsNotExist(err) {
		t.Errorf("empty frame file still present (stat err = %v)", err)
	}
}

func TestSampleAllFailed(t *testing.T) {
	fake := &testsupport.FakeToolchain{
		FailExtract: func(float64) error { return errors.New("unreadable") },
	}
	sampler := NewSampler(fake, 160, 90, 5)

	frames, skips := sampler.Sample(context.Background(), "in.mp4", t.TempDir(), 23)

	if len(frames) != 0 {
		t.Errorf("got %d frames, want 0", len(frames))
	}
	if len(skips) != 5 {
		t.Errorf("got %d skips, want 5", len(skips))
	}
}

func TestSampleFramesReadable(t *testing.T) {
	fake := &testsupport.FakeToolchain{}
	sampler := NewSampler(fake, 160, 90, 5)
	dir := t.TempDir()

	frames, _ := sampler.Sample(context.Background(), "in.mp4", dir, 12)

	for _, frame := range frames {
		info, err := os.Stat(frame.Path)
		if err != nil {
			t.Fatalf("frame %d missing: %v", frame.Index, err)
		}
		if info.Size() == 0 {
			t.Errorf("frame %d is empty", frame.Index)
		}
	}
}
