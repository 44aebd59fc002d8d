package vtt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func defaultOptions() Options {
	return Options{
		Interval:    5,
		Columns:     10,
		ThumbWidth:  160,
		ThumbHeight: 90,
		SpriteURL:   "/thumbnails/job1/sprite.jpg",
	}
}

func TestBuildSingleFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := Build(&buf, 1, defaultOptions()); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := "WEBVTT\n\n" +
		"00:00:00.000 --> 00:00:05.000\n" +
		"/thumbnails/job1/sprite.jpg#xywh=0,0,160,90\n\n"

	if buf.String() != want {
		t.Errorf("Build() output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestBuildFiveFrames(t *testing.T) {
	var buf bytes.Buffer
	if err := Build(&buf, 5, defaultOptions()); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "WEBVTT\n\n") {
		t.Fatal("missing WEBVTT header")
	}

	// One row of five tiles: y stays 0, x walks the row.
	for i := 0; i < 5; i++ {
		fragment := fmt.Sprintf("#xywh=%d,0,160,90", i*160)
		if !strings.Contains(out, fragment) {
			t.Errorf("output missing fragment %s", fragment)
		}
	}

	if got := strings.Count(out, "-->"); got != 5 {
		t.Errorf("cue count = %d, want 5", got)
	}
	if !strings.Contains(out, "00:00:20.000 --> 00:00:25.000") {
		t.Error("missing final cue timing")
	}
}

func TestBuildWrapsRows(t *testing.T) {
	var buf bytes.Buffer
	if err := Build(&buf, 23, defaultOptions()); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	out := buf.String()

	// Frame 10 starts the second row, frame 22 sits at column 2 row 2.
	if !strings.Contains(out, "#xywh=0,90,160,90") {
		t.Error("frame 10 not at start of second row")
	}
	if !strings.Contains(out, "#xywh=320,180,160,90") {
		t.Error("frame 22 not at column 2 of third row")
	}
}

func TestBuildAdjustedInterval(t *testing.T) {
	// Short-video cue timing: interval 1s regardless of the sampling
	// cadence that produced the frame.
	opts := defaultOptions()
	opts.Interval = 1

	var buf bytes.Buffer
	if err := Build(&buf, 1, opts); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if !strings.Contains(buf.String(), "00:00:00.000 --> 00:00:01.000") {
		t.Errorf("output = %q, want 1s cue", buf.String())
	}
}

func TestBuildTimestampsMonotonicAndCapped(t *testing.T) {
	opts := defaultOptions()
	opts.Interval = 40000 // forces the 23:59:59.999 cap

	var buf bytes.Buffer
	if err := Build(&buf, 5, opts); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var prevStart string
	for _, line := range strings.Split(buf.String(), "\n") {
		if !strings.Contains(line, "-->") {
			continue
		}
		parts := strings.Split(line, " --> ")
		if len(parts) != 2 {
			t.Fatalf("malformed cue line %q", line)
		}
		start, end := parts[0], parts[1]

		// Zero-padded HH:MM:SS.mmm compares chronologically as text.
		if start < prevStart {
			t.Errorf("start %s decreases from %s", start, prevStart)
		}
		if end < start {
			t.Errorf("cue %s --> %s runs backwards", start, end)
		}
		if start > "23:59:59.999" || end > "23:59:59.999" {
			t.Errorf("cue %s --> %s exceeds format maximum", start, end)
		}
		prevStart = start
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(dir, 3, defaultOptions())
	if err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	if filepath.Base(path) != Filename {
		t.Errorf("path = %s, want basename %s", path, Filename)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading VTT: %v", err)
	}
	if !strings.HasPrefix(string(data), "WEBVTT\n\n") {
		t.Error("VTT file missing header")
	}
	if got := strings.Count(string(data), "-->"); got != 3 {
		t.Errorf("cue count = %d, want 3", got)
	}
}

func TestWriteFileBadDir(t *testing.T) {
	if _, err := WriteFile(filepath.Join(t.TempDir(), "missing", "deeper"), 1, defaultOptions()); err == nil {
		t.Fatal("WriteFile() into missing directory succeeded")
	}
}
