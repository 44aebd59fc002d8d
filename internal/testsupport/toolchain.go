package testsupport

import (
	"bufio"
	"context"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// TileCall records one Tile invocation for assertions.
type TileCall struct {
	ListPath    string
	Columns     int
	Rows        int
	OutPath     string
	ListEntries []string
}

// FakeToolchain is an in-process stand-in for the ffmpeg toolchain.
// It writes real JPEG files so size and existence checks in the
// pipeline behave as they would against ffmpeg output.
type FakeToolchain struct {
	mu sync.Mutex

	// Duration and ProbeErr control ProbeDuration.
	Duration float64
	ProbeErr error

	// FailExtract, when set, is consulted per extraction offset; a
	// non-nil return fails that extraction.
	FailExtract func(offsetSeconds float64) error

	// EmptyExtract, when set, makes extractions at matching offsets
	// produce a zero-byte file instead of a JPEG.
	EmptyExtract func(offsetSeconds float64) bool

	// TileErr fails Tile after the list file has been read.
	TileErr error

	Extracted []float64
	Tiles     []TileCall
}

// ProbeDuration implements sprite.Toolchain.
func (f *FakeToolchain) ProbeDuration(_ context.Context, _ string) (float64, error) {
	if f.ProbeErr != nil {
		return 0, f.ProbeErr
	}
	return f.Duration, nil
}

// ExtractFrame implements sprite.Toolchain.
func (f *FakeToolchain) ExtractFrame(_ context.Context, _ string, offsetSeconds float64, width, height int, outPath string) error {
	if f.FailExtract != nil {
		if err := f.FailExtract(offsetSeconds); err != nil {
			return err
		}
	}

	f.mu.Lock()
	f.Extracted = append(f.Extracted, offsetSeconds)
	f.mu.Unlock()

	if f.EmptyExtract != nil && f.EmptyExtract(offsetSeconds) {
		return os.WriteFile(outPath, nil, 0o644)
	}

	frame := imaging.New(width, height, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	return imaging.Save(frame, outPath)
}

// Tile implements sprite.Toolchain.
func (f *FakeToolchain) Tile(_ context.Context, listPath string, columns, rows int, outPath string) error {
	entries, err := readConcatList(listPath)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.Tiles = append(f.Tiles, TileCall{
		ListPath:    listPath,
		Columns:     columns,
		Rows:        rows,
		OutPath:     outPath,
		ListEntries: entries,
	})
	f.mu.Unlock()

	if f.TileErr != nil {
		return f.TileErr
	}

	grid := imaging.New(columns, rows, color.NRGBA{A: 255})
	return imaging.Save(grid, outPath)
}

// readConcatList parses "file 'name'" entries from an ffmpeg concat
// list file.
func readConcatList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "file '") {
			continue
		}
		entries = append(entries, strings.TrimSuffix(strings.TrimPrefix(line, "file '"), "'"))
	}
	return entries, scanner.Err()
}
