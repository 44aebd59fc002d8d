package sprite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"video-sprite-generator/internal/logging"
)

// ListFilename is the concat list file that drives the tile filter.
// It lives next to the sprite output and never survives composition.
const ListFilename = "input_thumbs.txt"

// Composer tiles extracted frames into a single sprite image.
type Composer struct {
	tools   Toolchain
	columns int
}

// NewComposer creates a Composer laying frames out across the given
// number of columns per row.
func NewComposer(tools Toolchain, columns int) *Composer {
	return &Composer{tools: tools, columns: columns}
}

// Compose tiles the frames into a row-major grid image at outPath and
// returns the number of rows used. Tile position in the sprite is
// implied by list order, so frames are sorted by index before the list
// file is written. The list file is removed whether or not tiling
// succeeds.
func (c *Composer) Compose(ctx context.Context, frames []Frame, outPath string) (int, error) {
	if len(frames) == 0 {
		return 0, fmt.Errorf("no frames to compose")
	}

	rows := Rows(len(frames), c.columns)

	ordered := make([]Frame, len(frames))
	copy(ordered, frames)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	dir := filepath.Dir(outPath)
	listPath := filepath.Join(dir, ListFilename)

	var list strings.Builder
	for _, frame := range ordered {
		rel, err := filepath.Rel(dir, frame.Path)
		if err != nil {
			rel = frame.Path
		}
		fmt.Fprintf(&list, "file '%s'\n", rel)
	}

	if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write concat list: %w", err)
	}
	defer func() {
		if err := os.Remove(listPath); err != nil && !os.IsNotExist(err) {
			logging.Warn("failed to remove concat list %s: %v", listPath, err)
		}
	}()

	if err := c.tools.Tile(ctx, listPath, c.columns, rows, outPath); err != nil {
		return 0, fmt.Errorf("tiling %d frames into %dx%d grid: %w", len(ordered), c.columns, rows, err)
	}

	logging.Info("Sprite image created at %s (%d frames, %d rows)", outPath, len(ordered), rows)
	return rows, nil
}
