package sprite

import "context"

// Toolchain is the narrow media-capability contract the pipeline
// consumes. The production implementation shells out to ffmpeg/ffprobe;
// tests substitute a fake.
type Toolchain interface {
	// ProbeDuration returns the duration of a video file in seconds.
	ProbeDuration(ctx context.Context, videoPath string) (float64, error)

	// ExtractFrame writes a single still frame taken at offsetSeconds,
	// scaled to width x height, to outPath.
	ExtractFrame(ctx context.Context, videoPath string, offsetSeconds float64, width, height int, outPath string) error

	// Tile arranges the frames named by the concat list file into a
	// columns x rows grid image at outPath.
	Tile(ctx context.Context, listPath string, columns, rows int, outPath string) error
}

// Frame is one successfully extracted thumbnail still.
type Frame struct {
	// Index is the zero-based sample ordinal. It determines the seek
	// offset and is preserved even when earlier samples are skipped.
	Index int

	// Offset is the seek position in seconds the frame was taken at.
	Offset float64

	// Path is the frame file on disk, owned by the caller once Sample
	// returns.
	Path string
}

// Skip records one sample index that produced no usable frame.
type Skip struct {
	Index  int
	Offset float64
	Reason error
}

// Rows returns the sprite grid row count for n frames laid out across
// the given number of columns, never less than one row.
func Rows(n, columns int) int {
	rows := (n + columns - 1) / columns
	if rows < 1 {
		rows = 1
	}
	return rows
}
