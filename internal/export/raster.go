package export

import (
	"context"
	"fmt"
	"image/color"
	"os"

	"github.com/fogleman/gg"
	"github.com/go-sod/bnelim/internal/geom"
	"github.com/go-sod/bnelim/internal/snapshot/model"
)

var ErrInvalidImageSize = fmt.Errorf("image size must be positive")

func NewRasterSink(dir string, size int) (*rasterSink, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidImageSize, size)
	}
	return &rasterSink{dir: dir, size: size}, nil
}

// rasterSink renders every point as a single black pixel on white.
type rasterSink struct {
	dir  string
	size int
}

func (r *rasterSink) Name() string {
	return "raster"
}

func (r *rasterSink) Write(_ context.Context, snapshot model.Snapshot) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("unable create output dir: %w", err)
	}
	dc := r.render(snapshot.Points)
	if err := dc.SavePNG(FileName(r.dir, snapshot.Name, snapshot.Index, "png")); err != nil {
		return fmt.Errorf("unable save png: %w", err)
	}
	return nil
}

func (r *rasterSink) render(points geom.Set) *gg.Context {
	dc := gg.NewContext(r.size, r.size)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	for _, p := range points {
		dc.SetPixel(Bucket(p.X, r.size), Bucket(p.Y, r.size))
	}
	return dc
}

// Bucket maps a coordinate to its pixel, clamped to [0, size-1].
func Bucket(v float64, size int) int {
	return clamp(int(v*float64(size)), 0, size-1)
}

func clamp(v, lo, hi int) int {
	if v <= lo {
		return lo
	}
	if v >= hi {
		return hi
	}
	return v
}
