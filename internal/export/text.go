package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-sod/bnelim/internal/geom"
	"github.com/go-sod/bnelim/internal/snapshot/model"
)

func NewTextSink(dir string) *textSink {
	return &textSink{dir: dir}
}

// textSink writes one "x, y" pair per line.
type textSink struct {
	dir string
}

func (s *textSink) Name() string {
	return "text"
}

func (s *textSink) Write(_ context.Context, snapshot model.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("unable create output dir: %w", err)
	}
	f, err := os.Create(FileName(s.dir, snapshot.Name, snapshot.Index, "txt"))
	if err != nil {
		return fmt.Errorf("unable create text file: %w", err)
	}
	if err := WriteText(f, snapshot.Points); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable close text file: %w", err)
	}
	return nil
}

func WriteText(w io.Writer, points geom.Set) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%f, %f\n", p.X, p.Y); err != nil {
			return fmt.Errorf("unable write point: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("unable flush points: %w", err)
	}
	return nil
}
