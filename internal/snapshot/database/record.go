package database

import (
	"bytes"
	"fmt"
	"time"

	xdr "github.com/davecgh/go-xdr/xdr2"
	"github.com/go-sod/bnelim/internal/geom"
	"github.com/go-sod/bnelim/internal/snapshot/model"
	"github.com/go-sod/bnelim/internal/util"
	"github.com/google/uuid"
)

// record is the XDR layout of a stored snapshot.
type record struct {
	ID          string
	RunID       string
	Name        string
	Index       int32
	Seed        uint32
	Points      []geom.Point
	Fingerprint []byte
	CreatedAt   int64
}

func encode(s model.Snapshot) ([]byte, error) {
	buffer := util.GetBytesBuffer()
	defer util.PutBytesBuffer(buffer)
	rec := record{
		ID:          s.ID.String(),
		RunID:       s.RunID.String(),
		Name:        s.Name,
		Index:       int32(s.Index),
		Seed:        s.Seed,
		Points:      s.Points,
		Fingerprint: s.Fingerprint[:],
		CreatedAt:   s.CreatedAt.UnixNano(),
	}
	if rec.Points == nil {
		rec.Points = []geom.Point{}
	}
	if _, err := xdr.Marshal(buffer, rec); err != nil {
		return nil, fmt.Errorf("xdr marshal error: %w", err)
	}
	out := make([]byte, buffer.Len())
	copy(out, buffer.Bytes())
	return out, nil
}

func decode(b []byte) (model.Snapshot, error) {
	var rec record
	if _, err := xdr.Unmarshal(bytes.NewReader(b), &rec); err != nil {
		return model.Snapshot{}, fmt.Errorf("xdr unmarshal error: %w", err)
	}
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("invalid snapshot id %q: %w", rec.ID, err)
	}
	runID, err := uuid.Parse(rec.RunID)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("invalid run id %q: %w", rec.RunID, err)
	}
	if len(rec.Fingerprint) != len(util.Fingerprint{}) {
		return model.Snapshot{}, fmt.Errorf("invalid fingerprint length %d", len(rec.Fingerprint))
	}
	s := model.Snapshot{
		ID:        id,
		RunID:     runID,
		Name:      rec.Name,
		Index:     int(rec.Index),
		Seed:      rec.Seed,
		Points:    rec.Points,
		CreatedAt: time.Unix(0, rec.CreatedAt),
	}
	copy(s.Fingerprint[:], rec.Fingerprint)
	return s, nil
}
