package model

import (
	"time"

	"github.com/go-sod/bnelim/internal/geom"
	"github.com/go-sod/bnelim/internal/util"
	"github.com/google/uuid"
)

// Checkpoints of a run.
const (
	IndexInitial = 0
	IndexFinal   = 1
)

func NewSnapshot(runID uuid.UUID, name string, index int, seed uint32, points geom.Set) Snapshot {
	return Snapshot{
		ID:          uuid.New(),
		RunID:       runID,
		Name:        name,
		Index:       index,
		Seed:        seed,
		Points:      points,
		Fingerprint: util.HashPoints(points),
		CreatedAt:   time.Now(),
	}
}

// Snapshot is a read-only copy of a point set at a checkpoint of a run.
type Snapshot struct {
	ID          uuid.UUID
	RunID       uuid.UUID
	Name        string
	Index       int
	Seed        uint32
	Points      geom.Set
	Fingerprint util.Fingerprint
	CreatedAt   time.Time
}

func (s Snapshot) IsInitial() bool {
	return s.Index == IndexInitial
}

func (s Snapshot) IsFinal() bool {
	return s.Index == IndexFinal
}
