package export

import (
	"context"
	"fmt"

	"github.com/go-sod/bnelim/internal/logging"
	snapshotDb "github.com/go-sod/bnelim/internal/snapshot/database"
	"github.com/go-sod/bnelim/internal/snapshot/model"
)

func NewStoreSink(db *snapshotDb.DB, maxSnapshots int) *storeSink {
	return &storeSink{db: db, maxSnapshots: maxSnapshots}
}

// storeSink archives snapshots and keeps at most maxSnapshots per run name,
// 0 meaning unlimited.
type storeSink struct {
	db           *snapshotDb.DB
	maxSnapshots int
}

func (s *storeSink) Name() string {
	return "store"
}

func (s *storeSink) Write(ctx context.Context, snapshot model.Snapshot) error {
	logger := logging.FromContext(ctx)
	if snapshot.IsFinal() {
		s.compare(ctx, snapshot)
	}
	if err := s.db.Store(ctx, snapshot); err != nil {
		return fmt.Errorf("unable store snapshot: %w", err)
	}
	deleted, err := s.db.Prune(ctx, snapshot.Name, s.maxSnapshots)
	if err != nil {
		return fmt.Errorf("unable prune snapshots: %w", err)
	}
	if deleted > 0 {
		logger.Debugf("pruned %d snapshots of %s", deleted, snapshot.Name)
	}
	return nil
}

// compare warns when an archived final snapshot of the same run name and
// seed has a different fingerprint.
func (s *storeSink) compare(ctx context.Context, snapshot model.Snapshot) {
	logger := logging.FromContext(ctx)
	previous, err := s.db.FindByName(snapshot.Name, func(p model.Snapshot) bool {
		return p.IsFinal() && p.Seed == snapshot.Seed && p.RunID != snapshot.RunID
	})
	if err != nil {
		logger.Errorf("unable fetch previous snapshots of %s: %v", snapshot.Name, err)
		return
	}
	for _, p := range previous {
		if p.Fingerprint != snapshot.Fingerprint {
			logger.Warnf("snapshot %s with seed %d differs from run %s: %s != %s",
				snapshot.Name, snapshot.Seed, p.RunID, snapshot.Fingerprint, p.Fingerprint)
		}
	}
}
