package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-sod/bnelim/internal/database"
	"github.com/go-sod/bnelim/internal/snapshot/model"
	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const (
	nameKeys = "snapshot:keys:"
	prefix   = "snapshot:"
)

type FilterFn func(snapshot model.Snapshot) bool

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

// DB archives snapshots in one bucket per run name, keyed by snapshot ID.
type DB struct {
	sDB *database.DB
}

func (db *DB) extractKey(key string) string {
	prefixPos := strings.Index(key, prefix)

	return key[prefixPos+len(prefix):]
}

func (db *DB) Names() ([]string, error) {
	var names []string
	err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(nameKeys))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			names = append(names, db.extractKey(string(k)))
		}
		return nil
	})

	return names, err
}

func (db *DB) Store(ctx context.Context, snapshot model.Snapshot) error {
	return db.AppendMany(ctx, []model.Snapshot{snapshot})
}

func (db *DB) AppendMany(_ context.Context, snapshots []model.Snapshot) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		keys, err := tx.CreateBucketIfNotExists([]byte(nameKeys))
		if err != nil {
			return fmt.Errorf("unable create names bucket: %w", err)
		}
		for _, snapshot := range snapshots {
			b, err := tx.CreateBucketIfNotExists([]byte(prefix + snapshot.Name))
			if err != nil {
				return fmt.Errorf("create bucket: %w", err)
			}
			bytes, err := encode(snapshot)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(snapshot.ID.String()), bytes); err != nil {
				return fmt.Errorf("put to bucket error: %w", err)
			}
			if err := keys.Put([]byte(prefix+snapshot.Name), []byte{0x0}); err != nil {
				return fmt.Errorf("unable put to names bucket: %w", err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

func (db *DB) DeleteMany(_ context.Context, snapshots []model.Snapshot) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		for _, snapshot := range snapshots {
			b := tx.Bucket([]byte(prefix + snapshot.Name))
			if b == nil {
				continue
			}
			if err := b.Delete([]byte(snapshot.ID.String())); err != nil {
				return fmt.Errorf("unable delete: %w", err)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

func (db *DB) CountByName(name string) (int, error) {
	var length int
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(prefix + name))
		if b == nil {
			return nil
		}
		length = b.Stats().KeyN
		return nil
	}); err != nil {
		return 0, fmt.Errorf("view transaction error: %w", err)
	}

	return length, nil
}

// FindByName returns the snapshots of a run name accepted by filter, oldest
// first.
func (db *DB) FindByName(name string, filter FilterFn) ([]model.Snapshot, error) {
	var list []model.Snapshot
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(prefix + name))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			snapshot, err := decode(v)
			if err != nil {
				return fmt.Errorf("snapshot %s: %w", k, err)
			}
			if filter == nil || filter(snapshot) {
				list = append(list, snapshot)
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})

	return list, nil
}

func (db *DB) FindByRun(runID uuid.UUID) ([]model.Snapshot, error) {
	names, err := db.Names()
	if err != nil {
		return nil, fmt.Errorf("unable fetch names: %w", err)
	}
	var list []model.Snapshot
	for _, name := range names {
		found, err := db.FindByName(name, func(snapshot model.Snapshot) bool {
			return snapshot.RunID == runID
		})
		if err != nil {
			return nil, err
		}
		list = append(list, found...)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Index < list[j].Index
	})
	return list, nil
}

// Prune keeps only the newest keep snapshots stored under name.
func (db *DB) Prune(ctx context.Context, name string, keep int) (int, error) {
	length, err := db.CountByName(name)
	if err != nil {
		return 0, fmt.Errorf("unable count by name %s: %w", name, err)
	}
	if keep <= 0 || length <= keep {
		return 0, nil
	}
	snapshots, err := db.FindByName(name, nil)
	if err != nil {
		return 0, fmt.Errorf("unable find snapshots by name %s: %w", name, err)
	}
	if len(snapshots) <= keep {
		return 0, nil
	}
	outdated := snapshots[:len(snapshots)-keep]
	if err := db.DeleteMany(ctx, outdated); err != nil {
		return 0, fmt.Errorf("unable delete outdated snapshots %s: %w", name, err)
	}
	return len(outdated), nil
}
