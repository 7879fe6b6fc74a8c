package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-sod/bnelim/internal/logging"
	bolt "go.etcd.io/bbolt"
)

// DB is the snapshot archive file. Bucket layout belongs to the packages
// storing into it.
type DB struct {
	DB   *bolt.DB
	path string
}

// Open creates the parent directory of the configured file when missing and
// opens it, waiting at most OpenTimeout for the file lock held by another
// process.
func Open(ctx context.Context, config *Config) (*DB, error) {
	logger := logging.FromContext(ctx)
	if config.FileName == "" {
		return nil, fmt.Errorf("snapshot db file name is empty")
	}
	if err := os.MkdirAll(filepath.Dir(config.FileName), 0o755); err != nil {
		return nil, fmt.Errorf("unable create snapshot db directory: %w", err)
	}

	db, err := bolt.Open(config.FileName, 0o600, &bolt.Options{Timeout: config.OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("unable open snapshot db %s: %w", config.FileName, err)
	}
	logger.Infof("snapshot db %s opened", config.FileName)

	return &DB{DB: db, path: config.FileName}, nil
}

func (db *DB) Path() string {
	return db.path
}

func (db *DB) Close(ctx context.Context) error {
	logging.FromContext(ctx).Infof("closing snapshot db %s", db.path)
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("unable close snapshot db %s: %w", db.path, err)
	}
	return nil
}
