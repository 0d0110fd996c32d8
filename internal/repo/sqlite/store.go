package sqlite

import (
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/Somethings1/fintrack-sub000/internal/model"
)

// Store wraps the local SQLite cache database. One table per collection,
// keyed by the entity id, plus sync_state for checkpoints.
type Store struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// Open opens (creating if needed) the cache database at path.
// The modernc driver is used so the binary stays cgo-free.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	if path == "" {
		return nil, errors.New("empty cache db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: path}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// OpenForUser opens the cache database segregated per login. Base directory
// can be overridden via the CLIENT_DB_PATH environment variable.
func OpenForUser(login string, log *zap.SugaredLogger) (*Store, string, error) {
	if login == "" {
		return nil, "", errors.New("empty login for user cache")
	}
	base := os.Getenv("CLIENT_DB_PATH")
	if base == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return nil, "", err
		}
		base = filepath.Join(cfgDir, "fintrack", "users")
	}
	dbPath := filepath.Join(base, login, "cache.sqlite")
	s, err := Open(dbPath, log)
	if err != nil {
		return nil, "", err
	}
	return s, dbPath, nil
}

// Migrate ensures all collection tables and the checkpoint table exist.
// Migrations are additive only: new collections may appear in later versions
// without destroying existing ones.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&model.Transaction{},
		&model.Account{},
		&model.Saving{},
		&model.Category{},
		&model.Subscription{},
		&model.Notification{},
		&SyncState{},
	)
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
