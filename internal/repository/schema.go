package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/talkline/talkline/internal/repository/model"
)

// columns the app cannot run without; a legacy database missing any of them
// is considered drifted and gets rebuilt from scratch.
var requiredUserColumns = []string{
	"email",
	"username",
	"password_hash",
	"profile_picture",
	"is_online",
	"last_seen",
	"is_admin",
	"is_blocked",
}

func allModels() []any {
	return []any{
		&model.User{},
		&model.Message{},
		&model.FriendRequest{},
		&model.Friendship{},
		&model.Group{},
		&model.GroupMember{},
		&model.GroupMessage{},
		&model.Call{},
		&model.Status{},
		&model.StatusView{},
		&model.Notification{},
	}
}

// Open opens (or creates) the sqlite database file. The parent directory is
// created if missing. TranslateError lets callers match gorm.ErrDuplicatedKey
// instead of driver message text.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

type migration struct {
	Name string
	Run  func(tx *gorm.DB) error
}

var migrations = []migration{
	{
		Name: "0001_initial_schema",
		Run: func(tx *gorm.DB) error {
			return tx.AutoMigrate(allModels()...)
		},
	},
	{
		Name: "0002_unread_message_index",
		Run: func(tx *gorm.DB) error {
			// partial index keeps the per-conversation unread count cheap
			return tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_messages_unread
				ON messages (receiver_id, sender_id)
				WHERE is_read = 0
			`).Error
		},
	},
}

// Migrate brings the database up to the current schema version.
//
// A database that predates the schema_migrations table and whose users table
// is missing required columns is handled the way early app versions did it:
// every known table is dropped and the schema is recreated. Any error
// propagates to the caller; the process cannot run without a working schema.
func Migrate(db *gorm.DB, log *slog.Logger) error {
	if db == nil {
		return ErrNotInitialized
	}
	if log == nil {
		log = slog.Default()
	}

	if err := handleLegacyDrift(db, log); err != nil {
		return err
	}

	if err := db.AutoMigrate(&model.Migration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, step := range migrations {
		applied, err := migrationApplied(db, step.Name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		log.Info("applying migration", slog.String("name", step.Name))
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := step.Run(tx); err != nil {
				return err
			}
			return tx.Create(&model.Migration{Name: step.Name}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", step.Name, err)
		}
	}

	return nil
}

func migrationApplied(db *gorm.DB, name string) (bool, error) {
	var m model.Migration
	err := db.Where("name = ?", name).First(&m).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func handleLegacyDrift(db *gorm.DB, log *slog.Logger) error {
	m := db.Migrator()
	if !m.HasTable(&model.User{}) || m.HasTable(&model.Migration{}) {
		return nil
	}

	drifted := false
	for _, col := range requiredUserColumns {
		if !m.HasColumn(&model.User{}, col) {
			drifted = true
			break
		}
	}
	if !drifted {
		return nil
	}

	log.Warn("users table is missing required columns, dropping all tables and recreating")
	if err := m.DropTable(allModels()...); err != nil {
		return fmt.Errorf("drop drifted schema: %w", err)
	}
	return nil
}
