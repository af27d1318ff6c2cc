// sqlite — реализация storage.Sessions поверх единственного файла SQLite
// (чистый Go-драйвер modernc.org/sqlite, без cgo).
//
// Схема — одна kv-таблица: ключи token/username/email, значения-строки.
// Записи сериализуются мьютексом: драйвер не поддерживает конкурентные
// записи в один файл.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/pribylovaa/go-profile-app/internal/storage"
)

type Store struct {
	db        *sql.DB
	writeLock sync.Mutex
}

var _ storage.SessionsStorage = (*Store)(nil)

// New открывает (или создаёт) файл БД и инициализирует схему.
func New(path string) (*Store, error) {
	const op = "storage/sqlite/New"

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%s: create dir: %w", op, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: open db: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: ping db: %w", op, err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session_kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		return nil, fmt.Errorf("%s: create schema: %w", op, err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("%s: set busy timeout: %w", op, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string

	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM session_kv WHERE key = ?", key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}

		return "", fmt.Errorf("query %s: %w", key, err)
	}

	return value, nil
}

func (s *Store) set(ctx context.Context, key, value string) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO session_kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}

	return nil
}

func (s *Store) delete(ctx context.Context, keys ...string) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	for _, key := range keys {
		if _, err := s.db.ExecContext(ctx,
			"DELETE FROM session_kv WHERE key = ?", key,
		); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}

	return nil
}

// Token возвращает сохранённый access-токен.
func (s *Store) Token(ctx context.Context) (string, error) {
	const op = "storage/sqlite/Token"

	token, err := s.get(ctx, storage.KeyToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", storage.ErrNotFound
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

// Identity возвращает кэшированную пару username/email.
func (s *Store) Identity(ctx context.Context) (string, string, error) {
	const op = "storage/sqlite/Identity"

	username, err := s.get(ctx, storage.KeyUsername)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", "", storage.ErrNotFound
		}

		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	email, err := s.get(ctx, storage.KeyEmail)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", "", storage.ErrNotFound
		}

		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	return username, email, nil
}

// SaveToken сохраняет токен, перезаписывая существующий.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	const op = "storage/sqlite/SaveToken"

	if err := s.set(ctx, storage.KeyToken, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SaveIdentity сохраняет username/email для offline-фолбэка.
func (s *Store) SaveIdentity(ctx context.Context, username, email string) error {
	const op = "storage/sqlite/SaveIdentity"

	if err := s.set(ctx, storage.KeyUsername, username); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.set(ctx, storage.KeyEmail, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteToken удаляет токен, не трогая identity.
func (s *Store) DeleteToken(ctx context.Context) error {
	const op = "storage/sqlite/DeleteToken"

	if err := s.delete(ctx, storage.KeyToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Clear удаляет token, username и email.
func (s *Store) Clear(ctx context.Context) error {
	const op = "storage/sqlite/Clear"

	if err := s.delete(ctx, storage.KeyToken, storage.KeyUsername, storage.KeyEmail); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает соединение с БД.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}

	return nil
}
