// storage содержит контракт локального kv-хранилища сессии.
//
// Хранятся только плоские значения token/username/email — ровно то,
// что нужно для восстановления сессии после рестарта процесса и для
// синтеза offline-профиля. Сам Profile на диск не попадает.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound — значение по ключу отсутствует.
var ErrNotFound = errors.New("not found")

// Ключи хранилища.
const (
	KeyToken    = "token"
	KeyUsername = "username"
	KeyEmail    = "email"
)

// Sessions — контракт хранилища сессии.
type Sessions interface {
	// Token возвращает сохранённый access-токен (ErrNotFound, если нет).
	Token(ctx context.Context) (string, error)
	// Identity возвращает кэшированную пару username/email
	// (ErrNotFound, если отсутствует любая из частей).
	Identity(ctx context.Context) (username, email string, err error)
	// SaveToken сохраняет токен, перезаписывая существующий.
	SaveToken(ctx context.Context, token string) error
	// SaveIdentity сохраняет username/email для offline-фолбэка.
	SaveIdentity(ctx context.Context, username, email string) error
	// DeleteToken удаляет токен, не трогая identity. Отсутствие ключа — не ошибка.
	DeleteToken(ctx context.Context) error
	// Clear удаляет token, username и email.
	Clear(ctx context.Context) error
}

// SessionsStorage — верхнеуровневый интерфейс хранилища.
type SessionsStorage interface {
	Sessions
	Close() error
}
