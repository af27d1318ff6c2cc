// service содержит бизнес-логику profile-app:
// - жизненный цикл сессии (login/register/logout/восстановление);
// - операции над профилем (чтение/создание/частичный апдейт);
// - политика фолбэка: любой отказ удалённого API подменяется
//   детерминированными локальными данными, чтобы UI всегда имел
//   целостное отображаемое состояние.
//
// Навигация — эффект-дескриптор: операции возвращают Route,
// сами переходов не выполняют.
package service

import (
	"errors"
	"sync"

	"github.com/pribylovaa/go-profile-app/internal/client"
	"github.com/pribylovaa/go-profile-app/internal/models"
	"github.com/pribylovaa/go-profile-app/internal/storage"
)

var (
	// ErrInvalidArgument — некорректные входные данные.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInternal — внутренняя ошибка (персистентность недоступна или
	// апстрим вернул неинтерпретируемый ответ). Единственная категория,
	// которая доходит до вызывающего как жёсткая ошибка.
	ErrInternal = errors.New("internal")
)

// Route — эффект-дескриптор навигации для презентационного слоя.
type Route string

const (
	// RouteNone — оставаться на текущем экране.
	RouteNone Route = ""
	// RouteLogin — требуется (пере)аутентификация.
	RouteLogin Route = "/login"
	// RouteProfile — показать профиль.
	RouteProfile Route = "/profile"
	// RouteCreateProfile — профиля ещё нет, предложить создание.
	RouteCreateProfile Route = "/create-profile"
)

// Service — оркестратор сессии и профиля (SessionProfileManager).
//
// Владеет единственной сессией процесса. Мутирующие операции
// сериализуются мьютексом: при конкурентных вызовах побеждает
// последняя запись.
type Service struct {
	api      client.API
	sessions storage.Sessions

	mu      sync.Mutex
	session models.Session
}

// New создаёт новый экземпляр Service в состоянии Anonymous.
func New(api client.API, sessions storage.Sessions) *Service {
	return &Service{
		api:      api,
		sessions: sessions,
		session: models.Session{
			APIReachable: true,
			State:        models.StateAnonymous,
		},
	}
}

// Session возвращает снимок сессии (профиль — глубокая копия).
func (s *Service) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.session
	snap.Profile = s.session.Profile.Clone()

	return snap
}

// CurrentProfile возвращает копию текущего профиля (nil, если его нет).
func (s *Service) CurrentProfile() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.Profile.Clone()
}

// APIReachable — advisory-флаг для UI: false означает offline-режим,
// это не ошибка.
func (s *Service) APIReachable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.APIReachable
}

// State возвращает текущую фазу сессии.
func (s *Service) State() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.State
}

// degradeLocked переводит сессию в offline-режим. Вызывать под mu.
func (s *Service) degradeLocked() {
	s.session.APIReachable = false
	s.session.State = models.StateDegraded
}

// markReachableLocked фиксирует успешный контакт с апстримом. Вызывать под mu.
func (s *Service) markReachableLocked() {
	s.session.APIReachable = true
	s.session.State = models.StateAuthenticated
}
