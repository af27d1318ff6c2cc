package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	logctx "github.com/pribylovaa/go-profile-app/internal/pkg/log"
	"github.com/pribylovaa/go-profile-app/internal/pkg/redact"

	"github.com/pribylovaa/go-profile-app/internal/models"
	"github.com/pribylovaa/go-profile-app/internal/storage"
)

// Login выполняет вход по username/email/password.
//
// Порядок:
//  1. identity сохраняется в persistence ДО удалённого вызова — фолбэк
//     должен работать, даже если вызов упадёт на полпути;
//  2. удалённый login; при успехе токен сохраняется и выполняется
//     попытка получить профиль;
//  3. при любом отказе апстрима сессия становится Degraded: сохраняется
//     OfflineToken и синтезируется mock-профиль.
//
// Ошибку возвращает только отказ persistence (ErrInternal); отказ
// апстрима всегда абсорбируется в фолбэк.
func (s *Service) Login(ctx context.Context, username, email, password string) (*models.Profile, Route, error) {
	const op = "service/session/Login"

	s.mu.Lock()
	defer s.mu.Unlock()

	lg := logctx.From(ctx).With("op", op, "username", username, "email", redact.Email(email))

	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" {
		lg.Warn("invalid argument: empty identity")

		return nil, RouteNone, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	s.session.State = models.StateAuthenticating
	s.session.Username = username
	s.session.Email = email

	if err := s.sessions.SaveIdentity(ctx, username, email); err != nil {
		lg.Error("storage error on SaveIdentity", "err", err)
		s.session.State = models.StateAnonymous

		return nil, RouteNone, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	token, err := s.api.Login(ctx, username, email, password)
	if err != nil {
		lg.Warn("upstream login failed, entering offline mode", "err", err)

		return s.enterOfflineLocked(ctx, op, lg)
	}

	if err := s.sessions.SaveToken(ctx, token); err != nil {
		lg.Error("storage error on SaveToken", "err", err)
		s.session.State = models.StateAnonymous

		return nil, RouteNone, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	s.session.Token = token

	// Профиль после входа: есть — на профиль, нет — на создание,
	// отказ апстрима — offline-фолбэк (identity уже сохранена).
	profile, route, err := s.fetchProfileLocked(ctx)
	if err != nil {
		lg.Warn("profile fetch after login failed, entering offline mode", "err", err)

		return s.enterOfflineLocked(ctx, op, lg)
	}

	return profile, route, nil
}

// Register регистрирует нового пользователя.
//
// Та же persistence-first схема, что и Login. При успехе профиль не
// запрашивается: пользователь направляется в login-флоу. При отказе
// апстрима — Degraded-сессия, идентичная по форме фолбэку Login.
func (s *Service) Register(ctx context.Context, email, username, password string) (Route, error) {
	const op = "service/session/Register"

	s.mu.Lock()
	defer s.mu.Unlock()

	lg := logctx.From(ctx).With("op", op, "username", username, "email", redact.Email(email))

	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" {
		lg.Warn("invalid argument: empty identity")

		return RouteNone, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	s.session.State = models.StateAuthenticating
	s.session.Username = username
	s.session.Email = email

	if err := s.sessions.SaveIdentity(ctx, username, email); err != nil {
		lg.Error("storage error on SaveIdentity", "err", err)
		s.session.State = models.StateAnonymous

		return RouteNone, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	token, err := s.api.Register(ctx, email, username, password)
	if err != nil {
		lg.Warn("upstream register failed, entering offline mode", "err", err)

		_, route, oerr := s.enterOfflineLocked(ctx, op, lg)

		return route, oerr
	}

	if err := s.sessions.SaveToken(ctx, token); err != nil {
		lg.Error("storage error on SaveToken", "err", err)
		s.session.State = models.StateAnonymous

		return RouteNone, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	s.session.Token = token
	s.markReachableLocked()

	lg.Info("register ok")

	return RouteLogin, nil
}

// Logout завершает сессию: стирает token/identity из persistence,
// сбрасывает профиль и возвращает сессию в Anonymous. Удалённых
// эффектов не имеет.
func (s *Service) Logout(ctx context.Context) (Route, error) {
	const op = "service/session/Logout"

	s.mu.Lock()
	defer s.mu.Unlock()

	lg := logctx.From(ctx).With("op", op)

	if err := s.sessions.Clear(ctx); err != nil {
		lg.Error("storage error on Clear", "err", err)

		return RouteNone, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	s.session = models.Session{
		APIReachable: true,
		State:        models.StateAnonymous,
	}

	lg.Info("logout ok")

	return RouteLogin, nil
}

// Restore восстанавливает сессию при старте процесса из persistence.
// Нет токена — Anonymous без ошибки. Токен есть — обычный getProfile-флоу
// (включая offline-фолбэк по кэшированной identity).
func (s *Service) Restore(ctx context.Context) (*models.Profile, Route, error) {
	const op = "service/session/Restore"

	s.mu.Lock()
	defer s.mu.Unlock()

	lg := logctx.From(ctx).With("op", op)

	token, err := s.sessions.Token(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.session.State = models.StateAnonymous

			return nil, RouteLogin, nil
		}

		lg.Error("storage error on Token", "err", err)

		return nil, RouteNone, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	s.session.Token = token

	if username, email, err := s.sessions.Identity(ctx); err == nil {
		s.session.Username = username
		s.session.Email = email
	}

	s.session.State = models.StateAuthenticating

	profile, route, err := s.fetchProfileLocked(ctx)
	if err != nil {
		return nil, RouteNone, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("session restored", "state", s.session.State.String())

	return profile, route, nil
}

// enterOfflineLocked — общий Degraded-фолбэк login/register:
// OfflineToken в persistence, mock-профиль в сессии. Вызывать под mu.
// Ошибка возможна только от persistence.
func (s *Service) enterOfflineLocked(ctx context.Context, op string, lg *slog.Logger) (*models.Profile, Route, error) {
	if err := s.sessions.SaveToken(ctx, models.OfflineToken); err != nil {
		lg.Error("storage error on SaveToken", "err", err)
		s.session.State = models.StateAnonymous

		return nil, RouteNone, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	s.session.Token = models.OfflineToken
	s.session.Profile = mockProfile(s.session.Username, s.session.Email)
	s.degradeLocked()

	return s.session.Profile.Clone(), RouteProfile, nil
}
