package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	logctx "github.com/pribylovaa/go-profile-app/internal/pkg/log"

	"github.com/pribylovaa/go-profile-app/internal/client"
	"github.com/pribylovaa/go-profile-app/internal/models"
	"github.com/pribylovaa/go-profile-app/internal/storage"
	"github.com/pribylovaa/go-profile-app/internal/zodiac"
)

// GetProfile возвращает профиль текущей сессии.
//
// Поведение:
//   - нет токена (ни в памяти, ни в persistence) — сигнал «нет сессии»:
//     (nil, RouteLogin, nil), без ошибки;
//   - успех апстрима — профиль заменяется целиком, сессия Authenticated;
//   - 404 — профиля ещё нет: (nil, RouteCreateProfile, nil);
//   - 401 — токен стирается, сигнал переаутентификации;
//   - отказ апстрима — mock-профиль из кэшированной identity (Degraded)
//     либо «нет профиля», если identity недоступна.
func (s *Service) GetProfile(ctx context.Context) (*models.Profile, Route, error) {
	const op = "service/profile/GetProfile"

	s.mu.Lock()
	defer s.mu.Unlock()

	lg := logctx.From(ctx).With("op", op)

	route, err := s.ensureTokenLocked(ctx, op, lg)
	if err != nil {
		return nil, RouteNone, err
	}
	if route != RouteNone {
		return nil, route, nil
	}

	profile, route, err := s.fetchProfileLocked(ctx)
	if err != nil {
		return nil, RouteNone, fmt.Errorf("%s: %w", op, err)
	}

	return profile, route, nil
}

// CreateProfile создаёт профиль из draft.
//
// Zodiac/horoscope пересчитываются из draft.Birthday ДО сетевого вызова.
// Независимо от исхода вызова сессия получает собранный локально профиль
// (ID: ServerConfirmedID при успехе, LocalTempID при отказе), чтобы UI
// всегда имел что показать. При успехе дополнительно выполняется
// best-effort refresh; его отказ не откатывает локальный профиль.
func (s *Service) CreateProfile(ctx context.Context, draft models.ProfileDraft) (*models.Profile, Route, error) {
	const op = "service/profile/CreateProfile"

	s.mu.Lock()
	defer s.mu.Unlock()

	lg := logctx.From(ctx).With("op", op)

	route, err := s.ensureTokenLocked(ctx, op, lg)
	if err != nil {
		return nil, RouteNone, err
	}
	if route != RouteNone {
		return nil, route, nil
	}

	draft.Interests = models.DedupInterests(draft.Interests)

	aerr := s.api.CreateProfile(ctx, s.session.Token, draft)
	if errors.Is(aerr, client.ErrUnauthorized) {
		return s.dropSessionLocked(ctx, op, lg)
	}

	apiOK := aerr == nil

	profile := &models.Profile{
		ID:        models.LocalTempID,
		Email:     s.session.Email,
		Username:  s.session.Username,
		Name:      draft.Name,
		Birthday:  draft.Birthday,
		Zodiac:    zodiac.Sign(draft.Birthday),
		Horoscope: zodiac.Horoscope(draft.Birthday),
		Height:    draft.Height,
		Weight:    draft.Weight,
		Interests: draft.Interests,
	}
	if apiOK {
		profile.ID = models.ServerConfirmedID
	}

	s.session.Profile = profile

	if !apiOK {
		lg.Warn("upstream create failed, keeping local profile", "err", aerr)
		s.degradeLocked()

		return s.session.Profile.Clone(), RouteProfile, nil
	}

	s.markReachableLocked()

	// Best-effort refresh: отказ не откатывает локально собранный профиль.
	if fresh, ferr := s.api.Profile(ctx, s.session.Token); ferr == nil {
		normalizeProfile(fresh)
		s.session.Profile = fresh
	} else {
		lg.Warn("refresh after create failed, keeping local profile", "err", ferr)
		s.degradeLocked()
	}

	return s.session.Profile.Clone(), RouteProfile, nil
}

// UpdateProfile выполняет частичное обновление текущего профиля.
//
// Мердж оптимистичный: частичное обновление применяется к профилю в
// памяти независимо от исхода удалённого вызова. Zodiac/horoscope
// пересчитываются, если birthday входит в обновление. При успехе —
// best-effort refresh; его отказ не откатывает мердж.
func (s *Service) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Profile, Route, error) {
	const op = "service/profile/UpdateProfile"

	s.mu.Lock()
	defer s.mu.Unlock()

	lg := logctx.From(ctx).With("op", op)

	route, err := s.ensureTokenLocked(ctx, op, lg)
	if err != nil {
		return nil, RouteNone, err
	}
	if route != RouteNone {
		return nil, route, nil
	}

	if s.session.Profile == nil {
		lg.Warn("invalid argument: no current profile to update")

		return nil, RouteNone, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	s.session.Profile.Apply(upd)
	if upd.Birthday != nil {
		s.session.Profile.Zodiac = zodiac.Sign(s.session.Profile.Birthday)
		s.session.Profile.Horoscope = zodiac.Horoscope(s.session.Profile.Birthday)
	}

	p := s.session.Profile
	payload := client.UpdatePayload{
		Name:      p.Name,
		Birthday:  p.Birthday,
		Height:    p.Height,
		Weight:    p.Weight,
		Interests: p.Interests,
		Gender:    p.Gender,
		About:     p.About,
	}

	aerr := s.api.UpdateProfile(ctx, s.session.Token, payload)
	if errors.Is(aerr, client.ErrUnauthorized) {
		return s.dropSessionLocked(ctx, op, lg)
	}

	if aerr != nil {
		lg.Warn("upstream update failed, keeping merged profile", "err", aerr)
		s.degradeLocked()

		return s.session.Profile.Clone(), RouteNone, nil
	}

	s.markReachableLocked()

	if fresh, ferr := s.api.Profile(ctx, s.session.Token); ferr == nil {
		normalizeProfile(fresh)
		s.session.Profile = fresh
	} else {
		lg.Warn("refresh after update failed, keeping merged profile", "err", ferr)
		s.degradeLocked()
	}

	return s.session.Profile.Clone(), RouteNone, nil
}

// fetchProfileLocked — общий getProfile-флоу. Вызывать под mu с непустым
// session.Token. Ошибка возвращается только для persistence-сбоев и
// неинтерпретируемых ответов апстрима (категория «жёстких» ошибок).
func (s *Service) fetchProfileLocked(ctx context.Context) (*models.Profile, Route, error) {
	lg := logctx.From(ctx).With("op", "service/profile/fetch")

	profile, err := s.api.Profile(ctx, s.session.Token)

	switch {
	case err == nil:
		normalizeProfile(profile)
		s.session.Profile = profile
		s.markReachableLocked()

		return profile.Clone(), RouteProfile, nil

	case errors.Is(err, client.ErrNotFound):
		// Профиля ещё нет — это не отказ апстрима.
		s.session.Profile = nil
		s.markReachableLocked()

		return nil, RouteCreateProfile, nil

	case errors.Is(err, client.ErrUnauthorized):
		return s.dropSessionLocked(ctx, "service/profile/fetch", lg)

	case errors.Is(err, client.ErrBadResponse):
		lg.Error("upstream response uninterpretable", "err", err)

		return nil, RouteNone, ErrInternal

	default:
		// Апстрим недоступен: синтезируем профиль из кэшированной identity.
		username, email := s.session.Username, s.session.Email
		if username == "" || email == "" {
			if u, e, ierr := s.sessions.Identity(ctx); ierr == nil {
				username, email = u, e
				s.session.Username = username
				s.session.Email = email
			}
		}

		s.degradeLocked()

		if username == "" || email == "" {
			lg.Warn("upstream unreachable and no cached identity", "err", err)

			return nil, RouteNone, nil
		}

		lg.Warn("upstream unreachable, serving mock profile", "err", err)
		s.session.Profile = mockProfile(username, email)

		return s.session.Profile.Clone(), RouteProfile, nil
	}
}

// ensureTokenLocked подгружает токен из persistence, если его нет в памяти.
// Возвращает RouteLogin при отсутствии сессии. Вызывать под mu.
func (s *Service) ensureTokenLocked(ctx context.Context, op string, lg *slog.Logger) (Route, error) {
	if s.session.Token != "" {
		return RouteNone, nil
	}

	token, err := s.sessions.Token(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return RouteLogin, nil
		}

		lg.Error("storage error on Token", "err", err)

		return RouteNone, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	s.session.Token = token

	return RouteNone, nil
}

// dropSessionLocked — реакция на 401: токен стирается, сессия в Anonymous,
// вызывающему — сигнал переаутентификации. Вызывать под mu.
func (s *Service) dropSessionLocked(ctx context.Context, op string, lg *slog.Logger) (*models.Profile, Route, error) {
	if err := s.sessions.DeleteToken(ctx); err != nil {
		lg.Error("storage error on DeleteToken", "err", err)

		return nil, RouteNone, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Warn("token rejected, session dropped")

	s.session.Token = ""
	s.session.Profile = nil
	s.session.APIReachable = true
	s.session.State = models.StateAnonymous

	return nil, RouteLogin, nil
}

// normalizeProfile приводит серверный профиль к инвариантам модели:
// interests без дубликатов, zodiac/horoscope всегда выведены из birthday.
func normalizeProfile(p *models.Profile) {
	p.Interests = models.DedupInterests(p.Interests)
	p.Zodiac = zodiac.Sign(p.Birthday)
	p.Horoscope = zodiac.Horoscope(p.Birthday)
}
