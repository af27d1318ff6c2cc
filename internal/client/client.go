// client — HTTP-клиент удалённого profile API (внешний коллаборатор ядра).
//
// Четыре логических вызова с фиксированными формами запроса/ответа:
// POST /login, POST /register, GET|PUT /profile, POST /createProfile.
// Авторизация — заголовок x-access-token. Каждая операция выполняется
// ровно один раз: ретраи и бэкоффы — не его забота, политика фолбэка
// живёт в сервисном слое.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	logctx "github.com/pribylovaa/go-profile-app/internal/pkg/log"
	"github.com/pribylovaa/go-profile-app/internal/pkg/redact"

	"github.com/pribylovaa/go-profile-app/internal/models"
)

// Заголовок авторизации удалённого API.
const authHeader = "x-access-token"

var (
	// ErrUnavailable — сетевая ошибка или неожиданный не-2xx ответ.
	ErrUnavailable = errors.New("upstream unavailable")
	// ErrUnauthorized — 401: токен невалиден/просрочен.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound — 404 на GET /profile: профиль ещё не создан.
	ErrNotFound = errors.New("profile not found")
	// ErrBadResponse — 2xx с телом, которое невозможно разобрать.
	// Единственная категория, которую ядро пробрасывает как жёсткую ошибку.
	ErrBadResponse = errors.New("malformed upstream response")
)

// API — контракт удалённого profile API, как его видит сервисный слой.
type API interface {
	// Login обменивает креды на access-токен.
	Login(ctx context.Context, username, email, password string) (string, error)
	// Register создаёт пользователя и возвращает access-токен.
	Register(ctx context.Context, email, username, password string) (string, error)
	// Profile возвращает профиль владельца токена.
	Profile(ctx context.Context, token string) (*models.Profile, error)
	// CreateProfile создаёт профиль. Тело ответа не используется.
	CreateProfile(ctx context.Context, token string, draft models.ProfileDraft) error
	// UpdateProfile обновляет изменяемые поля профиля.
	UpdateProfile(ctx context.Context, token string, payload UpdatePayload) error
}

// UpdatePayload — тело PUT /profile: изменяемые поля целиком,
// как их формирует сервисный слой после optimistic merge.
type UpdatePayload struct {
	Name      string   `json:"name"`
	Birthday  string   `json:"birthday"`
	Height    int      `json:"height"`
	Weight    int      `json:"weight"`
	Interests []string `json:"interests"`
	Gender    string   `json:"gender,omitempty"`
	About     string   `json:"about,omitempty"`
}

// Client — реализация API поверх net/http.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ API = (*Client)(nil)

// New создаёт клиент. httpClient == nil — используется клиент с таймаутом timeout.
func New(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// loginRequest/registerRequest — формы тел, зафиксированные внешним сервисом.
type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type profileResponse struct {
	Data *models.Profile `json:"data"`
}

// Login обменивает креды на access-токен.
func (c *Client) Login(ctx context.Context, username, email, password string) (string, error) {
	const op = "client/Login"

	lg := logctx.From(ctx).With("op", op, "username", username, "email", redact.Email(email))

	body, err := c.postJSON(ctx, "/login", loginRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		lg.Warn("login call failed", "err", err)

		return "", fmt.Errorf("%s: %w", op, err)
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.AccessToken == "" {
		lg.Error("login response malformed")

		return "", fmt.Errorf("%s: %w", op, ErrBadResponse)
	}

	lg.Info("login ok", "token", redact.Token())

	return resp.AccessToken, nil
}

// Register создаёт пользователя и возвращает access-токен.
func (c *Client) Register(ctx context.Context, email, username, password string) (string, error) {
	const op = "client/Register"

	lg := logctx.From(ctx).With("op", op, "username", username, "email", redact.Email(email))

	body, err := c.postJSON(ctx, "/register", registerRequest{
		Email:    email,
		Username: username,
		Password: password,
	})
	if err != nil {
		lg.Warn("register call failed", "err", err)

		return "", fmt.Errorf("%s: %w", op, err)
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.AccessToken == "" {
		lg.Error("register response malformed")

		return "", fmt.Errorf("%s: %w", op, ErrBadResponse)
	}

	lg.Info("register ok", "token", redact.Token())

	return resp.AccessToken, nil
}

// Profile возвращает профиль владельца токена.
// 401 -> ErrUnauthorized, 404 -> ErrNotFound, прочие сбои -> ErrUnavailable.
func (c *Client) Profile(ctx context.Context, token string) (*models.Profile, error) {
	const op = "client/Profile"

	lg := logctx.From(ctx).With("op", op)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/profile", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", op, err)
	}
	req.Header.Set(authHeader, token)

	resp, err := c.http.Do(req)
	if err != nil {
		lg.Warn("profile fetch failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, errors.Join(ErrUnavailable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		lg.Warn("token rejected by upstream")

		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		lg.Warn("unexpected status", "status", resp.StatusCode)

		return nil, fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, ErrUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", op, errors.Join(ErrUnavailable, err))
	}

	var pr profileResponse
	if err := json.Unmarshal(body, &pr); err != nil || pr.Data == nil {
		lg.Error("profile response malformed")

		return nil, fmt.Errorf("%s: %w", op, ErrBadResponse)
	}

	return pr.Data, nil
}

// CreateProfile создаёт профиль. Интересует только успех/неуспех.
func (c *Client) CreateProfile(ctx context.Context, token string, draft models.ProfileDraft) error {
	const op = "client/CreateProfile"

	if draft.Interests == nil {
		draft.Interests = []string{}
	}

	if err := c.send(ctx, http.MethodPost, "/createProfile", token, draft); err != nil {
		logctx.From(ctx).Warn("create profile failed", "op", op, "err", err)

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateProfile обновляет изменяемые поля профиля.
func (c *Client) UpdateProfile(ctx context.Context, token string, payload UpdatePayload) error {
	const op = "client/UpdateProfile"

	if payload.Interests == nil {
		payload.Interests = []string{}
	}

	if err := c.send(ctx, http.MethodPut, "/profile", token, payload); err != nil {
		logctx.From(ctx).Warn("update profile failed", "op", op, "err", err)

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// postJSON — POST без авторизации (login/register): возвращает тело 2xx-ответа.
// Ошибка апстрима с JSON-телом {message} включается в текст ошибки.
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && er.Message != "" {
			return nil, fmt.Errorf("status %d (%s): %w", resp.StatusCode, er.Message, ErrUnavailable)
		}

		return nil, fmt.Errorf("status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	return body, nil
}

// send — авторизованный запрос с JSON-телом; тело ответа игнорируется.
func (c *Client) send(ctx context.Context, method, path, token string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authHeader, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Тело вычитываем, чтобы переиспользовать соединение.
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	return nil
}
