package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pribylovaa/go-profile-app/internal/models"
	"github.com/pribylovaa/go-profile-app/internal/service"
)

// Handlers агрегирует зависимости (сервисный слой).
type Handlers struct {
	Service *service.Service
}

func New(s *service.Service) *Handlers {
	return &Handlers{Service: s}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — вспомогалка: локальная ошибка парсинга -> 400.
func errInvalidArgument() error {
	return fmt.Errorf("decode: %w", service.ErrInvalidArgument)
}

// sessionResponse собирает единый ответ из результата операции и
// текущего состояния сервиса.
func (h *Handlers) sessionResponse(profile *models.Profile, route service.Route) models.SessionResponse {
	return models.SessionResponse{
		Profile:      profile,
		Route:        string(route),
		APIReachable: h.Service.APIReachable(),
		State:        h.Service.State().String(),
	}
}
