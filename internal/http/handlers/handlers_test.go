package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-profile-app/internal/client"
	apphttp "github.com/pribylovaa/go-profile-app/internal/http"
	"github.com/pribylovaa/go-profile-app/internal/models"
	"github.com/pribylovaa/go-profile-app/internal/service"
	"github.com/pribylovaa/go-profile-app/internal/storage"
	"github.com/pribylovaa/go-profile-app/mocks"
)

// Роутер + реальный сервис поверх моков: проверяем форму ответа
// {profile, route, api_reachable, state} и маппинг ошибок в статусы.

func newServer(t *testing.T) (http.Handler, *mocks.MockAPI, *mocks.MockSessions) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	api := mocks.NewMockAPI(ctrl)
	sessions := mocks.NewMockSessions(ctrl)
	svc := service.New(api, sessions)

	return apphttp.NewRouter(svc, apphttp.Options{}), api, sessions
}

func TestLogin_OfflineFallbackEnvelope(t *testing.T) {
	h, api, sessions := newServer(t)

	sessions.EXPECT().SaveIdentity(gomock.Any(), "alice", "a@x.com").Return(nil)
	api.EXPECT().Login(gomock.Any(), "alice", "a@x.com", "pw").Return("", client.ErrUnavailable)
	sessions.EXPECT().SaveToken(gomock.Any(), models.OfflineToken).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"alice","email":"a@x.com","password":"pw"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, `"id":"mock-id"`)
	require.Contains(t, body, `"route":"/profile"`)
	require.Contains(t, body, `"api_reachable":false`)
	require.Contains(t, body, `"state":"degraded"`)
}

func TestLogin_BadBody_400(t *testing.T) {
	h, _, _ := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"unknown":1}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"invalid_argument"`)
}

func TestGetProfile_NoSession_RouteLogin(t *testing.T) {
	h, _, sessions := newServer(t)

	sessions.EXPECT().Token(gomock.Any()).Return("", storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"route":"/login"`)
	require.NotContains(t, rec.Body.String(), `"profile"`)
}

func TestLogout_StorageFailure_500(t *testing.T) {
	h, _, sessions := newServer(t)

	sessions.EXPECT().Clear(gomock.Any()).Return(storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"internal"`)
}
