package models

// DTO локального REST-слоя (браузерный UI <-> profile-app).

// LoginRequest — тело POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest — тело POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse — единый ответ операций сессии/профиля.
//
// Route — эффект-дескриптор навигации для фронта ("" — остаться на месте).
// APIReachable — advisory-флаг offline-режима: false означает, что данные
// локальные (mock или оптимистичный мердж), это не ошибка.
type SessionResponse struct {
	Profile      *Profile `json:"profile,omitempty"`
	Route        string   `json:"route,omitempty"`
	APIReachable bool     `json:"api_reachable"`
	State        string   `json:"state"`
}
