package models

// State — фаза жизненного цикла сессии.
type State int8

const (
	// StateAnonymous — токена нет, пользователь не вошёл.
	StateAnonymous State = iota
	// StateAuthenticating — login/register/fetch в полёте.
	StateAuthenticating
	// StateAuthenticated — токен есть, последний удалённый вызов успешен.
	StateAuthenticated
	// StateDegraded — токен есть (возможно OfflineToken), удалённые вызовы
	// падают; профиль синтезирован локально.
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateDegraded:
		return "degraded"
	default:
		return "anonymous"
	}
}

// Session — состояние единственной пользовательской сессии процесса.
// Владеет текущим профилем; никакой другой компонент его не мутирует.
// В persistence уходят только плоские копии token/username/email —
// сам Profile за пределами процесса не хранится.
type Session struct {
	Token        string
	Username     string
	Email        string
	Profile      *Profile
	APIReachable bool
	State        State
}
