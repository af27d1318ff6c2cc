// redact — маскирование чувствительных значений перед логированием.
// Токены и пароли в логи не попадают никогда, e-mail — только в маске.
package redact

import "strings"

// Email маскирует локальную часть адреса: первые две руны + "***".
// Короткая локальная часть (<=2 рун) и невалидный формат дают "***".
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := []rune(parts[0]), parts[1]
	masked := "***"
	if len(local) > 2 {
		masked = string(local[:2]) + "***"
	}

	return masked + "@" + domain
}

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }
