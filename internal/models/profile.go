// models содержит доменные сущности profile-app.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

// Сентинелы идентификаторов профиля.
// По значению ID различаем, подтверждена ли запись сервером
// или синтезирована локально (offline-режим).
const (
	// ServerConfirmedID — профиль создан и подтверждён удалённым API.
	ServerConfirmedID = "api-id"
	// LocalTempID — профиль собран локально после неудачного createProfile.
	LocalTempID = "temp-id"
	// MockID — профиль полностью синтезирован из кэшированной identity.
	MockID = "mock-id"
)

// OfflineToken — зарезервированное значение токена: сессия существует,
// но за ней не стоит серверная сессия.
const OfflineToken = "mock-token"

// Profile — редактируемая запись о пользователе.
//
// Инварианты:
//   - если Birthday непуст, Zodiac и Horoscope всегда пересчитаны из него
//     (см. internal/zodiac); поля никогда не задаются независимо;
//   - Interests не содержит дубликатов (точное совпадение), порядок вставки
//     сохраняется.
type Profile struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	Name      string   `json:"name,omitempty"`
	Birthday  string   `json:"birthday,omitempty"` // ISO YYYY-MM-DD
	Zodiac    string   `json:"zodiac,omitempty"`
	Horoscope string   `json:"horoscope,omitempty"`
	Height    int      `json:"height,omitempty"`
	Weight    int      `json:"weight,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	Images    []string `json:"images,omitempty"`
	About     string   `json:"about,omitempty"`
}

// Clone возвращает глубокую копию профиля (слайсы копируются).
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}

	cp := *p
	if p.Interests != nil {
		cp.Interests = append([]string(nil), p.Interests...)
	}
	if p.Images != nil {
		cp.Images = append([]string(nil), p.Images...)
	}

	return &cp
}

// ProfileDraft — входные данные createProfile.
type ProfileDraft struct {
	Name      string   `json:"name"`
	Birthday  string   `json:"birthday"`
	Height    int      `json:"height"`
	Weight    int      `json:"weight"`
	Interests []string `json:"interests"`
}

// ProfileUpdate — частичное обновление профиля.
// Каждое поле независимо: nil — «не трогать», указатель — «записать значение»
// (в том числе пустое — это явное «очистить»).
type ProfileUpdate struct {
	Name      *string   `json:"name,omitempty"`
	Birthday  *string   `json:"birthday,omitempty"`
	Height    *int      `json:"height,omitempty"`
	Weight    *int      `json:"weight,omitempty"`
	Interests *[]string `json:"interests,omitempty"`
	Gender    *string   `json:"gender,omitempty"`
	About     *string   `json:"about,omitempty"`
}

// Apply накладывает частичное обновление на профиль (optimistic merge).
// Zodiac/Horoscope не трогает — их пересчитывает сервисный слой.
func (p *Profile) Apply(u ProfileUpdate) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Birthday != nil {
		p.Birthday = *u.Birthday
	}
	if u.Height != nil {
		p.Height = *u.Height
	}
	if u.Weight != nil {
		p.Weight = *u.Weight
	}
	if u.Interests != nil {
		p.Interests = DedupInterests(*u.Interests)
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.About != nil {
		p.About = *u.About
	}
}

// DedupInterests удаляет дубликаты (точное совпадение), сохраняя порядок
// первого вхождения. Пустые строки отбрасываются.
func DedupInterests(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))

	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
