package service

import (
	"github.com/pribylovaa/go-profile-app/internal/models"
	"github.com/pribylovaa/go-profile-app/internal/zodiac"
)

// Фиксированный шаблон offline-профиля.
const (
	mockName     = "Mock User"
	mockBirthday = "2000-01-01"
	mockHeight   = 175
	mockWeight   = 70
	mockGender   = "male"
	mockAbout    = "This is a mock profile since the API is currently unavailable."
)

// mockProfile синтезирует детерминированный профиль из кэшированной identity.
// Для одинаковой пары (username, email) результат всегда структурно одинаков;
// zodiac/horoscope выводятся из шаблонной даты рождения, не хранятся в шаблоне.
func mockProfile(username, email string) *models.Profile {
	if username == "" {
		username = "user"
	}
	if email == "" {
		email = "user@example.com"
	}

	return &models.Profile{
		ID:        models.MockID,
		Email:     email,
		Username:  username,
		Name:      mockName,
		Birthday:  mockBirthday,
		Zodiac:    zodiac.Sign(mockBirthday),
		Horoscope: zodiac.Horoscope(mockBirthday),
		Height:    mockHeight,
		Weight:    mockWeight,
		Interests: []string{"Reading", "Sports", "Music"},
		Gender:    mockGender,
		About:     mockAbout,
	}
}
