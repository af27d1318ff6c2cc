// zodiac — чистые функции вывода знака зодиака и гороскопа из даты рождения.
// Никакого состояния и побочных эффектов: дата -> метка -> описание.
package zodiac

import "time"

// Двенадцать меток знаков. Диапазоны инклюзивные, каждый пересекает
// границу месяцев; см. таблицу в signRanges.
const (
	Aries       = "Aries"
	Taurus      = "Taurus"
	Gemini      = "Gemini"
	Cancer      = "Cancer"
	Leo         = "Leo"
	Virgo       = "Virgo"
	Libra       = "Libra"
	Scorpio     = "Scorpio"
	Sagittarius = "Sagittarius"
	Capricorn   = "Capricorn"
	Aquarius    = "Aquarius"
	Pisces      = "Pisces"
)

// signRange — один инклюзивный диапазон «месяц.день — месяц.день».
type signRange struct {
	fromMonth, fromDay int
	toMonth, toDay     int
	sign               string
}

// Диапазоны взаимно не пересекаются; порядок значения не имеет,
// но граничные дни обязаны совпадать с таблицей один в один.
var signRanges = []signRange{
	{3, 21, 4, 19, Aries},
	{4, 20, 5, 20, Taurus},
	{5, 21, 6, 20, Gemini},
	{6, 21, 7, 22, Cancer},
	{7, 23, 8, 22, Leo},
	{8, 23, 9, 22, Virgo},
	{9, 23, 10, 22, Libra},
	{10, 23, 11, 21, Scorpio},
	{11, 22, 12, 21, Sagittarius},
	{12, 22, 1, 19, Capricorn},
	{1, 20, 2, 18, Aquarius},
	{2, 19, 3, 20, Pisces},
}

// descriptions — фиксированная таблица «знак -> описание в одно предложение».
var descriptions = map[string]string{
	Aries:       "Passionate, motivated, and confident leader",
	Taurus:      "Practical and well-grounded, the steady persistence",
	Gemini:      "Expressive and quick-witted, representing two different personalities",
	Cancer:      "Tenacious, highly imaginative, loyal, emotional, sympathetic",
	Leo:         "Creative and passionate, generous and warm-hearted",
	Virgo:       "Analytical, kind, hardworking, and practical",
	Libra:       "Cooperative, diplomatic, gracious, fair-minded",
	Scorpio:     "Passionate, stubborn, resourceful, brave",
	Sagittarius: "Generous, idealistic, great sense of humor",
	Capricorn:   "Responsible, disciplined, self-control, good managers",
	Aquarius:    "Progressive, original, independent, humanitarian",
	Pisces:      "Compassionate, artistic, intuitive, gentle",
}

// Sign классифицирует дату рождения (ISO YYYY-MM-DD) в одну из 12 меток.
// Пустая или нераспознаваемая дата -> пустая метка, без ошибки.
// Таймзоны не нормализуются: из входа берутся только календарные месяц/день.
func Sign(birthday string) string {
	if birthday == "" {
		return ""
	}

	t, err := time.Parse("2006-01-02", birthday)
	if err != nil {
		return ""
	}

	month, day := int(t.Month()), t.Day()

	for _, r := range signRanges {
		if (month == r.fromMonth && day >= r.fromDay) || (month == r.toMonth && day <= r.toDay) {
			return r.sign
		}
	}

	return ""
}

// Horoscope возвращает описание знака для даты рождения.
// Пустая метка (пустая/битая дата) -> пустая строка.
func Horoscope(birthday string) string {
	return descriptions[Sign(birthday)]
}
