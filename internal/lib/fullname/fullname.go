// Package fullname собирает производное поле full_name из частей имени профиля.
//
// Сборка выполняется явным шагом перед записью в хранилище (в сервисах
// регистрации и обновления профиля), а не хуком на уровне драйвера БД,
// поэтому обойти ее из пишущего пути нельзя.
package fullname

import "strings"

// Build собирает полное имя из имени, отчества и фамилии,
// пропуская пустые части.
func Build(first, middle, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, middle, last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// BuildWithCurrent собирает полное имя при частичном обновлении профиля:
// nil означает, что часть имени не менялась и берется текущее значение.
func BuildWithCurrent(first, middle, last *string, curFirst, curMiddle, curLast string) string {
	pick := func(upd *string, cur string) string {
		if upd != nil {
			return *upd
		}
		return cur
	}
	return Build(pick(first, curFirst), pick(middle, curMiddle), pick(last, curLast))
}
