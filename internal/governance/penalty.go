package governance

import (
	"time"

	"projectmate-service/internal/domain"
)

// RecordNoShow возвращает копию пользователя с зафиксированной неявкой.
// Счетчик увеличивается на единицу; когда новое значение кратно порогу из
// правил, штрафное окно устанавливается (или продлевается) до now плюс
// длительность штрафа. Дедупликация события — ответственность вызывающего.
func RecordNoShow(u domain.User, rules Rules, now time.Time) domain.User {
	u.NoShowCount++
	if u.NoShowCount%rules.NoShowThreshold == 0 {
		until := now.Add(rules.PenaltyDuration)
		u.PenaltyUntil = &until
	}
	return u
}

// IsPenalized сообщает, действует ли для пользователя штраф в момент now.
// Штраф истекает сам: явного перехода для снятия не существует.
func IsPenalized(u domain.User, now time.Time) bool {
	return u.PenaltyUntil != nil && now.Before(*u.PenaltyUntil)
}
