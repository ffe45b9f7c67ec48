package governance

import (
	"time"

	"projectmate-service/internal/domain"
)

// TryConsume пытается потребить одно использование функции. При count < limit
// возвращает allowed=true и счетчик с инкрементом; иначе allowed=false и
// счетчик без изменений — отклоненная попытка никогда не увеличивает счет.
// limit <= 0 трактуется как отсутствие лимита: потребление разрешено всегда,
// счет продолжает вестись для статистики.
func TryConsume(c domain.UsageCounter, limit int, now time.Time) (bool, domain.UsageCounter) {
	if limit > 0 && c.Count >= limit {
		return false, c
	}
	c.Count++
	c.LastUsedAt = now
	return true, c
}

// Remaining возвращает остаток использований; -1 означает безлимит.
func Remaining(c domain.UsageCounter, limit int) int {
	if limit <= 0 {
		return -1
	}
	if c.Count >= limit {
		return 0
	}
	return limit - c.Count
}
