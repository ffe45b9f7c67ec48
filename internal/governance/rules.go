// Package governance реализует чистое ядро формирования команд: штрафы за
// неявки, лимиты использования функций, жизненный цикл набора и процесс
// рассмотрения заявок. Все функции детерминированы: принимают снимки
// сущностей и логическое время, возвращают следующее состояние или
// типизированный отказ. Никакого I/O, чтения часов и горутин — транзакционная
// дисциплина вокруг снимков лежит на вызывающем слое.
package governance

import (
	"fmt"
	"time"

	"projectmate-service/internal/domain"
)

// Rules — снимок настроек управляющего ядра. Значения приходят из внешней
// конфигурации и никогда не зашиваются в код.
type Rules struct {
	// NoShowThreshold — каждое кратное этому числу количество неявок
	// выдает (или продлевает) штраф.
	NoShowThreshold int
	// PenaltyDuration — длительность штрафного окна.
	PenaltyDuration time.Duration
	// FeatureLimits — лимиты использований по функциям. Функция без
	// записи в карте не лимитируется.
	FeatureLimits map[domain.FeatureType]int
}

// Validate проверяет, что настройки пригодны для работы ядра.
// Порог и длительность обязаны быть положительными.
func (r Rules) Validate() error {
	if r.NoShowThreshold <= 0 {
		return fmt.Errorf("no-show threshold must be positive, got %d", r.NoShowThreshold)
	}
	if r.PenaltyDuration <= 0 {
		return fmt.Errorf("penalty duration must be positive, got %s", r.PenaltyDuration)
	}
	for feature, limit := range r.FeatureLimits {
		if limit < 0 {
			return fmt.Errorf("feature %s has negative limit %d", feature, limit)
		}
	}
	return nil
}

// Limit возвращает лимит функции и признак того, что лимит настроен.
func (r Rules) Limit(feature domain.FeatureType) (int, bool) {
	limit, ok := r.FeatureLimits[feature]
	return limit, ok
}
