package governance

import (
	"time"

	"github.com/google/uuid"

	"projectmate-service/internal/domain"
)

// Engine — фасад управляющего ядра: единая точка входа для вопроса «можно ли
// этому актору выполнить это действие сейчас». Все методы — чистые функции от
// переданных снимков; сохранение результатов и границы транзакций принадлежат
// вызывающему слою.
type Engine struct {
	rules Rules
}

// NewEngine создает фасад с валидированными правилами.
func NewEngine(rules Rules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Engine{rules: rules}, nil
}

// Rules возвращает снимок правил фасада.
func (e *Engine) Rules() Rules {
	return e.rules
}

// CanCreateProject сообщает, может ли пользователь опубликовать проект:
// роль лидера (или обе) и отсутствие действующего штрафа.
func (e *Engine) CanCreateProject(u domain.User, now time.Time) error {
	if !u.CanLead() {
		return domain.ErrLeaderRoleRequired
	}
	if IsPenalized(u, now) {
		return domain.ErrUserPenalized
	}
	return nil
}

// Submit проверяет право на подачу заявки и возвращает новую PENDING-заявку.
func (e *Engine) Submit(applicant domain.User, p domain.Project, pendingExists bool, role, motivation, portfolioLink string, now time.Time) (*domain.Application, error) {
	return SubmitApplication(applicant, p, pendingExists, role, motivation, portfolioLink, e.rules, now)
}

// Accept проверяет право лидера и выполняет принятие заявки над снимком.
func (e *Engine) Accept(actorID uuid.UUID, p domain.Project, app domain.Application, now time.Time) (*domain.AcceptOutcome, error) {
	if actorID != p.LeaderID {
		return nil, domain.ErrNotProjectLeader
	}
	return AcceptApplication(p, app, now)
}

// Reject проверяет право лидера и отклоняет заявку.
func (e *Engine) Reject(actorID uuid.UUID, p domain.Project, app domain.Application, now time.Time) (*domain.Application, error) {
	if actorID != p.LeaderID {
		return nil, domain.ErrNotProjectLeader
	}
	return RejectApplication(app, now)
}

// ConsumeFeature пытается потребить использование функции. Отказ несет
// ErrQuotaExceeded и неизмененный счетчик; разрешение — счетчик с
// инкрементом, который вызывающий сохраняет.
func (e *Engine) ConsumeFeature(c domain.UsageCounter, feature domain.FeatureType, now time.Time) (domain.UsageCounter, error) {
	// Функция без настроенного лимита не лимитируется: limit = 0,
	// счетчик продолжает вестись.
	limit, _ := e.rules.Limit(feature)
	allowed, next := TryConsume(c, limit, now)
	if !allowed {
		return c, domain.ErrQuotaExceeded
	}
	return next, nil
}

// RecordNoShow фиксирует неявку и возвращает новое состояние пользователя.
func (e *Engine) RecordNoShow(u domain.User, now time.Time) domain.User {
	return RecordNoShow(u, e.rules, now)
}

// IsPenalized сообщает, действует ли штраф для пользователя в момент now.
func (e *Engine) IsPenalized(u domain.User, now time.Time) bool {
	return IsPenalized(u, now)
}
