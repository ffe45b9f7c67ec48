package governance

import (
	"time"

	"github.com/google/uuid"

	"projectmate-service/internal/domain"
)

// SubmitApplication проверяет охранные условия подачи заявки и возвращает
// новую PENDING-заявку. Порядок проверок:
//   - роль должна входить в PositionsNeeded проекта (ErrInvalidRole);
//   - заявитель не должен быть под штрафом (ErrUserPenalized);
//   - набор не терминален и хотя бы одна роль с недобором (ErrProjectNotOpen);
//   - запрошенная роль сама с недобором — проект открыт для заявок на любую
//     роль с недобором независимо от остальных (ErrRecruitmentClosedForRole);
//   - на (проект, пользователь) нет другой PENDING-заявки (ErrDuplicatePending).
func SubmitApplication(applicant domain.User, p domain.Project, pendingExists bool, role, motivation, portfolioLink string, rules Rules, now time.Time) (*domain.Application, error) {
	if _, ok := p.PositionsNeeded[role]; !ok {
		return nil, domain.ErrInvalidRole
	}
	if IsPenalized(applicant, now) {
		return nil, domain.ErrUserPenalized
	}
	if p.RecruitmentStatus.IsTerminal() || !p.HasOpenPosition() {
		return nil, domain.ErrProjectNotOpen
	}
	if p.PositionsFilled[role] >= p.PositionsNeeded[role] {
		return nil, domain.ErrRecruitmentClosedForRole
	}
	if pendingExists {
		return nil, domain.ErrDuplicatePending
	}

	return &domain.Application{
		ID:              uuid.New(),
		ProjectID:       p.ID,
		UserID:          applicant.ID,
		AppliedPosition: role,
		Motivation:      motivation,
		PortfolioLink:   portfolioLink,
		Status:          domain.ApplicationPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// AcceptApplication выполняет переход PENDING -> ACCEPTED. Вместимость роли
// перепроверяется по текущему снимку, а не по состоянию на момент подачи:
// роль могла заполниться между подачей и рассмотрением. Результат — единое
// целое: принятая заявка, членство и проект с примененным ApplyMembership(+1);
// вызывающий обязан записать все три атомарно.
func AcceptApplication(p domain.Project, app domain.Application, now time.Time) (*domain.AcceptOutcome, error) {
	if app.Status.IsFinal() {
		return nil, domain.ErrAlreadyFinalized
	}
	if !CanAcceptApplication(p, app.AppliedPosition) {
		return nil, domain.ErrRecruitmentClosedForRole
	}

	updated, err := ApplyMembership(p, app.AppliedPosition, +1)
	if err != nil {
		return nil, err
	}

	app.Status = domain.ApplicationAccepted
	app.UpdatedAt = now

	member := &domain.TeamMember{
		ID:            uuid.New(),
		ProjectID:     p.ID,
		UserID:        app.UserID,
		RoleInProject: app.AppliedPosition,
		IsLeader:      false,
		JoinedAt:      now,
	}

	return &domain.AcceptOutcome{
		Application: &app,
		Member:      member,
		Project:     &updated,
	}, nil
}

// RejectApplication выполняет переход PENDING -> REJECTED без побочных
// эффектов. Повторный переход по финализированной заявке дает
// ErrAlreadyFinalized независимо от действующего лица.
func RejectApplication(app domain.Application, now time.Time) (*domain.Application, error) {
	if app.Status.IsFinal() {
		return nil, domain.ErrAlreadyFinalized
	}
	app.Status = domain.ApplicationRejected
	app.UpdatedAt = now
	return &app, nil
}
