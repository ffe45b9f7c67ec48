package governance

import (
	"projectmate-service/internal/domain"
)

// CanAcceptApplication сообщает, можно ли принять заявку на роль прямо сейчас:
// набор не в терминальном статусе и по роли остался недобор.
func CanAcceptApplication(p domain.Project, role string) bool {
	if p.RecruitmentStatus.IsTerminal() {
		return false
	}
	needed, ok := p.PositionsNeeded[role]
	if !ok {
		return false
	}
	return p.PositionsFilled[role] < needed
}

// ApplyMembership возвращает проект с пересчитанным счетчиком занятых мест по
// роли и заново выведенным статусом набора. Роль, отсутствующая в
// PositionsNeeded, дает ErrInvalidRole. Инвариант filled <= needed
// поддерживается отсечением на границах.
func ApplyMembership(p domain.Project, role string, delta int) (domain.Project, error) {
	needed, ok := p.PositionsNeeded[role]
	if !ok {
		return p, domain.ErrInvalidRole
	}

	filled := make(map[string]int, len(p.PositionsFilled))
	for r, n := range p.PositionsFilled {
		filled[r] = n
	}

	next := filled[role] + delta
	if next < 0 {
		next = 0
	}
	if next > needed {
		next = needed
	}
	filled[role] = next

	p.PositionsFilled = filled
	p.RecruitmentStatus = deriveStatus(p)
	return p, nil
}

// CloseRecruitment переводит набор в CLOSED. Допустимо из OPEN и IN_PROGRESS.
func CloseRecruitment(p domain.Project) (domain.Project, error) {
	switch p.RecruitmentStatus {
	case domain.RecruitmentOpen, domain.RecruitmentInProgress:
		p.RecruitmentStatus = domain.RecruitmentClosed
		return p, nil
	default:
		return p, domain.ErrInvalidStatusTransition
	}
}

// FinishProject переводит проект в FINISHED. Допустимо только из IN_PROGRESS.
func FinishProject(p domain.Project) (domain.Project, error) {
	if p.RecruitmentStatus != domain.RecruitmentInProgress {
		return p, domain.ErrInvalidStatusTransition
	}
	p.RecruitmentStatus = domain.RecruitmentFinished
	return p, nil
}

// deriveStatus выводит статус набора из соотношения filled/needed заново при
// каждом изменении состава, вместо избыточного хранения: когда все роли
// укомплектованы — IN_PROGRESS, иначе OPEN. Терминальные статусы неизменны.
func deriveStatus(p domain.Project) domain.RecruitmentStatus {
	if p.RecruitmentStatus.IsTerminal() {
		return p.RecruitmentStatus
	}
	if p.HasOpenPosition() {
		return domain.RecruitmentOpen
	}
	return domain.RecruitmentInProgress
}
