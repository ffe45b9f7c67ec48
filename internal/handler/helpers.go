package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"projectmate-service/internal/domain"
)

// Вспомогательные функции преобразования доменных моделей в API модели

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Role),
		IsActive:     user.IsActive,
		NoShowCount:  user.NoShowCount,
		PenaltyUntil: user.PenaltyUntil,
		CreatedAt:    user.CreatedAt,
	}
}

// toPublicUserResponse скрывает штрафные поля в чужих профилях.
func toPublicUserResponse(user *domain.User) UserResponse {
	resp := toUserResponse(user)
	resp.NoShowCount = 0
	resp.PenaltyUntil = nil
	return resp
}

func toProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:                    p.ID.String(),
		LeaderID:              p.LeaderID.String(),
		Title:                 p.Title,
		Summary:               p.Summary,
		Description:           p.Description,
		Category:              string(p.Category),
		Goal:                  p.Goal,
		ExpectedDurationWeeks: p.ExpectedDurationWeeks,
		RemoteType:            string(p.RemoteType),
		RecruitmentStatus:     string(p.RecruitmentStatus),
		PositionsNeeded:       p.PositionsNeeded,
		PositionsFilled:       p.PositionsFilled,
		CreatedAt:             p.CreatedAt,
	}
}

func toApplicationResponse(a *domain.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:              a.ID.String(),
		ProjectID:       a.ProjectID.String(),
		UserID:          a.UserID.String(),
		AppliedPosition: a.AppliedPosition,
		Motivation:      a.Motivation,
		PortfolioLink:   a.PortfolioLink,
		Status:          string(a.Status),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toTeamMemberResponse(m *domain.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:            m.ID.String(),
		ProjectID:     m.ProjectID.String(),
		UserID:        m.UserID.String(),
		RoleInProject: m.RoleInProject,
		IsLeader:      m.IsLeader,
		JoinedAt:      m.JoinedAt,
		LeftAt:        m.LeftAt,
	}
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{
			Code:    code,
			Message: message,
		},
	}
}

func getHTTPStatusCode(err error) int {
	switch err {
	// Denials that conflict with current state (409)
	case domain.ErrEmailAlreadyExists, domain.ErrDuplicatePending,
		domain.ErrAlreadyFinalized, domain.ErrProjectNotOpen,
		domain.ErrRecruitmentClosedForRole, domain.ErrInvalidStatusTransition:
		return http.StatusConflict

	// Governance denials tied to the actor (403)
	case domain.ErrUserPenalized, domain.ErrNotProjectLeader,
		domain.ErrLeaderRoleRequired:
		return http.StatusForbidden

	// Quota exhausted (429)
	case domain.ErrQuotaExceeded:
		return http.StatusTooManyRequests

	// Not Found errors (404)
	case domain.ErrUserNotFound, domain.ErrProjectNotFound,
		domain.ErrApplicationNotFound:
		return http.StatusNotFound

	// Unauthorized (401)
	case domain.ErrInvalidCredentials:
		return http.StatusUnauthorized

	// Bad Request errors (400) - валидация
	case domain.ErrInvalidEmail, domain.ErrInvalidPassword,
		domain.ErrInvalidUserRole, domain.ErrInvalidProjectTitle,
		domain.ErrInvalidPositions, domain.ErrInvalidMotivation,
		domain.ErrInvalidFeature, domain.ErrInvalidRole:
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// respondError единообразно отображает ошибку усекейса в HTTP-ответ.
func respondError(c echo.Context, err error) error {
	if httpErr, exists := domain.ToHTTPError(err); exists {
		return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
	}
	status := getHTTPStatusCode(err)
	if status == http.StatusBadRequest {
		return c.JSON(status, toErrorResponse("VALIDATION_ERROR", err.Error()))
	}
	return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
}
