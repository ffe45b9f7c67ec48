package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"projectmate-service/internal/domain"
)

// ProjectHandler обрабатывает HTTP-запросы для работы с проектами
type ProjectHandler struct {
	*BaseHandler
	projectUseCase domain.ProjectUseCase
}

// NewProjectHandler создает новый экземпляр ProjectHandler
func NewProjectHandler(projectUseCase domain.ProjectUseCase, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler:    NewBaseHandler(logger),
		projectUseCase: projectUseCase,
	}
}

// PostProject обрабатывает публикацию нового проекта
func (h *ProjectHandler) PostProject(c echo.Context) error {
	logEntry := h.logRequest(c, "create_project")

	leaderID, err := requireUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	project := &domain.Project{
		Title:                 req.Title,
		Summary:               req.Summary,
		Description:           req.Description,
		Category:              domain.ProjectCategory(req.Category),
		Goal:                  req.Goal,
		ExpectedDurationWeeks: req.ExpectedDurationWeeks,
		RemoteType:            domain.RemoteType(req.RemoteType),
		PositionsNeeded:       req.PositionsNeeded,
	}

	created, err := h.projectUseCase.CreateProject(c.Request().Context(), leaderID, project)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to create project")
		return respondError(c, err)
	}

	logEntry.WithField("project_id", created.ID.String()).Info("Project created")
	return c.JSON(http.StatusCreated, toProjectResponse(created))
}

// GetProject возвращает проект по идентификатору
func (h *ProjectHandler) GetProject(c echo.Context) error {
	logEntry := h.logRequest(c, "get_project")

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "invalid project id"))
	}

	project, err := h.projectUseCase.GetProject(c.Request().Context(), projectID)
	if err != nil {
		logEntry.WithError(err).Warn("Project not found")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// GetProjects возвращает страницу проектов с фильтрами
func (h *ProjectHandler) GetProjects(c echo.Context) error {
	logEntry := h.logRequest(c, "list_projects")

	filters := domain.ProjectFilters{Page: 1, Size: 20}
	if raw := c.QueryParam("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			filters.Page = page
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size >= 1 && size <= 100 {
			filters.Size = size
		}
	}
	if raw := c.QueryParam("category"); raw != "" {
		category := domain.ProjectCategory(raw)
		filters.Category = &category
	}
	if raw := c.QueryParam("remote_type"); raw != "" {
		remoteType := domain.RemoteType(raw)
		filters.RemoteType = &remoteType
	}

	projects, total, err := h.projectUseCase.ListProjects(c.Request().Context(), filters)
	if err != nil {
		logEntry.WithError(err).Error("Failed to list projects")
		return respondError(c, err)
	}

	resp := ProjectListResponse{
		Projects: make([]ProjectResponse, 0, len(projects)),
		Total:    total,
		Page:     filters.Page,
		Size:     filters.Size,
	}
	for _, project := range projects {
		resp.Projects = append(resp.Projects, toProjectResponse(project))
	}

	return c.JSON(http.StatusOK, resp)
}

// PostCloseRecruitment закрывает набор решением лидера
func (h *ProjectHandler) PostCloseRecruitment(c echo.Context) error {
	return h.updateStatus(c, "close_recruitment", h.projectUseCase.CloseRecruitment)
}

// PostFinishProject завершает проект решением лидера
func (h *ProjectHandler) PostFinishProject(c echo.Context) error {
	return h.updateStatus(c, "finish_project", h.projectUseCase.FinishProject)
}

func (h *ProjectHandler) updateStatus(c echo.Context, operation string, update func(ctx context.Context, actorID, projectID uuid.UUID) (*domain.Project, error)) error {
	logEntry := h.logRequest(c, operation)

	actorID, err := requireUser(c)
	if err != nil {
		return respondError(c, err)
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "invalid project id"))
	}

	project, err := update(c.Request().Context(), actorID, projectID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to update recruitment status")
		return respondError(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"project_id": project.ID.String(),
		"status":     project.RecruitmentStatus,
	}).Info("Recruitment status updated")
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// GetTeam возвращает участников команды проекта
func (h *ProjectHandler) GetTeam(c echo.Context) error {
	logEntry := h.logRequest(c, "get_team")

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "invalid project id"))
	}

	members, err := h.projectUseCase.GetTeam(c.Request().Context(), projectID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get team")
		return respondError(c, err)
	}

	resp := make([]TeamMemberResponse, 0, len(members))
	for _, member := range members {
		resp = append(resp, toTeamMemberResponse(member))
	}

	return c.JSON(http.StatusOK, resp)
}
