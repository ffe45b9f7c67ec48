package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"projectmate-service/internal/domain"
)

// ApplicationHandler обрабатывает HTTP-запросы заявок на участие
type ApplicationHandler struct {
	*BaseHandler
	appUseCase domain.ApplicationUseCase
}

// NewApplicationHandler создает новый экземпляр ApplicationHandler
func NewApplicationHandler(appUseCase domain.ApplicationUseCase, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler: NewBaseHandler(logger),
		appUseCase:  appUseCase,
	}
}

// PostApply обрабатывает подачу заявки на роль в проекте
func (h *ApplicationHandler) PostApply(c echo.Context) error {
	logEntry := h.logRequest(c, "apply")

	userID, err := requireUser(c)
	if err != nil {
		return respondError(c, err)
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "invalid project id"))
	}

	var req ApplyRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	app, err := h.appUseCase.Apply(c.Request().Context(), userID, projectID, req.AppliedPosition, req.Motivation, req.PortfolioLink)
	if err != nil {
		logEntry.WithError(err).Warn("Application denied")
		return respondError(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"project_id":     projectID.String(),
		"application_id": app.ID.String(),
		"position":       app.AppliedPosition,
	}).Info("Application submitted")
	return c.JSON(http.StatusCreated, toApplicationResponse(app))
}

// GetApplications возвращает заявки проекта (только лидеру)
func (h *ApplicationHandler) GetApplications(c echo.Context) error {
	logEntry := h.logRequest(c, "list_applications")

	actorID, err := requireUser(c)
	if err != nil {
		return respondError(c, err)
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "invalid project id"))
	}

	apps, err := h.appUseCase.ListByProject(c.Request().Context(), actorID, projectID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to list applications")
		return respondError(c, err)
	}

	resp := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp = append(resp, toApplicationResponse(app))
	}

	return c.JSON(http.StatusOK, resp)
}

// PostAccept обрабатывает принятие заявки лидером
func (h *ApplicationHandler) PostAccept(c echo.Context) error {
	logEntry := h.logRequest(c, "accept_application")

	actorID, err := requireUser(c)
	if err != nil {
		return respondError(c, err)
	}

	projectID, appID, err := pathProjectAndApplication(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	outcome, err := h.appUseCase.Accept(c.Request().Context(), actorID, projectID, appID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to accept application")
		return respondError(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"project_id":     projectID.String(),
		"application_id": appID.String(),
		"status":         outcome.Project.RecruitmentStatus,
	}).Info("Application accepted")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"application": toApplicationResponse(outcome.Application),
		"member":      toTeamMemberResponse(outcome.Member),
		"project":     toProjectResponse(outcome.Project),
	})
}

// PostReject обрабатывает отклонение заявки лидером
func (h *ApplicationHandler) PostReject(c echo.Context) error {
	logEntry := h.logRequest(c, "reject_application")

	actorID, err := requireUser(c)
	if err != nil {
		return respondError(c, err)
	}

	projectID, appID, err := pathProjectAndApplication(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	app, err := h.appUseCase.Reject(c.Request().Context(), actorID, projectID, appID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to reject application")
		return respondError(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"project_id":     projectID.String(),
		"application_id": app.ID.String(),
	}).Info("Application rejected")
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}

func pathProjectAndApplication(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	appID, err := uuid.Parse(c.Param("app_id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return projectID, appID, nil
}
