package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"projectmate-service/internal/domain"
)

// UserHandler обрабатывает HTTP-запросы для работы с пользователями
type UserHandler struct {
	*BaseHandler
	userUseCase domain.UserUseCase
}

// NewUserHandler создает новый экземпляр UserHandler
func NewUserHandler(userUseCase domain.UserUseCase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userUseCase: userUseCase,
	}
}

// GetMe возвращает профиль текущего пользователя
func (h *UserHandler) GetMe(c echo.Context) error {
	logEntry := h.logRequest(c, "get_me")

	userID, err := requireUser(c)
	if err != nil {
		return respondError(c, err)
	}

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to get profile")
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetUser возвращает публичный профиль пользователя по ID
func (h *UserHandler) GetUser(c echo.Context) error {
	logEntry := h.logRequest(c, "get_user")

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "invalid user id"))
	}

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		logEntry.WithError(err).Warn("User not found")
		return respondError(c, err)
	}

	// Штрафные поля в чужом профиле скрыты
	return c.JSON(http.StatusOK, toPublicUserResponse(user))
}

// PostNoShow фиксирует неявку участника
func (h *UserHandler) PostNoShow(c echo.Context) error {
	logEntry := h.logRequest(c, "record_no_show")

	actorID, err := requireUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req NoShowRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "invalid user id"))
	}

	user, err := h.userUseCase.RecordNoShow(c.Request().Context(), actorID, userID)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to record no-show")
		return respondError(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"target_user_id": user.ID.String(),
		"no_show_count":  user.NoShowCount,
	}).Info("No-show recorded")
	return c.JSON(http.StatusOK, toUserResponse(user))
}
