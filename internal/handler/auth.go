package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"projectmate-service/internal/domain"
)

// AuthHandler обрабатывает HTTP-запросы регистрации и входа
type AuthHandler struct {
	*BaseHandler
	authUseCase domain.AuthUseCase
}

// NewAuthHandler создает новый экземпляр AuthHandler
func NewAuthHandler(authUseCase domain.AuthUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authUseCase: authUseCase,
	}
}

// PostRegister обрабатывает регистрацию нового пользователя
func (h *AuthHandler) PostRegister(c echo.Context) error {
	logEntry := h.logRequest(c, "register")

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	user, err := h.authUseCase.Register(c.Request().Context(), req.Email, req.Password, req.Name, domain.UserRole(req.Role))
	if err != nil {
		logEntry.WithError(err).Warn("Failed to register user")
		return respondError(c, err)
	}

	logEntry.WithField("user_id", user.ID.String()).Info("User registered")
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// PostLogin обрабатывает вход пользователя
func (h *AuthHandler) PostLogin(c echo.Context) error {
	logEntry := h.logRequest(c, "login")

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logEntry.WithError(err).Warn("Failed to bind request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	user, token, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		logEntry.WithError(err).Warn("Failed to login")
		return respondError(c, err)
	}

	logEntry.WithField("user_id", user.ID.String()).Info("User logged in")
	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}
