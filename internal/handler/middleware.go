package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"projectmate-service/internal/auth"
	"projectmate-service/internal/domain"
)

// LoggingMiddleware добавляет структурированное логирование запросов
func LoggingMiddleware(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			latency := time.Since(start)
			status := c.Response().Status

			entry := logger.WithFields(logrus.Fields{
				"method":  c.Request().Method,
				"uri":     c.Request().URL.Path,
				"status":  status,
				"latency": latency,
				"ip":      c.RealIP(),
			})

			if err != nil {
				entry = entry.WithField("error", err.Error())
			}

			if status >= 500 {
				entry.Error("Server error")
			} else if status >= 400 {
				entry.Warn("Client error")
			} else {
				entry.Info("Request processed")
			}

			return err
		}
	}
}

const contextUserKey = "auth_user_id"

// AuthMiddleware проверяет Bearer-токен и кладет ID пользователя в контекст
func AuthMiddleware(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, toErrorResponse("UNAUTHORIZED", "authorization token is required"))
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, toErrorResponse("UNAUTHORIZED", "authorization header format must be Bearer {token}"))
			}

			userID, err := tokens.VerifyToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, toErrorResponse("UNAUTHORIZED", "invalid or expired token"))
			}

			c.Set(contextUserKey, userID)
			return next(c)
		}
	}
}

// currentUserID возвращает ID аутентифицированного пользователя из контекста.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextUserKey).(uuid.UUID)
	return userID, ok
}

func requireUser(c echo.Context) (uuid.UUID, error) {
	userID, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, domain.ErrInvalidCredentials
	}
	return userID, nil
}
