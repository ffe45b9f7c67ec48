package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"projectmate-service/internal/auth"
	"projectmate-service/internal/domain"
)

type APIHandler struct {
	*AuthHandler
	*UserHandler
	*ProjectHandler
	*ApplicationHandler
	*FeatureHandler
}

func NewAPIHandler(
	authUseCase domain.AuthUseCase,
	userUseCase domain.UserUseCase,
	projectUseCase domain.ProjectUseCase,
	appUseCase domain.ApplicationUseCase,
	featureUseCase domain.FeatureUseCase,
	logger *logrus.Logger,
) *APIHandler {

	return &APIHandler{
		AuthHandler:        NewAuthHandler(authUseCase, logger),
		UserHandler:        NewUserHandler(userUseCase, logger),
		ProjectHandler:     NewProjectHandler(projectUseCase, logger),
		ApplicationHandler: NewApplicationHandler(appUseCase, logger),
		FeatureHandler:     NewFeatureHandler(featureUseCase, logger),
	}
}

// RegisterRoutes привязывает маршруты API к обработчикам.
func (h *APIHandler) RegisterRoutes(e *echo.Echo, tokens *auth.TokenManager) {
	e.POST("/api/auth/register", h.PostRegister)
	e.POST("/api/auth/login", h.PostLogin)

	api := e.Group("/api", AuthMiddleware(tokens))

	api.GET("/users/me", h.GetMe)
	api.GET("/users/:id", h.GetUser)
	api.POST("/users/no-show", h.PostNoShow)

	api.POST("/projects", h.PostProject)
	api.GET("/projects", h.GetProjects)
	api.GET("/projects/:id", h.GetProject)
	api.POST("/projects/:id/close", h.PostCloseRecruitment)
	api.POST("/projects/:id/finish", h.PostFinishProject)
	api.GET("/projects/:id/team", h.GetTeam)

	api.POST("/projects/:id/apply", h.PostApply)
	api.GET("/projects/:id/applications", h.GetApplications)
	api.POST("/projects/:id/applications/:app_id/accept", h.PostAccept)
	api.POST("/projects/:id/applications/:app_id/reject", h.PostReject)

	api.POST("/ai/:feature/use", h.PostUseFeature)
}
