package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"projectmate-service/internal/domain"
)

// FeatureHandler обрабатывает HTTP-запросы AI-функций с лимитами
type FeatureHandler struct {
	*BaseHandler
	featureUseCase domain.FeatureUseCase
}

// NewFeatureHandler создает новый экземпляр FeatureHandler
func NewFeatureHandler(featureUseCase domain.FeatureUseCase, logger *logrus.Logger) *FeatureHandler {
	return &FeatureHandler{
		BaseHandler:    NewBaseHandler(logger),
		featureUseCase: featureUseCase,
	}
}

// PostUseFeature потребляет одно использование функции. Генерация контента —
// внешний коллаборатор; здесь решается только "можно ли сейчас".
func (h *FeatureHandler) PostUseFeature(c echo.Context) error {
	logEntry := h.logRequest(c, "use_feature")

	userID, err := requireUser(c)
	if err != nil {
		return respondError(c, err)
	}

	feature := domain.FeatureType(c.Param("feature"))

	counter, remaining, err := h.featureUseCase.UseFeature(c.Request().Context(), userID, feature)
	if err != nil {
		logEntry.WithError(err).WithField("feature", string(feature)).Warn("Feature usage denied")
		return respondError(c, err)
	}

	logEntry.WithFields(logrus.Fields{
		"feature":   string(feature),
		"count":     counter.Count,
		"remaining": remaining,
	}).Info("Feature usage consumed")
	return c.JSON(http.StatusOK, FeatureUsageResponse{
		Feature:   string(counter.Feature),
		Count:     counter.Count,
		Remaining: remaining,
	})
}
