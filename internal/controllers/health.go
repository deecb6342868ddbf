package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-status/internal/services"
	apperrors "equipment-status/pkg/errors"
	"equipment-status/pkg/utils"
)

type HealthController struct {
	statusService services.EquipmentStatusServiceInterface
	logger        *zap.Logger
}

func NewHealthController(statusService services.EquipmentStatusServiceInterface, logger *zap.Logger) *HealthController {
	return &HealthController{statusService: statusService, logger: logger}
}

func (c *HealthController) Health(ctx echo.Context) error {
	if err := c.statusService.Ping(ctx.Request().Context()); err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusServiceUnavailable, "Хранилище недоступно", err, nil),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, map[string]string{"storage": "ok"}, "OK", http.StatusOK)
}
