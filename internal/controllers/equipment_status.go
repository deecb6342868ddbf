package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-status/internal/dto"
	"equipment-status/internal/services"
	apperrors "equipment-status/pkg/errors"
	"equipment-status/pkg/utils"
)

type EquipmentStatusController struct {
	statusService services.EquipmentStatusServiceInterface
	logger        *zap.Logger
}

func NewEquipmentStatusController(
	service services.EquipmentStatusServiceInterface,
	logger *zap.Logger,
) *EquipmentStatusController {
	return &EquipmentStatusController{
		statusService: service,
		logger:        logger,
	}
}

// ----- ВСПОМОГАТЕЛЬНЫЕ -----

// serviceError переводит ошибку сервиса в ответ: не найдено -> 404, неверный ввод -> 400, остальное -> 500.
func (c *EquipmentStatusController) serviceError(ctx echo.Context, err error, notFoundMsg, failMsg string) error {
	var invalid *apperrors.InvalidInputError
	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrEmpty):
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusNotFound, notFoundMsg, err, nil), c.logger)
	case errors.As(err, &invalid):
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, invalid.Message, err, nil), c.logger)
	default:
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusInternalServerError, failMsg, err, nil), c.logger)
	}
}

func (c *EquipmentStatusController) parseID(ctx echo.Context, op string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		c.logger.Warn(op+": некорректный ID записи", zap.String("id", ctx.Param("id")), zap.Error(err))
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный формат ID записи",
			err,
			map[string]interface{}{"param": ctx.Param("id")},
		)
	}
	return id, nil
}

// equipmentID берёт equipmentId из пути. Если echo сопоставлял маршрут по RawPath
// (в пути есть, например, %2F), параметр приходит закодированным и его нужно раскодировать.
// Иначе net/http уже раскодировал Path, и повторный PathUnescape исказил бы ID.
func equipmentID(ctx echo.Context) string {
	raw := ctx.Param("equipmentId")
	if ctx.Request().URL.RawPath == "" {
		return raw
	}
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}

func (c *EquipmentStatusController) bindUpdate(ctx echo.Context, op string) (*dto.UpdateEquipmentStatusDTO, error) {
	var payload dto.UpdateEquipmentStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn(op+": ошибка привязки данных", zap.Error(err))
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil)
	}
	if err := ctx.Validate(&payload); err != nil {
		c.logger.Warn(op+": ошибка валидации данных", zap.Error(err))
		return nil, err
	}
	return &payload, nil
}

// ----- РАБОЧИЕ МЕТОДЫ КОНТРОЛЛЕРА -----

// CreateStatus: POST /status
func (c *EquipmentStatusController) CreateStatus(ctx echo.Context) error {
	var payload dto.CreateEquipmentStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("CreateStatus: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger,
		)
	}

	if err := ctx.Validate(&payload); err != nil {
		c.logger.Warn("CreateStatus: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.statusService.CreateStatus(ctx.Request().Context(), payload)
	if err != nil {
		c.logger.Error("CreateStatus: ошибка при создании статуса", zap.Any("payload", payload), zap.Error(err))
		return c.serviceError(ctx, err, "Запись не найдена", "Не удалось сохранить статус оборудования")
	}

	ctx.Response().Header().Set(echo.HeaderLocation, "/status/"+url.PathEscape(res.EquipmentID))
	return utils.SuccessResponse(ctx, res, "Статус оборудования успешно сохранён", http.StatusCreated)
}

// GetStatuses: GET /status, новые сверху. Пустая таблица -> 404.
func (c *EquipmentStatusController) GetStatuses(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.statusService.GetStatuses(ctx.Request().Context(), filter)
	if err != nil {
		return c.serviceError(ctx, err, "Статусы оборудования не найдены", "Не удалось получить список статусов")
	}

	return utils.SuccessResponse(ctx, res, "Список статусов успешно получен", http.StatusOK, total)
}

// GetCurrentStatus: GET /status/:equipmentId - последняя запись по оборудованию.
func (c *EquipmentStatusController) GetCurrentStatus(ctx echo.Context) error {
	id := equipmentID(ctx)

	res, err := c.statusService.GetCurrentStatus(ctx.Request().Context(), id)
	if err != nil {
		return c.serviceError(ctx, err, "Оборудование с ID "+id+" не найдено", "Не удалось получить статус оборудования")
	}

	return utils.SuccessResponse(ctx, res, "Текущий статус оборудования получен", http.StatusOK)
}

// GetHistory: GET /status/:equipmentId/history
func (c *EquipmentStatusController) GetHistory(ctx echo.Context) error {
	id := equipmentID(ctx)

	res, err := c.statusService.GetHistory(ctx.Request().Context(), id)
	if err != nil {
		return c.serviceError(ctx, err, "Оборудование с ID "+id+" не найдено", "Не удалось получить историю статусов")
	}

	return utils.SuccessResponse(ctx, res, "История статусов оборудования получена", http.StatusOK)
}

// UpdateStatus: PUT /status/:id (суррогатный ключ)
func (c *EquipmentStatusController) UpdateStatus(ctx echo.Context) error {
	id, err := c.parseID(ctx, "UpdateStatus")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	payload, err := c.bindUpdate(ctx, "UpdateStatus")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.statusService.UpdateStatus(ctx.Request().Context(), id, *payload)
	if err != nil {
		return c.serviceError(ctx, err, "Запись со статусом не найдена", "Не удалось обновить статус оборудования")
	}

	return utils.SuccessResponse(ctx, res, "Статус оборудования успешно обновлён", http.StatusOK)
}

// DeleteStatus: DELETE /status/:id
func (c *EquipmentStatusController) DeleteStatus(ctx echo.Context) error {
	id, err := c.parseID(ctx, "DeleteStatus")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.statusService.DeleteStatus(ctx.Request().Context(), id); err != nil {
		return c.serviceError(ctx, err, "Запись со статусом не найдена", "Не удалось удалить статус оборудования")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCurrentStatus: PUT /equipment/:equipmentId/status - меняет последнюю запись оборудования.
func (c *EquipmentStatusController) UpdateCurrentStatus(ctx echo.Context) error {
	id := equipmentID(ctx)

	payload, err := c.bindUpdate(ctx, "UpdateCurrentStatus")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.statusService.UpdateCurrentStatus(ctx.Request().Context(), id, *payload)
	if err != nil {
		return c.serviceError(ctx, err, "Оборудование с ID "+id+" не найдено", "Не удалось обновить статус оборудования")
	}

	return utils.SuccessResponse(ctx, res, "Текущий статус оборудования обновлён", http.StatusOK)
}

// DeleteHistory: DELETE /equipment/:equipmentId - удаляет всю историю оборудования.
func (c *EquipmentStatusController) DeleteHistory(ctx echo.Context) error {
	id := equipmentID(ctx)

	res, err := c.statusService.DeleteHistory(ctx.Request().Context(), id)
	if err != nil {
		return c.serviceError(ctx, err, "Оборудование с ID "+id+" не найдено", "Не удалось удалить историю оборудования")
	}

	c.logger.Debug("DeleteHistory: удалено записей", zap.String("equipment_id", id), zap.Int64("deleted", res.Deleted))
	return ctx.NoContent(http.StatusNoContent)
}
