package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"equipment-status/internal/dto"
	"equipment-status/internal/services"
	apperrors "equipment-status/pkg/errors"
	"equipment-status/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	statusService services.EquipmentStatusServiceInterface
	logger        *zap.Logger
	now           func() time.Time
}

func NewReportController(statusService services.EquipmentStatusServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{statusService: statusService, logger: logger, now: time.Now}
}

// GetStatusReport: текущий статус каждого оборудования. ?format=xlsx - выгрузка в Excel.
func (c *ReportController) GetStatusReport(ctx echo.Context) error {
	format := strings.ToLower(ctx.QueryParam("format"))
	c.logger.Debug("Запрос на отчет по статусам", zap.String("format", format))

	data, err := c.statusService.GetCurrentStatuses(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(
			ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось сформировать отчет", err, nil),
			c.logger,
		)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}

	return utils.SuccessResponse(ctx, data, "Отчет успешно сформирован", http.StatusOK)
}

var reportHeaders = []string{"№", "ID оборудования", "Статус", "Дата обновления (UTC)", "ID записи"}

func rowToSlice(n int, item dto.EquipmentStatusDTO) []interface{} {
	return []interface{}{
		n, item.EquipmentID, item.Status, item.UpdateDate.UTC().Format("02.01.2006 15:04:05.000"), item.ID,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.EquipmentStatusDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Статусы оборудования"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return c.xlsxError(ctx, err)
	}
	if err := f.SetSheetRow(sheet, "A1", &reportHeaders); err != nil {
		return c.xlsxError(ctx, err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return c.xlsxError(ctx, err)
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", style); err != nil {
		return c.xlsxError(ctx, err)
	}

	for i, item := range data {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return c.xlsxError(ctx, err)
		}
		row := rowToSlice(i+1, item)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return c.xlsxError(ctx, err)
		}
	}
	f.SetColWidth(sheet, "B", "C", 25)
	f.SetColWidth(sheet, "D", "D", 28)

	fileName := fmt.Sprintf("equipment_status_%s.xlsx", c.now().UTC().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func (c *ReportController) xlsxError(ctx echo.Context, err error) error {
	return utils.ErrorResponse(
		ctx,
		apperrors.NewHttpError(http.StatusInternalServerError, "Не удалось сформировать файл отчета", err, nil),
		c.logger,
	)
}
