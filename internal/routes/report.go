package routes

import (
	"github.com/labstack/echo/v4"

	"equipment-status/internal/controllers"
)

func runReportRouter(e *echo.Echo, reportCtrl *controllers.ReportController) {
	e.GET("/reports/status", reportCtrl.GetStatusReport)
}
