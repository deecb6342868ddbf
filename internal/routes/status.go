package routes

import (
	"github.com/labstack/echo/v4"

	"equipment-status/internal/controllers"
)

// Чтение - по equipmentId, изменение и удаление одной записи - по суррогатному id.
// Операции над оборудованием целиком живут под отдельным префиксом /equipment.
func runEquipmentStatusRouter(e *echo.Echo, statusCtrl *controllers.EquipmentStatusController) {
	e.POST("/status", statusCtrl.CreateStatus)
	e.GET("/status", statusCtrl.GetStatuses)
	e.GET("/status/:equipmentId", statusCtrl.GetCurrentStatus)
	e.GET("/status/:equipmentId/history", statusCtrl.GetHistory)
	e.PUT("/status/:id", statusCtrl.UpdateStatus)
	e.DELETE("/status/:id", statusCtrl.DeleteStatus)

	e.PUT("/equipment/:equipmentId/status", statusCtrl.UpdateCurrentStatus)
	e.DELETE("/equipment/:equipmentId", statusCtrl.DeleteHistory)
}
