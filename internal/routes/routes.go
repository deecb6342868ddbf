package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-status/internal/controllers"
	"equipment-status/internal/repositories"
	"equipment-status/internal/services"
	"equipment-status/pkg/database"
)

// InitRouter собирает репозиторий, сервис и контроллеры поверх одного дескриптора хранилища.
func InitRouter(e *echo.Echo, storage *database.Storage, logger *zap.Logger, opts ...services.EquipmentStatusServiceOption) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 1. РЕПОЗИТОРИИ ---
	statusRepo := repositories.NewEquipmentStatusRepository(storage, logger)

	// --- 2. СЕРВИСЫ ---
	statusService := services.NewEquipmentStatusService(statusRepo, logger, opts...)

	// --- 3. КОНТРОЛЛЕРЫ ---
	statusCtrl := controllers.NewEquipmentStatusController(statusService, logger)
	reportCtrl := controllers.NewReportController(statusService, logger)
	healthCtrl := controllers.NewHealthController(statusService, logger)

	// --- 4. РОУТЕРЫ ---
	runEquipmentStatusRouter(e, statusCtrl)
	runReportRouter(e, reportCtrl)
	e.GET("/health", healthCtrl.Health)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
