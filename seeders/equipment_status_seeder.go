package seeders

import (
	"context"
	"fmt"
	"log"

	"equipment-status/internal/dto"
	"equipment-status/internal/services"
)

// Демонстрационные наблюдения: по каждому оборудованию - история в порядке поступления.
var demoStatusesData = []dto.CreateEquipmentStatusDTO{
	{EquipmentID: "PUMP-001", Status: "Operational"},
	{EquipmentID: "PUMP-002", Status: "Operational"},
	{EquipmentID: "CONVEYOR-01", Status: "Operational"},
	{EquipmentID: "PUMP-001", Status: "Maintenance"},
	{EquipmentID: "CONVEYOR-01", Status: "Down"},
	{EquipmentID: "PUMP-001", Status: "Operational"},
}

// SeedDemoStatuses записывает демонстрационные статусы через сервис, чтобы update_date ставился так же, как в API.
func SeedDemoStatuses(ctx context.Context, statusService services.EquipmentStatusServiceInterface) (int, error) {
	log.Println("  - Наполнение таблицы 'equipment_statuses' демо-данными...")

	for i, s := range demoStatusesData {
		if _, err := statusService.CreateStatus(ctx, s); err != nil {
			return i, fmt.Errorf("статус %s/%s: %w", s.EquipmentID, s.Status, err)
		}
	}
	return len(demoStatusesData), nil
}
