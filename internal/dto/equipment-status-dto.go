package dto

import (
	"time"

	"equipment-status/internal/entities"
)

// CreateEquipmentStatusDTO: что клиент присылает в POST /status.
// id и update_date от клиента не принимаются.
type CreateEquipmentStatusDTO struct {
	EquipmentID string `json:"equipment_id" validate:"required,notblank"`
	Status      string `json:"status" validate:"required,notblank"`
}

// UpdateEquipmentStatusDTO: что клиент присылает в PUT. Меняется только статус.
type UpdateEquipmentStatusDTO struct {
	Status string `json:"status" validate:"required,notblank"`
}

// EquipmentStatusDTO: что сервер отправляет клиенту в ответ.
type EquipmentStatusDTO struct {
	ID          uint64    `json:"id"`
	EquipmentID string    `json:"equipment_id"`
	Status      string    `json:"status"`
	UpdateDate  time.Time `json:"update_date"`
}

func EquipmentStatusToDTO(e entities.EquipmentStatus) EquipmentStatusDTO {
	return EquipmentStatusDTO{
		ID:          e.ID,
		EquipmentID: e.EquipmentID,
		Status:      e.Status,
		UpdateDate:  e.UpdateDate.UTC(),
	}
}

func EquipmentStatusesToDTO(list []entities.EquipmentStatus) []EquipmentStatusDTO {
	res := make([]EquipmentStatusDTO, 0, len(list))
	for _, e := range list {
		res = append(res, EquipmentStatusToDTO(e))
	}
	return res
}

// DeletedHistoryDTO - итог удаления всей истории одного оборудования.
type DeletedHistoryDTO struct {
	EquipmentID string `json:"equipment_id"`
	Deleted     int64  `json:"deleted"`
}
