package entities

import "time"

// EquipmentStatus - одно наблюдение статуса оборудования. Строк на один EquipmentID может быть много:
// таблица хранит историю, текущий статус - строка с наибольшим UpdateDate.
type EquipmentStatus struct {
	ID          uint64    `json:"id"`
	EquipmentID string    `json:"equipment_id"`
	Status      string    `json:"status"`
	UpdateDate  time.Time `json:"update_date"`
}
