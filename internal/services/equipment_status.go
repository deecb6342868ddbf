package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"equipment-status/internal/dto"
	"equipment-status/internal/entities"
	"equipment-status/internal/repositories"
	apperrors "equipment-status/pkg/errors"
	"equipment-status/pkg/types"
)

// Точность хранения UpdateDate
const updateDatePrecision = time.Millisecond

type EquipmentStatusServiceInterface interface {
	CreateStatus(ctx context.Context, payload dto.CreateEquipmentStatusDTO) (*dto.EquipmentStatusDTO, error)
	GetStatuses(ctx context.Context, filter types.Filter) ([]dto.EquipmentStatusDTO, uint64, error)
	GetCurrentStatus(ctx context.Context, equipmentID string) (*dto.EquipmentStatusDTO, error)
	GetHistory(ctx context.Context, equipmentID string) ([]dto.EquipmentStatusDTO, error)
	GetCurrentStatuses(ctx context.Context) ([]dto.EquipmentStatusDTO, error)
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateEquipmentStatusDTO) (*dto.EquipmentStatusDTO, error)
	UpdateCurrentStatus(ctx context.Context, equipmentID string, payload dto.UpdateEquipmentStatusDTO) (*dto.EquipmentStatusDTO, error)
	DeleteStatus(ctx context.Context, id uint64) error
	DeleteHistory(ctx context.Context, equipmentID string) (*dto.DeletedHistoryDTO, error)
	Ping(ctx context.Context) error
}

type EquipmentStatusService struct {
	repo   repositories.EquipmentStatusRepositoryInterface
	logger *zap.Logger
	now    func() time.Time
}

type EquipmentStatusServiceOption func(*EquipmentStatusService)

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) EquipmentStatusServiceOption {
	return func(s *EquipmentStatusService) { s.now = now }
}

func NewEquipmentStatusService(
	repo repositories.EquipmentStatusRepositoryInterface,
	logger *zap.Logger,
	opts ...EquipmentStatusServiceOption,
) EquipmentStatusServiceInterface {
	s := &EquipmentStatusService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// stamp - момент записи: UTC, усечённый до миллисекунд.
func (s *EquipmentStatusService) stamp() time.Time {
	return s.now().UTC().Truncate(updateDatePrecision)
}

func (s *EquipmentStatusService) CreateStatus(ctx context.Context, payload dto.CreateEquipmentStatusDTO) (*dto.EquipmentStatusDTO, error) {
	if strings.TrimSpace(payload.EquipmentID) == "" {
		return nil, apperrors.NewInvalidInputError("поле equipment_id обязательно")
	}
	if strings.TrimSpace(payload.Status) == "" {
		return nil, apperrors.NewInvalidInputError("поле status обязательно")
	}

	created, err := s.repo.CreateStatus(ctx, entities.EquipmentStatus{
		EquipmentID: payload.EquipmentID,
		Status:      payload.Status,
		UpdateDate:  s.stamp(),
	})
	if err != nil {
		s.logger.Error("ошибка при создании статуса оборудования", zap.Any("payload", payload), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Статус оборудования успешно создан",
		zap.Uint64("id", created.ID),
		zap.String("equipment_id", created.EquipmentID),
		zap.String("status", created.Status),
	)
	res := dto.EquipmentStatusToDTO(*created)
	return &res, nil
}

// GetStatuses возвращает ErrEmpty, если в таблице (с учётом фильтров) нет ни одной строки.
func (s *EquipmentStatusService) GetStatuses(ctx context.Context, filter types.Filter) ([]dto.EquipmentStatusDTO, uint64, error) {
	list, total, err := s.repo.GetStatuses(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, apperrors.ErrEmpty
	}
	return dto.EquipmentStatusesToDTO(list), total, nil
}

func (s *EquipmentStatusService) GetCurrentStatus(ctx context.Context, equipmentID string) (*dto.EquipmentStatusDTO, error) {
	status, err := s.repo.FindLatestByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	res := dto.EquipmentStatusToDTO(*status)
	return &res, nil
}

func (s *EquipmentStatusService) GetHistory(ctx context.Context, equipmentID string) ([]dto.EquipmentStatusDTO, error) {
	history, err := s.repo.FindByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return dto.EquipmentStatusesToDTO(history), nil
}

func (s *EquipmentStatusService) GetCurrentStatuses(ctx context.Context) ([]dto.EquipmentStatusDTO, error) {
	list, err := s.repo.GetCurrentStatuses(ctx)
	if err != nil {
		return nil, err
	}
	return dto.EquipmentStatusesToDTO(list), nil
}

func (s *EquipmentStatusService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateEquipmentStatusDTO) (*dto.EquipmentStatusDTO, error) {
	if strings.TrimSpace(payload.Status) == "" {
		return nil, apperrors.NewInvalidInputError("поле status обязательно")
	}

	updated, err := s.repo.UpdateStatus(ctx, id, payload.Status, s.stamp())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("ошибка при обновлении статуса оборудования", zap.Uint64("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Статус оборудования обновлён", zap.Uint64("id", id), zap.String("status", updated.Status))
	res := dto.EquipmentStatusToDTO(*updated)
	return &res, nil
}

func (s *EquipmentStatusService) UpdateCurrentStatus(ctx context.Context, equipmentID string, payload dto.UpdateEquipmentStatusDTO) (*dto.EquipmentStatusDTO, error) {
	if strings.TrimSpace(payload.Status) == "" {
		return nil, apperrors.NewInvalidInputError("поле status обязательно")
	}

	updated, err := s.repo.UpdateLatestByEquipmentID(ctx, equipmentID, payload.Status, s.stamp())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("ошибка при обновлении текущего статуса", zap.String("equipment_id", equipmentID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Текущий статус оборудования обновлён",
		zap.String("equipment_id", equipmentID),
		zap.Uint64("id", updated.ID),
		zap.String("status", updated.Status),
	)
	res := dto.EquipmentStatusToDTO(*updated)
	return &res, nil
}

func (s *EquipmentStatusService) DeleteStatus(ctx context.Context, id uint64) error {
	if err := s.repo.DeleteStatus(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Статус оборудования удалён", zap.Uint64("id", id))
	return nil
}

func (s *EquipmentStatusService) DeleteHistory(ctx context.Context, equipmentID string) (*dto.DeletedHistoryDTO, error) {
	deleted, err := s.repo.DeleteByEquipmentID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("История оборудования удалена", zap.String("equipment_id", equipmentID), zap.Int64("deleted", deleted))
	return &dto.DeletedHistoryDTO{EquipmentID: equipmentID, Deleted: deleted}, nil
}

func (s *EquipmentStatusService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
