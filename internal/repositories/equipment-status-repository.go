package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"equipment-status/internal/entities"
	db "equipment-status/internal/infrastructure/bd"
	"equipment-status/pkg/database"
	apperrors "equipment-status/pkg/errors"
	"equipment-status/pkg/types"
)

const equipmentStatusTable = "equipment_statuses"

var equipmentStatusFields = []string{"id", "equipment_id", "status", "update_date"}

// Порядок "новые сверху"; при равном времени выше запись с большим id.
var newestFirst = []string{"update_date DESC", "id DESC"}

// Поля, по которым разрешена фильтрация в списке (json -> колонка)
var equipmentStatusFilterMap = map[string]string{
	"equipment_id": "equipment_id",
	"status":       "status",
}

type EquipmentStatusRepositoryInterface interface {
	CreateStatus(ctx context.Context, status entities.EquipmentStatus) (*entities.EquipmentStatus, error)
	GetStatuses(ctx context.Context, filter types.Filter) ([]entities.EquipmentStatus, uint64, error)
	FindStatus(ctx context.Context, id uint64) (*entities.EquipmentStatus, error)
	FindByEquipmentID(ctx context.Context, equipmentID string) ([]entities.EquipmentStatus, error)
	FindLatestByEquipmentID(ctx context.Context, equipmentID string) (*entities.EquipmentStatus, error)
	GetCurrentStatuses(ctx context.Context) ([]entities.EquipmentStatus, error)
	UpdateStatus(ctx context.Context, id uint64, status string, updatedAt time.Time) (*entities.EquipmentStatus, error)
	UpdateLatestByEquipmentID(ctx context.Context, equipmentID, status string, updatedAt time.Time) (*entities.EquipmentStatus, error)
	DeleteStatus(ctx context.Context, id uint64) error
	DeleteByEquipmentID(ctx context.Context, equipmentID string) (int64, error)
	Ping(ctx context.Context) error
}

type EquipmentStatusRepository struct {
	storage *database.Storage
	logger  *zap.Logger
}

func NewEquipmentStatusRepository(storage *database.Storage, logger *zap.Logger) EquipmentStatusRepositoryInterface {
	return &EquipmentStatusRepository{storage: storage, logger: logger}
}

// -----------------------------------------------------------
// SCAN
// -----------------------------------------------------------

func scanEquipmentStatus(row sq.RowScanner) (*entities.EquipmentStatus, error) {
	var s entities.EquipmentStatus
	var updateDate dbTime
	err := row.Scan(&s.ID, &s.EquipmentID, &s.Status, &updateDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipment_status: %w", err)
	}
	s.UpdateDate = updateDate.Time
	return &s, nil
}

func (r *EquipmentStatusRepository) queryList(ctx context.Context, builder sq.SelectBuilder) ([]entities.EquipmentStatus, error) {
	rows, err := builder.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки equipment_statuses: %w", err)
	}
	defer rows.Close()

	list := make([]entities.EquipmentStatus, 0)
	for rows.Next() {
		s, err := scanEquipmentStatus(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

// -----------------------------------------------------------
// CREATE
// -----------------------------------------------------------

func (r *EquipmentStatusRepository) CreateStatus(ctx context.Context, status entities.EquipmentStatus) (*entities.EquipmentStatus, error) {
	row := r.storage.Builder().
		Insert(equipmentStatusTable).
		Columns("equipment_id", "status", "update_date").
		Values(status.EquipmentID, status.Status, status.UpdateDate.UTC()).
		Suffix("RETURNING id, equipment_id, status, update_date").
		QueryRowContext(ctx)

	created, err := scanEquipmentStatus(row)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания статуса оборудования: %w", err)
	}
	return created, nil
}

// -----------------------------------------------------------
// READ
// -----------------------------------------------------------

func (r *EquipmentStatusRepository) GetStatuses(ctx context.Context, filter types.Filter) ([]entities.EquipmentStatus, uint64, error) {
	b := r.storage.Builder()

	countBuilder := db.ApplyFilters(b.Select("COUNT(*)").From(equipmentStatusTable), filter, equipmentStatusFilterMap)
	var total uint64
	if err := countBuilder.QueryRowContext(ctx).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта equipment_statuses: %w", err)
	}
	if total == 0 {
		return []entities.EquipmentStatus{}, 0, nil
	}

	listBuilder := b.Select(equipmentStatusFields...).From(equipmentStatusTable).OrderBy(newestFirst...)
	listBuilder = db.ApplyFilters(listBuilder, filter, equipmentStatusFilterMap)
	listBuilder = db.ApplyPagination(listBuilder, filter)

	list, err := r.queryList(ctx, listBuilder)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *EquipmentStatusRepository) FindStatus(ctx context.Context, id uint64) (*entities.EquipmentStatus, error) {
	row := r.storage.Builder().
		Select(equipmentStatusFields...).
		From(equipmentStatusTable).
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)
	return scanEquipmentStatus(row)
}

func (r *EquipmentStatusRepository) FindByEquipmentID(ctx context.Context, equipmentID string) ([]entities.EquipmentStatus, error) {
	builder := r.storage.Builder().
		Select(equipmentStatusFields...).
		From(equipmentStatusTable).
		Where(sq.Eq{"equipment_id": equipmentID}).
		OrderBy(newestFirst...)
	return r.queryList(ctx, builder)
}

func (r *EquipmentStatusRepository) FindLatestByEquipmentID(ctx context.Context, equipmentID string) (*entities.EquipmentStatus, error) {
	row := r.storage.Builder().
		Select(equipmentStatusFields...).
		From(equipmentStatusTable).
		Where(sq.Eq{"equipment_id": equipmentID}).
		OrderBy(newestFirst...).
		Limit(1).
		QueryRowContext(ctx)
	return scanEquipmentStatus(row)
}

// GetCurrentStatuses возвращает по одной (последней) записи на каждое оборудование.
func (r *EquipmentStatusRepository) GetCurrentStatuses(ctx context.Context) ([]entities.EquipmentStatus, error) {
	builder := r.storage.Builder().
		Select("s.id", "s.equipment_id", "s.status", "s.update_date").
		From(equipmentStatusTable + " s").
		Where(`NOT EXISTS (
			SELECT 1 FROM ` + equipmentStatusTable + ` n
			WHERE n.equipment_id = s.equipment_id
			  AND (n.update_date > s.update_date OR (n.update_date = s.update_date AND n.id > s.id))
		)`).
		OrderBy("s.equipment_id")
	return r.queryList(ctx, builder)
}

// -----------------------------------------------------------
// UPDATE
// -----------------------------------------------------------

func (r *EquipmentStatusRepository) UpdateStatus(ctx context.Context, id uint64, status string, updatedAt time.Time) (*entities.EquipmentStatus, error) {
	row := r.storage.Builder().
		Update(equipmentStatusTable).
		Set("status", status).
		Set("update_date", updatedAt.UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING id, equipment_id, status, update_date").
		QueryRowContext(ctx)
	return scanEquipmentStatus(row)
}

func (r *EquipmentStatusRepository) UpdateLatestByEquipmentID(ctx context.Context, equipmentID, status string, updatedAt time.Time) (*entities.EquipmentStatus, error) {
	row := r.storage.Builder().
		Update(equipmentStatusTable).
		Set("status", status).
		Set("update_date", updatedAt.UTC()).
		Where(sq.Expr(`id = (
			SELECT id FROM `+equipmentStatusTable+`
			WHERE equipment_id = ?
			ORDER BY update_date DESC, id DESC
			LIMIT 1
		)`, equipmentID)).
		Suffix("RETURNING id, equipment_id, status, update_date").
		QueryRowContext(ctx)
	return scanEquipmentStatus(row)
}

// -----------------------------------------------------------
// DELETE
// -----------------------------------------------------------

func (r *EquipmentStatusRepository) DeleteStatus(ctx context.Context, id uint64) error {
	result, err := r.storage.Builder().
		Delete(equipmentStatusTable).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("ошибка удаления статуса оборудования: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения числа удалённых строк: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentStatusRepository) DeleteByEquipmentID(ctx context.Context, equipmentID string) (int64, error) {
	result, err := r.storage.Builder().
		Delete(equipmentStatusTable).
		Where(sq.Eq{"equipment_id": equipmentID}).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления истории оборудования: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения числа удалённых строк: %w", err)
	}
	if affected == 0 {
		return 0, apperrors.ErrNotFound
	}
	r.logger.Debug("История оборудования удалена", zap.String("equipment_id", equipmentID), zap.Int64("rows", affected))
	return affected, nil
}

func (r *EquipmentStatusRepository) Ping(ctx context.Context) error {
	return r.storage.Ping(ctx)
}
