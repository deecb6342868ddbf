package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-status/internal/dto"
	"equipment-status/internal/entities"
	"equipment-status/internal/repositories"
	"equipment-status/pkg/config"
	"equipment-status/pkg/database"
	apperrors "equipment-status/pkg/errors"
	"equipment-status/pkg/types"
)

// fakeClock выдаёт заданное время и сдвигается на step после каждого вызова.
type fakeClock struct {
	current time.Time
	step    time.Duration
}

func (c *fakeClock) Now() time.Time {
	t := c.current
	c.current = c.current.Add(c.step)
	return t
}

func newTestService(t *testing.T, clock *fakeClock) EquipmentStatusServiceInterface {
	t.Helper()
	cfg := config.Default().Database
	cfg.Path = filepath.Join(t.TempDir(), "service_test.db")

	storage, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	require.NoError(t, storage.Migrate(context.Background(), zap.NewNop()))

	repo := repositories.NewEquipmentStatusRepository(storage, zap.NewNop())
	return NewEquipmentStatusService(repo, zap.NewNop(), WithClock(clock.Now))
}

func TestEquipmentStatusService_CreateStampsServerTime(t *testing.T) {
	// Наносекунды должны быть отброшены до миллисекунд, зона - приведена к UTC
	local := time.FixedZone("UTC+5", 5*3600)
	clock := &fakeClock{current: time.Date(2024, 5, 30, 6, 31, 30, 123456789, local), step: time.Second}
	svc := newTestService(t, clock)

	res, err := svc.CreateStatus(context.Background(), dto.CreateEquipmentStatusDTO{EquipmentID: "E1", Status: "Operational"})
	require.NoError(t, err)

	want := time.Date(2024, 5, 30, 1, 31, 30, 123000000, time.UTC)
	assert.Equal(t, uint64(1), res.ID)
	assert.True(t, want.Equal(res.UpdateDate), "got %v", res.UpdateDate)
	assert.Equal(t, time.UTC, res.UpdateDate.Location())
}

func TestEquipmentStatusService_CreateRejectsBlank(t *testing.T) {
	clock := &fakeClock{current: time.Now(), step: time.Second}
	svc := newTestService(t, clock)
	ctx := context.Background()

	for _, payload := range []dto.CreateEquipmentStatusDTO{
		{EquipmentID: "", Status: "Operational"},
		{EquipmentID: "   ", Status: "Operational"},
		{EquipmentID: "E1", Status: ""},
	} {
		_, err := svc.CreateStatus(ctx, payload)
		var invalid *apperrors.InvalidInputError
		assert.ErrorAs(t, err, &invalid)
	}

	_, _, err := svc.GetStatuses(ctx, types.Filter{})
	assert.ErrorIs(t, err, apperrors.ErrEmpty, "ничего не должно быть сохранено")
}

func TestEquipmentStatusService_CurrentStatusFollowsTime(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Minute}
	svc := newTestService(t, clock)
	ctx := context.Background()

	_, err := svc.CreateStatus(ctx, dto.CreateEquipmentStatusDTO{EquipmentID: "E1", Status: "Operational"})
	require.NoError(t, err)
	second, err := svc.CreateStatus(ctx, dto.CreateEquipmentStatusDTO{EquipmentID: "E1", Status: "Down"})
	require.NoError(t, err)

	current, err := svc.GetCurrentStatus(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
	assert.Equal(t, "Down", current.Status)

	history, err := svc.GetHistory(ctx, "E1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Down", history[0].Status)

	_, err = svc.GetCurrentStatus(ctx, "E2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = svc.GetHistory(ctx, "E2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEquipmentStatusService_UpdateStatus(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Minute}
	svc := newTestService(t, clock)
	ctx := context.Background()

	created, err := svc.CreateStatus(ctx, dto.CreateEquipmentStatusDTO{EquipmentID: "E1", Status: "Operational"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, created.ID, dto.UpdateEquipmentStatusDTO{Status: "Retired"})
	require.NoError(t, err)
	assert.Equal(t, "Retired", updated.Status)
	assert.Equal(t, "E1", updated.EquipmentID)
	assert.True(t, updated.UpdateDate.After(created.UpdateDate))

	_, err = svc.UpdateStatus(ctx, 42, dto.UpdateEquipmentStatusDTO{Status: "Retired"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.UpdateStatus(ctx, created.ID, dto.UpdateEquipmentStatusDTO{Status: " "})
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestEquipmentStatusService_UpdateCurrentAndDeleteHistory(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Minute}
	svc := newTestService(t, clock)
	ctx := context.Background()

	_, err := svc.CreateStatus(ctx, dto.CreateEquipmentStatusDTO{EquipmentID: "E1", Status: "Operational"})
	require.NoError(t, err)
	latest, err := svc.CreateStatus(ctx, dto.CreateEquipmentStatusDTO{EquipmentID: "E1", Status: "Down"})
	require.NoError(t, err)

	updated, err := svc.UpdateCurrentStatus(ctx, "E1", dto.UpdateEquipmentStatusDTO{Status: "Repaired"})
	require.NoError(t, err)
	assert.Equal(t, latest.ID, updated.ID)

	_, err = svc.UpdateCurrentStatus(ctx, "E404", dto.UpdateEquipmentStatusDTO{Status: "Repaired"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	deleted, err := svc.DeleteHistory(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted.Deleted)

	_, err = svc.DeleteHistory(ctx, "E1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEquipmentStatusService_DeleteStatus(t *testing.T) {
	clock := &fakeClock{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: time.Minute}
	svc := newTestService(t, clock)
	ctx := context.Background()

	created, err := svc.CreateStatus(ctx, dto.CreateEquipmentStatusDTO{EquipmentID: "E1", Status: "Operational"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStatus(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteStatus(ctx, created.ID), apperrors.ErrNotFound)

	_, err = svc.GetCurrentStatus(ctx, "E1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// brokenRepository имитирует недоступное хранилище.
type brokenRepository struct {
	repositories.EquipmentStatusRepositoryInterface
	err error
}

func (r brokenRepository) CreateStatus(context.Context, entities.EquipmentStatus) (*entities.EquipmentStatus, error) {
	return nil, r.err
}

func (r brokenRepository) GetStatuses(context.Context, types.Filter) ([]entities.EquipmentStatus, uint64, error) {
	return nil, 0, r.err
}

func TestEquipmentStatusService_StorageErrorsPassThrough(t *testing.T) {
	storageErr := errors.New("database is locked")
	svc := NewEquipmentStatusService(brokenRepository{err: storageErr}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateStatus(ctx, dto.CreateEquipmentStatusDTO{EquipmentID: "E1", Status: "Operational"})
	assert.ErrorIs(t, err, storageErr)

	_, _, err = svc.GetStatuses(ctx, types.Filter{})
	assert.ErrorIs(t, err, storageErr)
	assert.NotErrorIs(t, err, apperrors.ErrEmpty)
}
