package service

import (
	"context"
	"testing"
	"time"

	"schedule-service/internal/model"
	apperrors "schedule-service/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type scheduleRepositoryMock struct {
	mock.Mock
}

func (m *scheduleRepositoryMock) ListByUser(ctx context.Context, userID int) ([]*model.Schedule, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Schedule), args.Error(1)
}

func (m *scheduleRepositoryMock) Create(ctx context.Context, schedule *model.Schedule) (*model.Schedule, error) {
	args := m.Called(ctx, schedule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Schedule), args.Error(1)
}

func (m *scheduleRepositoryMock) Update(ctx context.Context, id int, params model.UpdateScheduleParams) (*model.Schedule, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Schedule), args.Error(1)
}

func (m *scheduleRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	testStart = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC)
)

func TestScheduleServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("StampsOwner", func(t *testing.T) {
		repo := new(scheduleRepositoryMock)
		svc := NewScheduleService(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Schedule) bool {
			return s.UserID == 42 && s.Title == "Standup"
		})).Return(&model.Schedule{ID: 1, UserID: 42, Title: "Standup", StartTime: testStart, EndTime: testEnd}, nil).Once()

		created, err := svc.Create(ctx, 42, model.CreateScheduleInput{
			Title:     "Standup",
			StartTime: testStart,
			EndTime:   testEnd,
		})
		require.NoError(t, err)
		assert.Equal(t, 42, created.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		repo := new(scheduleRepositoryMock)
		svc := NewScheduleService(repo)

		_, err := svc.Create(ctx, 42, model.CreateScheduleInput{
			StartTime: testStart,
			EndTime:   testEnd,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("BlankTitle", func(t *testing.T) {
		repo := new(scheduleRepositoryMock)
		svc := NewScheduleService(repo)

		_, err := svc.Create(ctx, 42, model.CreateScheduleInput{
			Title:     "   ",
			StartTime: testStart,
			EndTime:   testEnd,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("MissingStartTime", func(t *testing.T) {
		repo := new(scheduleRepositoryMock)
		svc := NewScheduleService(repo)

		_, err := svc.Create(ctx, 42, model.CreateScheduleInput{
			Title:   "Standup",
			EndTime: testEnd,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("MissingEndTime", func(t *testing.T) {
		repo := new(scheduleRepositoryMock)
		svc := NewScheduleService(repo)

		_, err := svc.Create(ctx, 42, model.CreateScheduleInput{
			Title:     "Standup",
			StartTime: testStart,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestScheduleServiceList(t *testing.T) {
	ctx := context.Background()
	repo := new(scheduleRepositoryMock)
	svc := NewScheduleService(repo)

	expected := []*model.Schedule{
		{ID: 1, UserID: 42, Title: "Standup", StartTime: testStart, EndTime: testEnd},
	}
	repo.On("ListByUser", mock.Anything, 42).Return(expected, nil).Once()

	schedules, err := svc.List(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, expected, schedules)
	repo.AssertExpectations(t)
}

func TestScheduleServiceUpdate(t *testing.T) {
	ctx := context.Background()
	repo := new(scheduleRepositoryMock)
	svc := NewScheduleService(repo)

	location := "Room B"
	params := model.UpdateScheduleParams{Location: &location}
	repo.On("Update", mock.Anything, 7, params).Return(nil, apperrors.ErrScheduleNotFound).Once()

	_, err := svc.Update(ctx, 7, params)
	assert.ErrorIs(t, err, apperrors.ErrScheduleNotFound)
	repo.AssertExpectations(t)
}

func TestScheduleServiceDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(scheduleRepositoryMock)
	svc := NewScheduleService(repo)

	repo.On("Delete", mock.Anything, 9).Return(apperrors.ErrScheduleNotFound).Once()

	err := svc.Delete(ctx, 9)
	assert.ErrorIs(t, err, apperrors.ErrScheduleNotFound)
	repo.AssertExpectations(t)
}
