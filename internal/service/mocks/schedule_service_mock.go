package mocks

import (
	"context"

	"schedule-service/internal/model"

	"github.com/stretchr/testify/mock"
)

type ScheduleServiceMock struct {
	mock.Mock
}

func NewScheduleServiceMock() *ScheduleServiceMock {
	return &ScheduleServiceMock{}
}

func (m *ScheduleServiceMock) List(ctx context.Context, userID int) ([]*model.Schedule, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Schedule), args.Error(1)
}

func (m *ScheduleServiceMock) Create(ctx context.Context, userID int, in model.CreateScheduleInput) (*model.Schedule, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Schedule), args.Error(1)
}

func (m *ScheduleServiceMock) Update(ctx context.Context, id int, params model.UpdateScheduleParams) (*model.Schedule, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Schedule), args.Error(1)
}

func (m *ScheduleServiceMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
