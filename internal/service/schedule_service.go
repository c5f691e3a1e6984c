package service

import (
	"context"
	"strings"

	"schedule-service/internal/model"
	"schedule-service/internal/repository"
	apperrors "schedule-service/pkg/app_errors"
)

type ScheduleService interface {
	List(ctx context.Context, userID int) ([]*model.Schedule, error)
	// Create stamps userID as the owner; the input never carries one.
	Create(ctx context.Context, userID int, in model.CreateScheduleInput) (*model.Schedule, error)
	Update(ctx context.Context, id int, params model.UpdateScheduleParams) (*model.Schedule, error)
	Delete(ctx context.Context, id int) error
}

type ScheduleServiceImpl struct {
	repo repository.ScheduleRepository
}

func NewScheduleService(repo repository.ScheduleRepository) ScheduleService {
	return &ScheduleServiceImpl{repo: repo}
}

func (s *ScheduleServiceImpl) List(ctx context.Context, userID int) ([]*model.Schedule, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ScheduleServiceImpl) Create(ctx context.Context, userID int, in model.CreateScheduleInput) (*model.Schedule, error) {
	// required fields are checked before the store is touched
	if strings.TrimSpace(in.Title) == "" || in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, apperrors.ErrInvalidInput
	}

	schedule := &model.Schedule{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Location:    in.Location,
		Reminder:    in.Reminder,
	}
	return s.repo.Create(ctx, schedule)
}

func (s *ScheduleServiceImpl) Update(ctx context.Context, id int, params model.UpdateScheduleParams) (*model.Schedule, error) {
	return s.repo.Update(ctx, id, params)
}

func (s *ScheduleServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
