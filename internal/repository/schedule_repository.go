package repository

import (
	"context"
	"fmt"
	"strings"

	"schedule-service/internal/model"
	apperrors "schedule-service/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScheduleRepository interface {
	ListByUser(ctx context.Context, userID int) ([]*model.Schedule, error)
	Create(ctx context.Context, schedule *model.Schedule) (*model.Schedule, error)
	Update(ctx context.Context, id int, params model.UpdateScheduleParams) (*model.Schedule, error)
	Delete(ctx context.Context, id int) error
}

type ScheduleRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) ScheduleRepository {
	return &ScheduleRepositoryImpl{
		pool: pool,
	}
}

func (r *ScheduleRepositoryImpl) Create(ctx context.Context, schedule *model.Schedule) (*model.Schedule, error) {
	query := `
		INSERT INTO schedules (user_id, title, description, start_time, end_time, location, reminder)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, title, description, start_time, end_time, location, reminder
	`
	err := r.pool.QueryRow(ctx, query,
		schedule.UserID, schedule.Title, schedule.Description,
		schedule.StartTime, schedule.EndTime, schedule.Location, schedule.Reminder,
	).Scan(
		&schedule.ID,
		&schedule.UserID,
		&schedule.Title,
		&schedule.Description,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.Location,
		&schedule.Reminder,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return schedule, nil
}

func (r *ScheduleRepositoryImpl) ListByUser(ctx context.Context, userID int) ([]*model.Schedule, error) {
	query := `
		SELECT id, user_id, title, description, start_time, end_time, location, reminder
		FROM schedules
		WHERE user_id = $1
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*model.Schedule, 0)
	for rows.Next() {
		var schedule model.Schedule
		err := rows.Scan(
			&schedule.ID,
			&schedule.UserID,
			&schedule.Title,
			&schedule.Description,
			&schedule.StartTime,
			&schedule.EndTime,
			&schedule.Location,
			&schedule.Reminder,
		)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *ScheduleRepositoryImpl) Update(ctx context.Context, id int, params model.UpdateScheduleParams) (*model.Schedule, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argPos))
		args = append(args, *params.Title)
		argPos++
	}

	if params.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *params.Description)
		argPos++
	}

	if params.StartTime != nil {
		sets = append(sets, fmt.Sprintf("start_time = $%d", argPos))
		args = append(args, *params.StartTime)
		argPos++
	}

	if params.EndTime != nil {
		sets = append(sets, fmt.Sprintf("end_time = $%d", argPos))
		args = append(args, *params.EndTime)
		argPos++
	}

	if params.Location != nil {
		sets = append(sets, fmt.Sprintf("location = $%d", argPos))
		args = append(args, *params.Location)
		argPos++
	}

	if params.Reminder != nil {
		sets = append(sets, fmt.Sprintf("reminder = $%d", argPos))
		args = append(args, *params.Reminder)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE schedules
		SET %s
		WHERE id = $%d
		RETURNING id, user_id, title, description, start_time, end_time, location, reminder
	`, strings.Join(sets, ", "), argPos)

	var schedule model.Schedule

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.UserID,
		&schedule.Title,
		&schedule.Description,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.Location,
		&schedule.Reminder,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, err
	}

	return &schedule, nil
}

func (r *ScheduleRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM schedules
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	// no row matched the id
	if result.RowsAffected() == 0 {
		return apperrors.ErrScheduleNotFound
	}

	return nil
}
