package repository

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"schedule-service/config"
	"schedule-service/internal/database"
	"schedule-service/internal/model"
	apperrors "schedule-service/pkg/app_errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *pgxpool.Pool

const testSchema = `
	CREATE TABLE IF NOT EXISTS schedules (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		location TEXT,
		reminder INTEGER
	)
`

func TestMain(m *testing.M) {
	cfg := config.LoadTestConfig()

	var err error
	testDB, err = database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Printf("test database unavailable, skipping repository tests: %v", err)
		os.Exit(0)
	}

	if _, err := testDB.Exec(context.Background(), testSchema); err != nil {
		log.Fatalf("Failed to create test schema: %v", err)
	}

	code := m.Run()
	testDB.Close()
	os.Exit(code)
}

func setupTestWithTruncate(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(context.Background(), "TRUNCATE schedules RESTART IDENTITY")
	if err != nil {
		t.Fatalf("Failed to truncate schedules: %v", err)
	}
}

func createTestSchedule(t *testing.T, repo ScheduleRepository, userID int, title string) *model.Schedule {
	t.Helper()
	created, err := repo.Create(context.Background(), &model.Schedule{
		UserID:    userID,
		Title:     title,
		StartTime: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Failed to create test schedule: %v", err)
	}
	return created
}

func TestCreateAndListByUser(t *testing.T) {
	setupTestWithTruncate(t)
	ctx := context.Background()
	repo := NewScheduleRepository(testDB)

	reminder := 5
	created, err := repo.Create(ctx, &model.Schedule{
		UserID:    1,
		Title:     "Standup",
		StartTime: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
		Reminder:  &reminder,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// another user's schedule must never show up in user 1's list
	createTestSchedule(t, repo, 2, "Other user's meeting")

	schedules, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Equal(t, "Standup", schedules[0].Title)
	assert.Equal(t, 1, schedules[0].UserID)
	require.NotNil(t, schedules[0].Reminder)
	assert.Equal(t, 5, *schedules[0].Reminder)
}

func TestListByUserEmpty(t *testing.T) {
	setupTestWithTruncate(t)
	repo := NewScheduleRepository(testDB)

	schedules, err := repo.ListByUser(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestUpdatePartial(t *testing.T) {
	setupTestWithTruncate(t)
	ctx := context.Background()
	repo := NewScheduleRepository(testDB)

	created := createTestSchedule(t, repo, 1, "Standup")
	require.Nil(t, created.Location)

	location := "Room B"
	updated, err := repo.Update(ctx, created.ID, model.UpdateScheduleParams{
		Location: &location,
	})
	require.NoError(t, err)

	// only the supplied field changes
	assert.Equal(t, "Room B", *updated.Location)
	assert.Equal(t, created.Title, updated.Title)
	assert.True(t, created.StartTime.Equal(updated.StartTime))
	assert.True(t, created.EndTime.Equal(updated.EndTime))
	assert.Equal(t, created.Reminder, updated.Reminder)
}

func TestUpdateNotFound(t *testing.T) {
	setupTestWithTruncate(t)
	repo := NewScheduleRepository(testDB)

	title := "New title"
	_, err := repo.Update(context.Background(), 999, model.UpdateScheduleParams{Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrScheduleNotFound)
}

func TestUpdateNoFields(t *testing.T) {
	setupTestWithTruncate(t)
	repo := NewScheduleRepository(testDB)

	created := createTestSchedule(t, repo, 1, "Standup")
	_, err := repo.Update(context.Background(), created.ID, model.UpdateScheduleParams{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	setupTestWithTruncate(t)
	ctx := context.Background()
	repo := NewScheduleRepository(testDB)

	created := createTestSchedule(t, repo, 1, "Standup")
	require.NoError(t, repo.Delete(ctx, created.ID))

	schedules, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestDeleteNotFound(t *testing.T) {
	setupTestWithTruncate(t)
	repo := NewScheduleRepository(testDB)

	err := repo.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrScheduleNotFound)
}
