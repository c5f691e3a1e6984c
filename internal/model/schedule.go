package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	apperrors "schedule-service/pkg/app_errors"
)

// Schedule is a calendar entry owned by a single user. Reminder is the
// number of minutes before StartTime; nil means no reminder was set.
type Schedule struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	StartTime   time.Time `json:"start_time" db:"start_time"`
	EndTime     time.Time `json:"end_time" db:"end_time"`
	Location    *string   `json:"location,omitempty" db:"location"`
	Reminder    *int      `json:"reminder,omitempty" db:"reminder"`
}

// UpdateScheduleParams carries the fields of a partial update; nil fields
// are left untouched in the store.
type UpdateScheduleParams struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Location    *string
	Reminder    *int
}

// CreateScheduleInput is what both write paths (HTTP and queue ingestion)
// hand to the service; the owner id travels separately.
type CreateScheduleInput struct {
	Title       string
	Description *string
	StartTime   time.Time
	EndTime     time.Time
	Location    *string
	Reminder    *int
}

// FlexInt accepts a JSON number or a numeric string. Clients historically
// sent reminder both ways.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return apperrors.ErrInvalidReminder
		}
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return apperrors.ErrInvalidReminder
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return apperrors.ErrInvalidReminder
	}
	*f = FlexInt(n)
	return nil
}

func (f *FlexInt) IntPtr() *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// ScheduleResponse is the list serialization. Reminder goes out as text
// (empty when unset) to match the original API surface.
type ScheduleResponse struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    *string   `json:"location"`
	Reminder    string    `json:"reminder"`
}

func NewScheduleResponse(s *Schedule) ScheduleResponse {
	reminder := ""
	if s.Reminder != nil {
		reminder = strconv.Itoa(*s.Reminder)
	}
	return ScheduleResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		Title:       s.Title,
		Description: s.Description,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		Location:    s.Location,
		Reminder:    reminder,
	}
}

// ScheduleMessage is the ingest queue payload. MessageID is the pub/sub
// message id and drives duplicate suppression; UserID comes from the payload
// because no authenticated caller exists on this path.
type ScheduleMessage struct {
	MessageID   string    `json:"message_id"`
	UserID      int       `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    *string   `json:"location,omitempty"`
	Reminder    int       `json:"reminder"`
}
