package apperrors

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidReminder  = errors.New("reminder must be an integer")
)
