package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"schedule-service/internal/middleware"
	"schedule-service/internal/model"
	"schedule-service/internal/service"
	apperrors "schedule-service/pkg/app_errors"
	"schedule-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	service service.ScheduleService
}

func NewScheduleHandler(service service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

func (h *ScheduleHandler) RegisterRoutes(r *gin.Engine, authGate gin.HandlerFunc) {
	router := r.Group("/schedules", authGate)
	{
		router.GET("", h.List)
		router.POST("", h.Create)
		router.PUT(":id", h.Update)
		router.DELETE(":id", h.Delete)
	}
}

type CreateScheduleRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	Location    *string        `json:"location"`
	Reminder    *model.FlexInt `json:"reminder"`
}

type UpdateScheduleRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	StartTime   *time.Time     `json:"start_time"`
	EndTime     *time.Time     `json:"end_time"`
	Location    *string        `json:"location"`
	Reminder    *model.FlexInt `json:"reminder"`
}

func (r *UpdateScheduleRequest) empty() bool {
	return r.Title == nil && r.Description == nil && r.StartTime == nil &&
		r.EndTime == nil && r.Location == nil && r.Reminder == nil
}

func (h *ScheduleHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	schedules, err := h.service.List(c, userID)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}

	responses := make([]model.ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		responses = append(responses, model.NewScheduleResponse(s))
	}
	c.JSON(http.StatusOK, responses)
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	// the raw body is kept because the response echoes it back verbatim
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var req CreateScheduleRequest
	if err := json.Unmarshal(body, &req); err != nil {
		if errors.Is(err, apperrors.ErrInvalidReminder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrInvalidReminder.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	_, err = h.service.Create(c, userID, model.CreateScheduleInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Reminder:    req.Reminder.IntPtr(),
	})
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Schedule saved",
		"schedule": json.RawMessage(body),
	})
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule id"})
		return
	}

	var req UpdateScheduleRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if req.empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one field is required"})
		return
	}

	params := model.UpdateScheduleParams{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Reminder:    req.Reminder.IntPtr(),
	}
	_, err = h.service.Update(c, id, params)
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule updated"})
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule id"})
		return
	}

	if err := h.service.Delete(c, id); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted"})
}

func (h *ScheduleHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrScheduleNotFound):
		log.Warn("Schedule not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrInvalidReminder):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
