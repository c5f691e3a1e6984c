package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"schedule-service/internal/model"
	"schedule-service/internal/queue"
	"schedule-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PubsubHandler accepts pub/sub push deliveries and feeds them into the
// ingest queue. The payload is parsed strictly with encoding/json; anything
// that does not decode is rejected with a non-2xx so the push source can
// apply its dead-letter policy instead of the message vanishing.
type PubsubHandler struct {
	queue queue.ScheduleQueue
}

func NewPubsubHandler(queue queue.ScheduleQueue) *PubsubHandler {
	return &PubsubHandler{queue: queue}
}

func (h *PubsubHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/schedules/pubsub", h.Push)
}

// PushEnvelope is the pub/sub push delivery wrapper.
type PushEnvelope struct {
	Message      *PushMessage `json:"message"`
	Subscription string       `json:"subscription"`
}

type PushMessage struct {
	Data       string            `json:"data"`
	Attributes map[string]string `json:"attributes"`
	MessageID  string            `json:"messageId"`
}

type schedulePayload struct {
	UserID      *int           `json:"user_id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	Location    *string        `json:"location"`
	Reminder    *model.FlexInt `json:"reminder"`
}

func (h *PubsubHandler) Push(c *gin.Context) {
	log := logger.WithComponent("handler").With(zap.String("operation", "Push"))

	var envelope PushEnvelope
	if err := c.ShouldBindJSON(&envelope); err != nil || envelope.Message == nil {
		log.Warn("malformed push envelope")
		c.String(http.StatusBadRequest, "Bad Request: invalid pubsub envelope")
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		log.Warn("push data is not valid base64", zap.String("message_id", envelope.Message.MessageID), zap.Error(err))
		c.String(http.StatusBadRequest, "Bad Request: data is not valid base64")
		return
	}

	var payload schedulePayload
	if err := json.Unmarshal(decoded, &payload); err != nil {
		log.Warn("push payload is not valid JSON", zap.String("message_id", envelope.Message.MessageID), zap.Error(err))
		c.String(http.StatusBadRequest, "Bad Request: payload is not valid JSON")
		return
	}
	if reason := validatePayload(&payload); reason != "" {
		log.Warn("push payload failed validation", zap.String("message_id", envelope.Message.MessageID), zap.String("reason", reason))
		c.String(http.StatusBadRequest, "Bad Request: "+reason)
		return
	}

	// reminder defaults to 0 on this path
	reminder := 0
	if payload.Reminder != nil {
		reminder = int(*payload.Reminder)
	}

	msg := &model.ScheduleMessage{
		MessageID:   envelope.Message.MessageID,
		UserID:      *payload.UserID,
		Title:       payload.Title,
		Description: payload.Description,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		Location:    payload.Location,
		Reminder:    reminder,
	}
	if err := h.queue.Publish(c, msg); err != nil {
		// non-2xx makes the push source redeliver
		log.Error("enqueue failed", zap.String("message_id", envelope.Message.MessageID), zap.Error(err))
		c.String(http.StatusInternalServerError, "enqueue failed")
		return
	}

	c.String(http.StatusOK, "processed")
}

func validatePayload(p *schedulePayload) string {
	switch {
	case p.UserID == nil:
		return "user_id is required"
	case strings.TrimSpace(p.Title) == "":
		return "title is required"
	case p.StartTime.IsZero():
		return "start_time is required"
	case p.EndTime.IsZero():
		return "end_time is required"
	}
	return ""
}
