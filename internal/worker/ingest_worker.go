package worker

import (
	"context"
	"errors"

	"schedule-service/internal/cache"
	"schedule-service/internal/model"
	"schedule-service/internal/queue"
	"schedule-service/internal/service"
	apperrors "schedule-service/pkg/app_errors"
	"schedule-service/pkg/logger"

	"go.uber.org/zap"
)

type IngestWorker interface {
	Start(ctx context.Context) error
}

type IngestWorkerImpl struct {
	service service.ScheduleService
	queue   queue.ScheduleQueue
	dedup   cache.MessageDeduplicator
}

func NewIngestWorker(service service.ScheduleService, queue queue.ScheduleQueue, dedup cache.MessageDeduplicator) IngestWorker {
	return &IngestWorkerImpl{
		service: service,
		queue:   queue,
		dedup:   dedup,
	}
}

func (w *IngestWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		log := logger.WithComponent("worker")
		for msg := range msgs {
			w.handle(ctx, log, msg)
		}
	}()
	return nil
}

func (w *IngestWorkerImpl) handle(ctx context.Context, log *zap.Logger, msg queue.Delivery) {
	m := msg.Data

	// duplicate deliveries of the same pub/sub message ack without a
	// second row
	if m.MessageID != "" {
		first, err := w.dedup.FirstDelivery(ctx, m.MessageID)
		if err != nil {
			// dedup is best effort; prefer a duplicate row over a drop
			log.Warn("dedup check failed", zap.String("message_id", m.MessageID), zap.Error(err))
		} else if !first {
			log.Info("duplicate delivery, skipping", zap.String("message_id", m.MessageID))
			msg.Ack()
			return
		}
	}

	reminder := m.Reminder
	_, err := w.service.Create(ctx, m.UserID, model.CreateScheduleInput{
		Title:       m.Title,
		Description: m.Description,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Location:    m.Location,
		Reminder:    &reminder,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			// retrying cannot fix a bad payload
			log.Warn("dropping invalid schedule message", zap.String("message_id", m.MessageID), zap.Error(err))
			msg.Ack()
			return
		}
		// transient store failure: clear the dedup mark and requeue
		if m.MessageID != "" {
			if ferr := w.dedup.Forget(ctx, m.MessageID); ferr != nil {
				log.Warn("dedup forget failed", zap.String("message_id", m.MessageID), zap.Error(ferr))
			}
		}
		log.Error("create schedule failed, requeueing", zap.String("message_id", m.MessageID), zap.Error(err))
		msg.Nack(true)
		return
	}

	msg.Ack()
}
