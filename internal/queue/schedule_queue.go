package queue

import (
	"context"

	"schedule-service/internal/model"
)

type Delivery struct {
	Data *model.ScheduleMessage
	Ack  func()
	Nack func(requeue bool)
}

// ScheduleQueue decouples the pub/sub push endpoint from the store write.
// Delivery is at-least-once; consumers must tolerate duplicates.
type ScheduleQueue interface {
	Publish(ctx context.Context, msg *model.ScheduleMessage) error
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

// MemoryScheduleQueue is a channel-backed queue used in tests and as a
// fallback when no redis is configured.
type MemoryScheduleQueue struct {
	ch chan *model.ScheduleMessage
}

func NewMemoryScheduleQueue(bufferSize int) *MemoryScheduleQueue {
	return &MemoryScheduleQueue{
		ch: make(chan *model.ScheduleMessage, bufferSize),
	}
}

func (q *MemoryScheduleQueue) Publish(ctx context.Context, msg *model.ScheduleMessage) error {
	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryScheduleQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: msg,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- msg
						}
					},
				}
			}
		}
	}()

	return out, nil
}
