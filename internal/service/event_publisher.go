package service

import (
	"context"

	"doctor-schedule-service/internal/domain/entity"
)

// EventPublisher delivers schedule change events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.ScheduleEvent) error
	Close() error
}

type noopEventPublisher struct{}

// NewNoopEventPublisher returns a publisher that drops every event.
func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) Publish(context.Context, entity.ScheduleEvent) error { return nil }

func (noopEventPublisher) Close() error { return nil }
