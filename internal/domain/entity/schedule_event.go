package entity

import "time"

type ScheduleEventType string

const (
	ScheduleCreated ScheduleEventType = "schedule.created"
	ScheduleUpdated ScheduleEventType = "schedule.updated"
	ScheduleDeleted ScheduleEventType = "schedule.deleted"
)

// ScheduleEvent is published after a schedule write has been committed.
type ScheduleEvent struct {
	Type       ScheduleEventType `json:"type"`
	SlotID     int64             `json:"slotId"`
	DoctorID   int64             `json:"doctorId"`
	Schedule   *DoctorSchedule   `json:"schedule,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

func NewScheduleEvent(eventType ScheduleEventType, schedule *DoctorSchedule, at time.Time) ScheduleEvent {
	return ScheduleEvent{
		Type:       eventType,
		SlotID:     schedule.SlotID,
		DoctorID:   schedule.DoctorID,
		Schedule:   schedule,
		OccurredAt: at,
	}
}
