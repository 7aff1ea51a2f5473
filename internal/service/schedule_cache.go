package service

import (
	"context"
	"fmt"

	"doctor-schedule-service/internal/domain/entity"
)

const (
	RedisSlotKeyPrefix   = "schedule:slot:"
	RedisDoctorKeyPrefix = "schedule:doctor:"
)

// ScheduleCache is a read-through cache in front of the schedule store.
// Implementations must be safe for concurrent use. Misses and backend
// failures are both reported as a miss; callers fall back to the store.
type ScheduleCache interface {
	GetSchedule(ctx context.Context, slotID int64) (*entity.DoctorSchedule, bool)
	SetSchedule(ctx context.Context, schedule *entity.DoctorSchedule)
	GetDoctorSchedules(ctx context.Context, doctorID int64) ([]entity.DoctorSchedule, bool)
	SetDoctorSchedules(ctx context.Context, doctorID int64, schedules []entity.DoctorSchedule)
	Invalidate(ctx context.Context, slotID int64, doctorID int64)
}

func slotKey(slotID int64) string {
	return fmt.Sprintf("%s%d", RedisSlotKeyPrefix, slotID)
}

func doctorKey(doctorID int64) string {
	return fmt.Sprintf("%s%d", RedisDoctorKeyPrefix, doctorID)
}

type noopScheduleCache struct{}

// NewNoopScheduleCache returns a cache that never hits.
func NewNoopScheduleCache() ScheduleCache {
	return noopScheduleCache{}
}

func (noopScheduleCache) GetSchedule(context.Context, int64) (*entity.DoctorSchedule, bool) {
	return nil, false
}

func (noopScheduleCache) SetSchedule(context.Context, *entity.DoctorSchedule) {}

func (noopScheduleCache) GetDoctorSchedules(context.Context, int64) ([]entity.DoctorSchedule, bool) {
	return nil, false
}

func (noopScheduleCache) SetDoctorSchedules(context.Context, int64, []entity.DoctorSchedule) {}

func (noopScheduleCache) Invalidate(context.Context, int64, int64) {}
