package service

import (
	"context"
	"time"

	"doctor-schedule-service/internal/domain/entity"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryScheduleCache is an in-process LRU with per-entry TTL, used when no
// Redis is available. Entries are copied in and out so callers cannot mutate
// cached values.
type MemoryScheduleCache struct {
	slots   *expirable.LRU[int64, entity.DoctorSchedule]
	doctors *expirable.LRU[int64, []entity.DoctorSchedule]
}

func NewMemoryScheduleCache(size int, ttl time.Duration) *MemoryScheduleCache {
	if size <= 0 {
		size = 1024
	}
	return &MemoryScheduleCache{
		slots:   expirable.NewLRU[int64, entity.DoctorSchedule](size, nil, ttl),
		doctors: expirable.NewLRU[int64, []entity.DoctorSchedule](size, nil, ttl),
	}
}

func (c *MemoryScheduleCache) GetSchedule(_ context.Context, slotID int64) (*entity.DoctorSchedule, bool) {
	schedule, ok := c.slots.Get(slotID)
	if !ok {
		return nil, false
	}
	return &schedule, true
}

func (c *MemoryScheduleCache) SetSchedule(_ context.Context, schedule *entity.DoctorSchedule) {
	c.slots.Add(schedule.SlotID, *schedule)
}

func (c *MemoryScheduleCache) GetDoctorSchedules(_ context.Context, doctorID int64) ([]entity.DoctorSchedule, bool) {
	schedules, ok := c.doctors.Get(doctorID)
	if !ok {
		return nil, false
	}
	return append([]entity.DoctorSchedule{}, schedules...), true
}

func (c *MemoryScheduleCache) SetDoctorSchedules(_ context.Context, doctorID int64, schedules []entity.DoctorSchedule) {
	c.doctors.Add(doctorID, append([]entity.DoctorSchedule{}, schedules...))
}

func (c *MemoryScheduleCache) Invalidate(_ context.Context, slotID int64, doctorID int64) {
	c.slots.Remove(slotID)
	c.doctors.Remove(doctorID)
}
