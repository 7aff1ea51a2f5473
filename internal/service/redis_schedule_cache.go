package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"doctor-schedule-service/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Timeout for individual Redis operations
const redisCacheTimeout = 2 * time.Second

// RedisScheduleCache stores JSON-encoded schedules under
// schedule:slot:{id} and schedule:doctor:{id}.
type RedisScheduleCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewRedisScheduleCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *RedisScheduleCache {
	return &RedisScheduleCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func (c *RedisScheduleCache) GetSchedule(ctx context.Context, slotID int64) (*entity.DoctorSchedule, bool) {
	var schedule entity.DoctorSchedule
	if !c.get(ctx, slotKey(slotID), &schedule) {
		return nil, false
	}
	return &schedule, true
}

func (c *RedisScheduleCache) SetSchedule(ctx context.Context, schedule *entity.DoctorSchedule) {
	c.set(ctx, slotKey(schedule.SlotID), schedule)
}

func (c *RedisScheduleCache) GetDoctorSchedules(ctx context.Context, doctorID int64) ([]entity.DoctorSchedule, bool) {
	var schedules []entity.DoctorSchedule
	if !c.get(ctx, doctorKey(doctorID), &schedules) {
		return nil, false
	}
	if schedules == nil {
		schedules = []entity.DoctorSchedule{}
	}
	return schedules, true
}

func (c *RedisScheduleCache) SetDoctorSchedules(ctx context.Context, doctorID int64, schedules []entity.DoctorSchedule) {
	c.set(ctx, doctorKey(doctorID), schedules)
}

func (c *RedisScheduleCache) Invalidate(ctx context.Context, slotID int64, doctorID int64) {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := c.redisClient.Del(ctx, slotKey(slotID), doctorKey(doctorID)).Err(); err != nil {
		c.log.Warnf("Failed to invalidate cache for slot %d / doctor %d: %+v", slotID, doctorID, err)
	}
}

func (c *RedisScheduleCache) get(ctx context.Context, key string, dest interface{}) bool {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	data, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read cache key %s: %+v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warnf("Failed to decode cache key %s: %+v", key, err)
		return false
	}
	return true
}

func (c *RedisScheduleCache) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warnf("Failed to encode cache key %s: %+v", key, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	if err := c.redisClient.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write cache key %s: %+v", key, err)
	}
}
