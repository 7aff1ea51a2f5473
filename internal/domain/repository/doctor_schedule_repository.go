package repository

import (
	"context"
	"errors"
	"time"

	"doctor-schedule-service/internal/domain/entity"
)

// ErrDuplicateSchedule is returned when a write collides with an existing
// (doctor, date, shift) triple.
var ErrDuplicateSchedule = errors.New("duplicate doctor schedule")

// DoctorScheduleRepository lookups return (nil, nil) or an empty slice when nothing matches.
type DoctorScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.DoctorSchedule) error
	FindByID(ctx context.Context, slotID int64) (*entity.DoctorSchedule, error)
	FindAll(ctx context.Context) ([]entity.DoctorSchedule, error)
	// Update rewrites the mutable columns of an existing row and reports rows affected.
	// It never inserts.
	Update(ctx context.Context, schedule *entity.DoctorSchedule) (int64, error)
	Delete(ctx context.Context, slotID int64) (int64, error)
	FindByDoctorID(ctx context.Context, doctorID int64) ([]entity.DoctorSchedule, error)
	FindByDoctorIDAndDate(ctx context.Context, doctorID int64, date time.Time) ([]entity.DoctorSchedule, error)
	FindByDoctorIDAndDateAndShift(ctx context.Context, doctorID int64, date time.Time, shift string) ([]entity.DoctorSchedule, error)
	// FindByDoctorIDAndDateAfter returns schedules strictly after date, ordered by date then start time.
	FindByDoctorIDAndDateAfter(ctx context.Context, doctorID int64, date time.Time) ([]entity.DoctorSchedule, error)
}
