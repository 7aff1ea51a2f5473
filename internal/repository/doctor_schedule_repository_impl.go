package repository

import (
	"context"
	"errors"
	"time"

	"doctor-schedule-service/internal/domain/entity"
	domainRepo "doctor-schedule-service/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

type doctorScheduleRepository struct {
	db *gorm.DB
}

func NewDoctorScheduleRepository(db *gorm.DB) domainRepo.DoctorScheduleRepository {
	return &doctorScheduleRepository{db: db}
}

func (r *doctorScheduleRepository) Create(ctx context.Context, schedule *entity.DoctorSchedule) error {
	return translateError(r.db.WithContext(ctx).Create(schedule).Error)
}

func (r *doctorScheduleRepository) FindByID(ctx context.Context, slotID int64) (*entity.DoctorSchedule, error) {
	var schedule entity.DoctorSchedule
	err := r.db.WithContext(ctx).Where("slot_id = ?", slotID).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *doctorScheduleRepository) FindAll(ctx context.Context) ([]entity.DoctorSchedule, error) {
	schedules := []entity.DoctorSchedule{}
	err := r.db.WithContext(ctx).Order("slot_id ASC").Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *doctorScheduleRepository) Update(ctx context.Context, schedule *entity.DoctorSchedule) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(schedule).
		Select("*").
		Omit("slot_id", "doctor_id", "created_at").
		Updates(schedule)
	return result.RowsAffected, translateError(result.Error)
}

func (r *doctorScheduleRepository) Delete(ctx context.Context, slotID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("slot_id = ?", slotID).Delete(&entity.DoctorSchedule{})
	return result.RowsAffected, result.Error
}

func (r *doctorScheduleRepository) FindByDoctorID(ctx context.Context, doctorID int64) ([]entity.DoctorSchedule, error) {
	schedules := []entity.DoctorSchedule{}
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("schedule_date ASC, start_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *doctorScheduleRepository) FindByDoctorIDAndDate(ctx context.Context, doctorID int64, date time.Time) ([]entity.DoctorSchedule, error) {
	schedules := []entity.DoctorSchedule{}
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND schedule_date = ?", doctorID, date.Format(entity.DateLayout)).
		Order("start_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *doctorScheduleRepository) FindByDoctorIDAndDateAndShift(ctx context.Context, doctorID int64, date time.Time, shift string) ([]entity.DoctorSchedule, error) {
	schedules := []entity.DoctorSchedule{}
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND schedule_date = ? AND shift = ?", doctorID, date.Format(entity.DateLayout), shift).
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *doctorScheduleRepository) FindByDoctorIDAndDateAfter(ctx context.Context, doctorID int64, date time.Time) ([]entity.DoctorSchedule, error) {
	schedules := []entity.DoctorSchedule{}
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND schedule_date > ?", doctorID, date.Format(entity.DateLayout)).
		Order("schedule_date ASC, start_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// translateError maps unique-constraint violations to ErrDuplicateSchedule.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainRepo.ErrDuplicateSchedule
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domainRepo.ErrDuplicateSchedule
	}
	return err
}
