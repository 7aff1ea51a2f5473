package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"doctor-schedule-service/internal/converter"
	"doctor-schedule-service/internal/delivery/dto"
	"doctor-schedule-service/internal/domain/entity"
	"doctor-schedule-service/internal/domain/repository"
	"doctor-schedule-service/internal/service"
	"doctor-schedule-service/pkg/validator"

	"github.com/sirupsen/logrus"
)

var (
	ErrScheduleNotFound      = errors.New("schedule not found")
	ErrScheduleAlreadyExists = errors.New("schedule already exists")
	ErrInvalidScheduleDate   = errors.New("invalid schedule date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat     = errors.New("invalid time format, use HH:MM or HH:MM:SS")
)

type DoctorScheduleUsecase interface {
	SaveSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, slotID int64) (*dto.ScheduleResponse, error)
	GetAllSchedules(ctx context.Context) ([]dto.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, slotID int64, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, slotID int64) (*dto.ScheduleResponse, error)
	GetSchedulesByDoctor(ctx context.Context, doctorID int64) ([]dto.ScheduleResponse, error)
	GetTodayAndUpcomingSchedules(ctx context.Context, doctorID int64) ([]dto.ScheduleResponse, error)
	GetUpcomingSchedules(ctx context.Context, doctorID int64) ([]dto.ScheduleResponse, error)
}

type doctorScheduleUsecase struct {
	log          *logrus.Logger
	scheduleRepo repository.DoctorScheduleRepository
	cache        service.ScheduleCache
	publisher    service.EventPublisher
	now          func() time.Time

	// fillMu orders cache fills against invalidation. A fill is dropped when a
	// write bumped writeGen while the store read was in flight.
	fillMu   sync.RWMutex
	writeGen uint64
}

func NewDoctorScheduleUsecase(
	log *logrus.Logger,
	scheduleRepo repository.DoctorScheduleRepository,
	cache service.ScheduleCache,
	publisher service.EventPublisher,
) DoctorScheduleUsecase {
	if cache == nil {
		cache = service.NewNoopScheduleCache()
	}
	if publisher == nil {
		publisher = service.NewNoopEventPublisher()
	}
	return &doctorScheduleUsecase{
		log:          log,
		scheduleRepo: scheduleRepo,
		cache:        cache,
		publisher:    publisher,
		now:          time.Now,
	}
}

// SaveSchedule creates a slot unless the doctor already has one for the same date and shift.
// A concurrent insert that slips past the lookup is rejected by the table constraint
// and reported as the same ErrScheduleAlreadyExists.
func (u *doctorScheduleUsecase) SaveSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	scheduleDate, startTime, endTime, err := parseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	existing, err := u.scheduleRepo.FindByDoctorIDAndDateAndShift(ctx, req.DoctorID, scheduleDate, req.Shift)
	if err != nil {
		u.log.Warnf("Failed to check existing schedules: %+v", err)
		return nil, err
	}
	if len(existing) > 0 {
		return nil, alreadyExists(scheduleDate, req.Shift)
	}

	schedule := &entity.DoctorSchedule{
		DoctorID:            req.DoctorID,
		ScheduleDate:        scheduleDate,
		StartTime:           startTime,
		EndTime:             endTime,
		TypeAvailability:    req.TypeAvailability,
		AddressAvailability: req.AddressAvailability,
		Shift:               req.Shift,
	}

	if err := u.scheduleRepo.Create(ctx, schedule); err != nil {
		if errors.Is(err, repository.ErrDuplicateSchedule) {
			return nil, alreadyExists(scheduleDate, req.Shift)
		}
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	u.log.Infof("Schedule created: slot=%d, doctor=%d, date=%s, shift=%s",
		schedule.SlotID, schedule.DoctorID, req.Date, schedule.Shift)
	u.afterWrite(ctx, entity.ScheduleCreated, schedule)

	return converter.ScheduleToResponse(schedule), nil
}

func (u *doctorScheduleUsecase) GetSchedule(ctx context.Context, slotID int64) (*dto.ScheduleResponse, error) {
	schedule, err := u.findSchedule(ctx, slotID)
	if err != nil {
		return nil, err
	}
	return converter.ScheduleToResponse(schedule), nil
}

func (u *doctorScheduleUsecase) GetAllSchedules(ctx context.Context) ([]dto.ScheduleResponse, error) {
	schedules, err := u.scheduleRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all schedules: %+v", err)
		return nil, err
	}
	return converter.SchedulesToResponses(schedules), nil
}

// UpdateSchedule replaces date, times, availability and shift. DoctorID never changes.
func (u *doctorScheduleUsecase) UpdateSchedule(ctx context.Context, slotID int64, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	scheduleDate, startTime, endTime, err := parseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	schedule, err := u.scheduleRepo.FindByID(ctx, slotID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", slotID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: no schedule with slot id %d", ErrScheduleNotFound, slotID)
	}

	schedule.ScheduleDate = scheduleDate
	schedule.StartTime = startTime
	schedule.EndTime = endTime
	schedule.TypeAvailability = req.TypeAvailability
	schedule.AddressAvailability = req.AddressAvailability
	schedule.Shift = req.Shift

	affected, err := u.scheduleRepo.Update(ctx, schedule)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSchedule) {
			return nil, alreadyExists(scheduleDate, req.Shift)
		}
		u.log.Warnf("Failed to update schedule %d: %+v", slotID, err)
		return nil, err
	}
	if affected == 0 {
		// deleted by someone else between the lookup and the update
		return nil, fmt.Errorf("%w: no schedule with slot id %d", ErrScheduleNotFound, slotID)
	}

	u.log.Infof("Schedule updated: slot=%d, doctor=%d", schedule.SlotID, schedule.DoctorID)
	u.afterWrite(ctx, entity.ScheduleUpdated, schedule)

	return converter.ScheduleToResponse(schedule), nil
}

// DeleteSchedule removes the slot and returns it as it was before deletion.
func (u *doctorScheduleUsecase) DeleteSchedule(ctx context.Context, slotID int64) (*dto.ScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(ctx, slotID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", slotID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: no schedule with slot id %d", ErrScheduleNotFound, slotID)
	}

	affected, err := u.scheduleRepo.Delete(ctx, slotID)
	if err != nil {
		u.log.Warnf("Failed to delete schedule %d: %+v", slotID, err)
		return nil, err
	}
	if affected == 0 {
		// deleted by someone else between the lookup and the delete
		return nil, fmt.Errorf("%w: no schedule with slot id %d", ErrScheduleNotFound, slotID)
	}

	u.log.Infof("Schedule deleted: slot=%d, doctor=%d", schedule.SlotID, schedule.DoctorID)
	u.afterWrite(ctx, entity.ScheduleDeleted, schedule)

	return converter.ScheduleToResponse(schedule), nil
}

func (u *doctorScheduleUsecase) GetSchedulesByDoctor(ctx context.Context, doctorID int64) ([]dto.ScheduleResponse, error) {
	if schedules, ok := u.cache.GetDoctorSchedules(ctx, doctorID); ok {
		return converter.SchedulesToResponses(schedules), nil
	}

	gen := u.generation()
	schedules, err := u.scheduleRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find schedules for doctor %d: %+v", doctorID, err)
		return nil, err
	}
	u.fill(gen, func() { u.cache.SetDoctorSchedules(ctx, doctorID, schedules) })

	return converter.SchedulesToResponses(schedules), nil
}

// GetTodayAndUpcomingSchedules returns the upcoming schedules (date then start
// time ascending) followed by today's schedules. Consumers rely on this order;
// it is not a chronological merge.
func (u *doctorScheduleUsecase) GetTodayAndUpcomingSchedules(ctx context.Context, doctorID int64) ([]dto.ScheduleResponse, error) {
	today := u.today()

	todays, err := u.scheduleRepo.FindByDoctorIDAndDate(ctx, doctorID, today)
	if err != nil {
		u.log.Warnf("Failed to find today's schedules for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	upcoming, err := u.scheduleRepo.FindByDoctorIDAndDateAfter(ctx, doctorID, today)
	if err != nil {
		u.log.Warnf("Failed to find upcoming schedules for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	combined := make([]entity.DoctorSchedule, 0, len(upcoming)+len(todays))
	combined = append(combined, upcoming...)
	combined = append(combined, todays...)

	return converter.SchedulesToResponses(combined), nil
}

func (u *doctorScheduleUsecase) GetUpcomingSchedules(ctx context.Context, doctorID int64) ([]dto.ScheduleResponse, error) {
	upcoming, err := u.scheduleRepo.FindByDoctorIDAndDateAfter(ctx, doctorID, u.today())
	if err != nil {
		u.log.Warnf("Failed to find upcoming schedules for doctor %d: %+v", doctorID, err)
		return nil, err
	}
	return converter.SchedulesToResponses(upcoming), nil
}

func (u *doctorScheduleUsecase) findSchedule(ctx context.Context, slotID int64) (*entity.DoctorSchedule, error) {
	if schedule, ok := u.cache.GetSchedule(ctx, slotID); ok {
		return schedule, nil
	}

	gen := u.generation()
	schedule, err := u.scheduleRepo.FindByID(ctx, slotID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", slotID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: no schedule with slot id %d", ErrScheduleNotFound, slotID)
	}
	u.fill(gen, func() { u.cache.SetSchedule(ctx, schedule) })

	return schedule, nil
}

func (u *doctorScheduleUsecase) generation() uint64 {
	u.fillMu.RLock()
	defer u.fillMu.RUnlock()
	return u.writeGen
}

// fill stores a freshly read value unless a write landed since gen was taken.
// Writes from other instances are not seen here; their staleness is bounded by the cache TTL.
func (u *doctorScheduleUsecase) fill(gen uint64, set func()) {
	u.fillMu.RLock()
	defer u.fillMu.RUnlock()
	if u.writeGen != gen {
		return
	}
	set()
}

// today is midnight of the current date in the server's local calendar.
func (u *doctorScheduleUsecase) today() time.Time {
	now := u.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// afterWrite drops stale cache entries and publishes the change. Neither step
// can fail the request: the write is already committed.
func (u *doctorScheduleUsecase) afterWrite(ctx context.Context, eventType entity.ScheduleEventType, schedule *entity.DoctorSchedule) {
	u.fillMu.Lock()
	u.writeGen++
	u.cache.Invalidate(ctx, schedule.SlotID, schedule.DoctorID)
	u.fillMu.Unlock()

	event := entity.NewScheduleEvent(eventType, schedule, u.now())
	if err := u.publisher.Publish(ctx, event); err != nil {
		u.log.Warnf("Failed to publish %s for slot %d: %+v", eventType, schedule.SlotID, err)
	}
}

func alreadyExists(date time.Time, shift string) error {
	return fmt.Errorf("%w for date %s and shift %s", ErrScheduleAlreadyExists, date.Format(entity.DateLayout), shift)
}

// parseSlot validates the date and normalises both times to HH:MM:SS.
func parseSlot(date, start, end string) (time.Time, string, string, error) {
	scheduleDate, err := time.Parse(entity.DateLayout, date)
	if err != nil {
		return time.Time{}, "", "", ErrInvalidScheduleDate
	}

	startTime, ok := validator.ParseAny(start, validator.TimeLayouts)
	if !ok {
		return time.Time{}, "", "", ErrInvalidTimeFormat
	}
	endTime, ok := validator.ParseAny(end, validator.TimeLayouts)
	if !ok {
		return time.Time{}, "", "", ErrInvalidTimeFormat
	}

	return scheduleDate, startTime.Format(entity.TimeLayout), endTime.Format(entity.TimeLayout), nil
}
