package converter

import (
	"doctor-schedule-service/internal/delivery/dto"
	"doctor-schedule-service/internal/domain/entity"
)

// ScheduleToResponse converts a DoctorSchedule entity to ScheduleResponse DTO
func ScheduleToResponse(schedule *entity.DoctorSchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	return &dto.ScheduleResponse{
		SlotID:              schedule.SlotID,
		DoctorID:            schedule.DoctorID,
		Date:                schedule.ScheduleDate.Format(entity.DateLayout),
		StartTime:           schedule.StartTime,
		EndTime:             schedule.EndTime,
		TypeAvailability:    schedule.TypeAvailability,
		AddressAvailability: schedule.AddressAvailability,
		Shift:               schedule.Shift,
	}
}

// SchedulesToResponses keeps the input order and never returns nil.
func SchedulesToResponses(schedules []entity.DoctorSchedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i := range schedules {
		responses[i] = *ScheduleToResponse(&schedules[i])
	}
	return responses
}
