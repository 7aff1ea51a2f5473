package handler

import (
	"context"

	"doctor-schedule-service/internal/delivery/dto"
)

// ── Mock DoctorScheduleUsecase ──

// mockScheduleUsecase returns canned values and records the arguments it was called with.
type mockScheduleUsecase struct {
	schedule  *dto.ScheduleResponse
	schedules []dto.ScheduleResponse
	err       error

	lastSlotID   int64
	lastDoctorID int64
	lastCreate   *dto.CreateScheduleRequest
	lastUpdate   *dto.UpdateScheduleRequest
	called       string
}

func (m *mockScheduleUsecase) SaveSchedule(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	m.called, m.lastCreate = "SaveSchedule", req
	return m.schedule, m.err
}

func (m *mockScheduleUsecase) GetSchedule(ctx context.Context, slotID int64) (*dto.ScheduleResponse, error) {
	m.called, m.lastSlotID = "GetSchedule", slotID
	return m.schedule, m.err
}

func (m *mockScheduleUsecase) GetAllSchedules(ctx context.Context) ([]dto.ScheduleResponse, error) {
	m.called = "GetAllSchedules"
	return m.schedules, m.err
}

func (m *mockScheduleUsecase) UpdateSchedule(ctx context.Context, slotID int64, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	m.called, m.lastSlotID, m.lastUpdate = "UpdateSchedule", slotID, req
	return m.schedule, m.err
}

func (m *mockScheduleUsecase) DeleteSchedule(ctx context.Context, slotID int64) (*dto.ScheduleResponse, error) {
	m.called, m.lastSlotID = "DeleteSchedule", slotID
	return m.schedule, m.err
}

func (m *mockScheduleUsecase) GetSchedulesByDoctor(ctx context.Context, doctorID int64) ([]dto.ScheduleResponse, error) {
	m.called, m.lastDoctorID = "GetSchedulesByDoctor", doctorID
	return m.schedules, m.err
}

func (m *mockScheduleUsecase) GetTodayAndUpcomingSchedules(ctx context.Context, doctorID int64) ([]dto.ScheduleResponse, error) {
	m.called, m.lastDoctorID = "GetTodayAndUpcomingSchedules", doctorID
	return m.schedules, m.err
}

func (m *mockScheduleUsecase) GetUpcomingSchedules(ctx context.Context, doctorID int64) ([]dto.ScheduleResponse, error) {
	m.called, m.lastDoctorID = "GetUpcomingSchedules", doctorID
	return m.schedules, m.err
}
