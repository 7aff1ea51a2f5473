package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"doctor-schedule-service/internal/delivery/dto"
	"doctor-schedule-service/internal/usecase"
	"doctor-schedule-service/pkg/response"
	"doctor-schedule-service/pkg/validator"

	"github.com/gorilla/mux"
)

type DoctorScheduleHandler struct {
	scheduleUsecase usecase.DoctorScheduleUsecase
	validator       *validator.CustomValidator
}

func NewDoctorScheduleHandler(scheduleUsecase usecase.DoctorScheduleUsecase, validator *validator.CustomValidator) *DoctorScheduleHandler {
	return &DoctorScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		validator:       validator,
	}
}

func (h *DoctorScheduleHandler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.SaveSchedule(r.Context(), &req)
	if err != nil {
		writeScheduleError(w, err, "Failed to save schedule")
		return
	}

	response.Success(w, http.StatusCreated, "Schedule saved successfully", schedule)
}

func (h *DoctorScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	slotID, ok := pathID(w, r, "slotId", "Invalid slot ID")
	if !ok {
		return
	}

	schedule, err := h.scheduleUsecase.GetSchedule(r.Context(), slotID)
	if err != nil {
		writeScheduleError(w, err, "Failed to get schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule retrieved successfully", schedule)
}

func (h *DoctorScheduleHandler) GetAllSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleUsecase.GetAllSchedules(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get schedules")
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

// UpdateSchedule answers 201 on success, matching the established API contract.
func (h *DoctorScheduleHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	slotID, ok := pathID(w, r, "slotId", "Invalid slot ID")
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	schedule, err := h.scheduleUsecase.UpdateSchedule(r.Context(), slotID, &req)
	if err != nil {
		writeScheduleError(w, err, "Failed to update schedule")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor schedule updated successfully", schedule)
}

func (h *DoctorScheduleHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	slotID, ok := pathID(w, r, "slotId", "Invalid slot ID")
	if !ok {
		return
	}

	schedule, err := h.scheduleUsecase.DeleteSchedule(r.Context(), slotID)
	if err != nil {
		writeScheduleError(w, err, "Failed to delete schedule")
		return
	}

	response.Success(w, http.StatusOK, "Doctor schedule deleted successfully", schedule)
}

func (h *DoctorScheduleHandler) GetSchedulesByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "doctorId", "Invalid doctor ID")
	if !ok {
		return
	}

	schedules, err := h.scheduleUsecase.GetSchedulesByDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get schedules")
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

func (h *DoctorScheduleHandler) GetTodayAndUpcomingSchedules(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "doctorId", "Invalid doctor ID")
	if !ok {
		return
	}

	schedules, err := h.scheduleUsecase.GetTodayAndUpcomingSchedules(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get schedules")
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

func (h *DoctorScheduleHandler) GetUpcomingSchedules(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "doctorId", "Invalid doctor ID")
	if !ok {
		return
	}

	schedules, err := h.scheduleUsecase.GetUpcomingSchedules(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get schedules")
		return
	}

	response.Success(w, http.StatusOK, "Schedules retrieved successfully", schedules)
}

func pathID(w http.ResponseWriter, r *http.Request, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, message)
		return 0, false
	}
	return id, true
}

// writeScheduleError maps usecase errors to status codes. Unclassified errors
// become a 500 carrying only fallback.
func writeScheduleError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrScheduleNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, usecase.ErrScheduleAlreadyExists):
		response.Conflict(w, err.Error())
	case errors.Is(err, usecase.ErrInvalidScheduleDate), errors.Is(err, usecase.ErrInvalidTimeFormat):
		response.BadRequest(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
