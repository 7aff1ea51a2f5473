package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"doctor-schedule-service/internal/delivery/dto"
	"doctor-schedule-service/internal/usecase"
	"doctor-schedule-service/pkg/validator"

	"github.com/gorilla/mux"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func setupHandler() (*DoctorScheduleHandler, *mockScheduleUsecase) {
	uc := &mockScheduleUsecase{}
	return NewDoctorScheduleHandler(uc, validator.NewValidator()), uc
}

func serve(h http.HandlerFunc, method, body string, vars map[string]string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rec := httptest.NewRecorder()
	h(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

const validBody = `{"doctorId":7,"date":"2024-01-15","startTime":"09:00","endTime":"12:00","typeAvailability":"available","addressAvailability":"Clinic A","shift":"morning"}`

var sample = &dto.ScheduleResponse{
	SlotID: 1, DoctorID: 7, Date: "2024-01-15", StartTime: "09:00:00", EndTime: "12:00:00",
	TypeAvailability: "available", AddressAvailability: "Clinic A", Shift: "morning",
}

// ════════════════════════════════════════════════════════════
// SaveSchedule
// ════════════════════════════════════════════════════════════

func TestDoctorScheduleHandler_SaveSchedule(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ucErr      error
		wantStatus int
		wantCall   bool
	}{
		{"created", validBody, nil, http.StatusCreated, true},
		{"malformed json", `{"doctorId":`, nil, http.StatusBadRequest, false},
		{"missing shift", `{"doctorId":7,"date":"2024-01-15","startTime":"09:00","endTime":"12:00"}`, nil, http.StatusBadRequest, false},
		{"bad date", strings.Replace(validBody, "2024-01-15", "15/01/2024", 1), nil, http.StatusBadRequest, false},
		{"bad time", strings.Replace(validBody, `"09:00"`, `"9am"`, 1), nil, http.StatusBadRequest, false},
		{"duplicate", validBody, fmt.Errorf("%w for date 2024-01-15 and shift morning", usecase.ErrScheduleAlreadyExists), http.StatusConflict, true},
		{"store failure", validBody, errors.New("connection reset"), http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := setupHandler()
			uc.schedule, uc.err = sample, tt.ucErr

			rec, env := serve(h.SaveSchedule, http.MethodPost, tt.body, nil)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if (uc.called == "SaveSchedule") != tt.wantCall {
				t.Errorf("usecase called = %q, want call %v", uc.called, tt.wantCall)
			}
			if env.Success != (tt.wantStatus == http.StatusCreated) {
				t.Errorf("success = %v", env.Success)
			}
		})
	}
}

func TestDoctorScheduleHandler_SaveSchedule_ConflictMessage(t *testing.T) {
	h, uc := setupHandler()
	uc.err = fmt.Errorf("%w for date 2024-01-15 and shift morning", usecase.ErrScheduleAlreadyExists)

	_, env := serve(h.SaveSchedule, http.MethodPost, validBody, nil)

	if !strings.Contains(env.Message, "2024-01-15") || !strings.Contains(env.Message, "morning") {
		t.Errorf("message = %q, want date and shift", env.Message)
	}
}

func TestDoctorScheduleHandler_SaveSchedule_HidesInternalError(t *testing.T) {
	h, uc := setupHandler()
	uc.err = errors.New("pq: password authentication failed")

	_, env := serve(h.SaveSchedule, http.MethodPost, validBody, nil)

	if strings.Contains(env.Message, "password") {
		t.Errorf("internal error leaked: %q", env.Message)
	}
}

// ════════════════════════════════════════════════════════════
// Single-slot routes
// ════════════════════════════════════════════════════════════

func TestDoctorScheduleHandler_GetSchedule(t *testing.T) {
	tests := []struct {
		name       string
		slotID     string
		ucErr      error
		wantStatus int
	}{
		{"found", "1", nil, http.StatusOK},
		{"not found", "99", fmt.Errorf("%w: no schedule with slot id 99", usecase.ErrScheduleNotFound), http.StatusNotFound},
		{"non numeric", "abc", nil, http.StatusBadRequest},
		{"zero", "0", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := setupHandler()
			uc.schedule, uc.err = sample, tt.ucErr

			rec, env := serve(h.GetSchedule, http.MethodGet, "", map[string]string{"slotId": tt.slotID})

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				var got dto.ScheduleResponse
				if err := json.Unmarshal(env.Data, &got); err != nil {
					t.Fatalf("decode data: %v", err)
				}
				if got != *sample {
					t.Errorf("data = %+v", got)
				}
			}
		})
	}
}

func TestDoctorScheduleHandler_UpdateSchedule(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ucErr      error
		wantStatus int
	}{
		{"updated", validBody, nil, http.StatusCreated},
		{"not found", validBody, usecase.ErrScheduleNotFound, http.StatusNotFound},
		{"shift taken", validBody, usecase.ErrScheduleAlreadyExists, http.StatusConflict},
		{"malformed json", `[`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := setupHandler()
			uc.schedule, uc.err = sample, tt.ucErr

			rec, _ := serve(h.UpdateSchedule, http.MethodPut, tt.body, map[string]string{"slotId": "1"})

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestDoctorScheduleHandler_UpdateSchedule_UsesPathSlotID(t *testing.T) {
	h, uc := setupHandler()
	uc.schedule = sample

	body := strings.Replace(validBody, `"doctorId":7`, `"slotId":5,"doctorId":8`, 1)
	serve(h.UpdateSchedule, http.MethodPut, body, map[string]string{"slotId": "3"})

	if uc.lastSlotID != 3 {
		t.Errorf("slot id = %d, want path value 3", uc.lastSlotID)
	}
}

func TestDoctorScheduleHandler_DeleteSchedule(t *testing.T) {
	h, uc := setupHandler()
	uc.schedule = sample

	rec, env := serve(h.DeleteSchedule, http.MethodDelete, "", map[string]string{"slotId": "1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Message != "Doctor schedule deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}
	var got dto.ScheduleResponse
	if err := json.Unmarshal(env.Data, &got); err != nil || got.SlotID != 1 {
		t.Errorf("deleted record = %+v, err = %v", got, err)
	}

	uc.err = usecase.ErrScheduleNotFound
	rec, _ = serve(h.DeleteSchedule, http.MethodDelete, "", map[string]string{"slotId": "1"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// ════════════════════════════════════════════════════════════
// List routes
// ════════════════════════════════════════════════════════════

func TestDoctorScheduleHandler_Lists(t *testing.T) {
	routes := []struct {
		name    string
		handler func(h *DoctorScheduleHandler) http.HandlerFunc
		call    string
	}{
		{"by doctor", func(h *DoctorScheduleHandler) http.HandlerFunc { return h.GetSchedulesByDoctor }, "GetSchedulesByDoctor"},
		{"today and upcoming", func(h *DoctorScheduleHandler) http.HandlerFunc { return h.GetTodayAndUpcomingSchedules }, "GetTodayAndUpcomingSchedules"},
		{"upcoming", func(h *DoctorScheduleHandler) http.HandlerFunc { return h.GetUpcomingSchedules }, "GetUpcomingSchedules"},
	}

	for _, rt := range routes {
		t.Run(rt.name, func(t *testing.T) {
			h, uc := setupHandler()
			uc.schedules = []dto.ScheduleResponse{*sample}

			rec, env := serve(rt.handler(h), http.MethodGet, "", map[string]string{"doctorId": "7"})
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if uc.called != rt.call || uc.lastDoctorID != 7 {
				t.Errorf("called %s(%d)", uc.called, uc.lastDoctorID)
			}
			var got []dto.ScheduleResponse
			if err := json.Unmarshal(env.Data, &got); err != nil || len(got) != 1 {
				t.Errorf("data = %s, err = %v", env.Data, err)
			}

			rec, _ = serve(rt.handler(h), http.MethodGet, "", map[string]string{"doctorId": "x"})
			if rec.Code != http.StatusBadRequest {
				t.Errorf("bad doctor id status = %d, want 400", rec.Code)
			}

			uc.err = errors.New("db down")
			rec, _ = serve(rt.handler(h), http.MethodGet, "", map[string]string{"doctorId": "7"})
			if rec.Code != http.StatusInternalServerError {
				t.Errorf("failure status = %d, want 500", rec.Code)
			}
		})
	}
}

func TestDoctorScheduleHandler_EmptyListIsArray(t *testing.T) {
	h, uc := setupHandler()
	uc.schedules = []dto.ScheduleResponse{}

	rec := httptest.NewRecorder()
	h.GetAllSchedules(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want empty data array", rec.Body.String())
	}
}
