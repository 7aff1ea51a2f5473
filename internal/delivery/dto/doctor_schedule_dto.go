package dto

// Request DTOs

// CreateScheduleRequest carries a new slot. SlotID is accepted on the wire but ignored.
type CreateScheduleRequest struct {
	SlotID              *int64 `json:"slotId,omitempty"`
	DoctorID            int64  `json:"doctorId" validate:"required,gt=0"`
	Date                string `json:"date" validate:"required,dateonly"`           // Format: YYYY-MM-DD
	StartTime           string `json:"startTime" validate:"required,timeofday"`     // Format: HH:MM or HH:MM:SS
	EndTime             string `json:"endTime" validate:"required,timeofday"`       // Format: HH:MM or HH:MM:SS
	TypeAvailability    string `json:"typeAvailability" validate:"max=50"`
	AddressAvailability string `json:"addressAvailability" validate:"max=255"`
	Shift               string `json:"shift" validate:"required,max=50"`
}

// UpdateScheduleRequest replaces every mutable field of a slot. DoctorID is ignored.
type UpdateScheduleRequest struct {
	SlotID              *int64 `json:"slotId,omitempty"`
	DoctorID            *int64 `json:"doctorId,omitempty"`
	Date                string `json:"date" validate:"required,dateonly"`
	StartTime           string `json:"startTime" validate:"required,timeofday"`
	EndTime             string `json:"endTime" validate:"required,timeofday"`
	TypeAvailability    string `json:"typeAvailability" validate:"max=50"`
	AddressAvailability string `json:"addressAvailability" validate:"max=255"`
	Shift               string `json:"shift" validate:"required,max=50"`
}

// Response DTOs

type ScheduleResponse struct {
	SlotID              int64  `json:"slotId"`
	DoctorID            int64  `json:"doctorId"`
	Date                string `json:"date"`
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	TypeAvailability    string `json:"typeAvailability"`
	AddressAvailability string `json:"addressAvailability"`
	Shift               string `json:"shift"`
}
