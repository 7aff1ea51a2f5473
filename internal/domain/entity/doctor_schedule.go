package entity

import (
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// DoctorSchedule is one availability slot of a doctor.
// (DoctorID, ScheduleDate, Shift) is unique, enforced by the table constraint.
type DoctorSchedule struct {
	SlotID              int64     `gorm:"column:slot_id;primaryKey;autoIncrement" json:"slotId"`
	DoctorID            int64     `gorm:"not null;uniqueIndex:uq_doctor_schedules_doctor_date_shift" json:"doctorId"`
	ScheduleDate        time.Time `gorm:"type:date;not null;uniqueIndex:uq_doctor_schedules_doctor_date_shift" json:"date"`
	StartTime           string    `gorm:"type:time;not null" json:"startTime"`
	EndTime             string    `gorm:"type:time;not null" json:"endTime"`
	TypeAvailability    string    `gorm:"type:varchar(50);not null;default:''" json:"typeAvailability"`
	AddressAvailability string    `gorm:"type:varchar(255);not null;default:''" json:"addressAvailability"`
	Shift               string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_doctor_schedules_doctor_date_shift" json:"shift"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (DoctorSchedule) TableName() string {
	return "doctor_schedules"
}
