package model

import "time"

// AttendanceEvent 考勤记录表 — 对应 attendance_events
// 每次扫码成功恰好创建一条；创建后除补录签退外不可变
type AttendanceEvent struct {
	AttendanceEventID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_event_id"`
	EmployeeID        string     `gorm:"type:uuid;not null"                             json:"employee_id"`
	AccessCodeID      string     `gorm:"type:uuid;not null"                             json:"access_code_id"`
	KioskID           *string    `gorm:"type:uuid"                                      json:"kiosk_id,omitempty"`
	CheckInTime       time.Time  `gorm:"not null"                                       json:"check_in_time"`
	CheckOutTime      *time.Time `json:"check_out_time,omitempty"`
	Location          string     `gorm:"type:varchar(100);not null;default:''"          json:"location"`
	EventDate         time.Time  `gorm:"type:date;not null"                             json:"event_date"`
	Notes             string     `gorm:"type:varchar(255);not null;default:''"          json:"notes"`
	BaseModel
}

// TableName 指定表名
func (AttendanceEvent) TableName() string { return "attendance_events" }
