package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"presence-hub/backend/internal/dto"
	"presence-hub/backend/internal/model"
	"presence-hub/backend/internal/service"
	"presence-hub/backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	svc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler 实例
func NewAttendanceHandler(svc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// Scan 扫码签到
// POST /api/v1/attendance/scan
//
// 员工 App 提交考勤屏上展示的码值；码被原子消费，
// 并发提交同一个码时只有一个请求成功。
func (h *AttendanceHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "请求参数校验失败", err.Error())
		return
	}

	event, err := h.svc.RecordScan(c.Request.Context(), req.CodeValue, req.EmployeeID)
	if err != nil {
		h.handleScanError(c, err)
		return
	}

	response.Created(c, toAttendanceEventResponse(event))
}

func (h *AttendanceHandler) handleScanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 40001, "员工不存在")
	case errors.Is(err, service.ErrCodeNotFound):
		response.NotFound(c, 30001, "考勤码不存在")
	case errors.Is(err, service.ErrCodeExpired):
		response.Gone(c, 30002, "考勤码已过期")
	case errors.Is(err, service.ErrCodeAlreadyUsed):
		response.Conflict(c, 30003, "考勤码已被使用")
	default:
		response.InternalError(c)
	}
}

func toAttendanceEventResponse(event *model.AttendanceEvent) dto.AttendanceEventResponse {
	resp := dto.AttendanceEventResponse{
		AttendanceEventID: event.AttendanceEventID,
		EmployeeID:        event.EmployeeID,
		AccessCodeID:      event.AccessCodeID,
		CheckInTime:       event.CheckInTime.Format(time.RFC3339),
		Location:          event.Location,
		EventDate:         event.EventDate.Format("2006-01-02"),
	}
	if event.KioskID != nil {
		resp.KioskID = *event.KioskID
	}
	return resp
}
