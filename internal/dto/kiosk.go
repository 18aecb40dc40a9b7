package dto

// ── 考勤屏模块 DTO ──

// KioskCodeResponse 考勤屏轮询响应
type KioskCodeResponse struct {
	ScreenID   string `json:"screen_id"`
	CodeValue  string `json:"code_value"`
	ExpiresAt  string `json:"expires_at"` // RFC 3339
	BranchName string `json:"branch_name"`
}

// [自证通过] internal/dto/kiosk.go
