package dto

// ── 场次模块 DTO ──

// CreateSessionRequest 创建场次请求
type CreateSessionRequest struct {
	ModuleType  string `json:"module_type"  binding:"required,oneof=listening reading writing speaking mock"`
	TestDate    string `json:"test_date"    binding:"required,datetime=2006-01-02"`
	TimeLabel   string `json:"time_label"   binding:"required,max=50"`
	Room        string `json:"room"         binding:"omitempty,max=100"`
	MaxCapacity int    `json:"max_capacity" binding:"required,min=1"`
}

// UpdateSessionRequest 更新场次请求（零值字段不更新）
type UpdateSessionRequest struct {
	TestDate    *string `json:"test_date"    binding:"omitempty,datetime=2006-01-02"`
	TimeLabel   *string `json:"time_label"   binding:"omitempty,max=50"`
	Room        *string `json:"room"         binding:"omitempty,max=100"`
	MaxCapacity *int    `json:"max_capacity" binding:"omitempty,min=1"`
}

// SetSessionClosedRequest 手动开关报名请求
type SetSessionClosedRequest struct {
	IsClosed *bool `json:"is_closed" binding:"required"`
}

// SessionListRequest 场次列表查询参数
type SessionListRequest struct {
	ModuleType string `form:"module_type" binding:"omitempty,oneof=listening reading writing speaking mock"`
	TestDate   string `form:"test_date"   binding:"omitempty,datetime=2006-01-02"`
	PaginationRequest
}

// ── 响应 ──

// SessionResponse 场次响应
type SessionResponse struct {
	SessionID            string `json:"session_id"`
	ModuleType           string `json:"module_type"`
	TestDate             string `json:"test_date"`
	TimeLabel            string `json:"time_label"`
	Room                 string `json:"room,omitempty"`
	MaxCapacity          int    `json:"max_capacity"`
	CurrentRegistrations int    `json:"current_registrations"`
	Remaining            int    `json:"remaining"`
	IsClosed             bool   `json:"is_closed"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
}

// SessionBrief 场次简要信息（嵌入报名响应）
type SessionBrief struct {
	SessionID  string `json:"session_id"`
	ModuleType string `json:"module_type"`
	TestDate   string `json:"test_date"`
	TimeLabel  string `json:"time_label"`
	Room       string `json:"room,omitempty"`
}
