package dto

// ── 报名模块 DTO ──

// BookSessionRequest 考生报名请求
// 口语/模考场次必须携带 speaking_date 与 speaking_time，考场由系统分配
type BookSessionRequest struct {
	SessionID    string `json:"session_id"    binding:"required,uuid"`
	SpeakingDate string `json:"speaking_date" binding:"omitempty,datetime=2006-01-02"`
	SpeakingTime string `json:"speaking_time" binding:"omitempty,max=20"`
}

// GuestBookingRequest 前台散客报名请求（不扣余额、不查重）
type GuestBookingRequest struct {
	SessionID    string `json:"session_id"    binding:"required,uuid"`
	GuestName    string `json:"guest_name"    binding:"required,min=2,max=100"`
	GuestPhone   string `json:"guest_phone"   binding:"required,max=20"`
	SpeakingDate string `json:"speaking_date" binding:"omitempty,datetime=2006-01-02"`
	SpeakingTime string `json:"speaking_time" binding:"omitempty,max=20"`
}

// BookingListRequest 报名列表查询参数
type BookingListRequest struct {
	SessionID string `form:"session_id" binding:"omitempty,uuid"`
	SubjectID string `form:"subject_id" binding:"omitempty"`
	Status    string `form:"status"     binding:"omitempty,oneof=confirmed pending cancelled completed"`
	PaginationRequest
}

// ── 响应 ──

// BookingResponse 报名响应
type BookingResponse struct {
	BookingID    string        `json:"booking_id"`
	SessionID    string        `json:"session_id"`
	Session      *SessionBrief `json:"session,omitempty"`
	SubjectID    string        `json:"subject_id"`
	SubjectName  string        `json:"subject_name"`
	IsGuest      bool          `json:"is_guest"`
	ModuleType   string        `json:"module_type"`
	BookingDate  string        `json:"booking_date"`
	Status       string        `json:"status"`
	SpeakingDate string        `json:"speaking_date,omitempty"`
	SpeakingTime string        `json:"speaking_time,omitempty"`
	SpeakingRoom string        `json:"speaking_room,omitempty"`
	CreatedAt    string        `json:"created_at"`
}

// SlotGridResponse 口语时段网格响应
// Dates 为该场次的候选口语日期；每个格子标记各考场占用情况
type SlotGridResponse struct {
	SessionID string         `json:"session_id"`
	Dates     []string       `json:"dates"`
	Times     []string       `json:"times"`
	Rooms     []string       `json:"rooms"`
	Cells     []SlotGridCell `json:"cells"`
}

// SlotGridCell 网格单元：某日期某时段的占用与可约状态
type SlotGridCell struct {
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	TakenRooms []string `json:"taken_rooms,omitempty"`
	Available  bool     `json:"available"` // 仍有空闲考场
}
