package dto

// ── 成绩模块 DTO ──

// PublishResultRequest 发布成绩请求
// 分项按模块可空，模考通常四项齐全并带总分
type PublishResultRequest struct {
	BookingID string   `json:"booking_id" binding:"required,uuid"`
	Listening *float64 `json:"listening"  binding:"omitempty,min=0,max=9"`
	Reading   *float64 `json:"reading"    binding:"omitempty,min=0,max=9"`
	Writing   *float64 `json:"writing"    binding:"omitempty,min=0,max=9"`
	Speaking  *float64 `json:"speaking"   binding:"omitempty,min=0,max=9"`
	Overall   *float64 `json:"overall"    binding:"omitempty,min=0,max=9"`
	Remarks   string   `json:"remarks"    binding:"omitempty,max=2000"`
}

// ── 响应 ──

// ResultResponse 成绩响应
type ResultResponse struct {
	ResultID   string        `json:"result_id"`
	BookingID  string        `json:"booking_id"`
	SubjectID  string        `json:"subject_id"`
	ModuleType string        `json:"module_type"`
	Listening  *float64      `json:"listening,omitempty"`
	Reading    *float64      `json:"reading,omitempty"`
	Writing    *float64      `json:"writing,omitempty"`
	Speaking   *float64      `json:"speaking,omitempty"`
	Overall    *float64      `json:"overall,omitempty"`
	Remarks    string        `json:"remarks,omitempty"`
	Session    *SessionBrief `json:"session,omitempty"`
	CreatedAt  string        `json:"created_at"`
}
