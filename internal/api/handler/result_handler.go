package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ielts-center/backend/internal/dto"
	"ielts-center/backend/internal/service"
	"ielts-center/backend/pkg/response"
)

// ResultHandler 成绩模块 HTTP 处理器
type ResultHandler struct {
	resultSvc service.ResultService
}

// NewResultHandler 创建 ResultHandler
func NewResultHandler(resultSvc service.ResultService) *ResultHandler {
	return &ResultHandler{resultSvc: resultSvc}
}

// PublishResult 发布成绩
// POST /api/v1/results
func (h *ResultHandler) PublishResult(c *gin.Context) {
	var req dto.PublishResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	result, err := h.resultSvc.Publish(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleResultError(c, err)
		return
	}

	response.Created(c, result)
}

// GetResultByBooking 按报名查成绩
// GET /api/v1/results/booking/:id
func (h *ResultHandler) GetResultByBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "报名ID不能为空")
		return
	}

	result, err := h.resultSvc.GetByBooking(c.Request.Context(), id)
	if err != nil {
		h.handleResultError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMyResults 考生查看自己的成绩
// GET /api/v1/results/my
func (h *ResultHandler) ListMyResults(c *gin.Context) {
	studentID, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	results, err := h.resultSvc.ListBySubject(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": results})
}

// handleResultError 统一处理成绩模块业务错误
func (h *ResultHandler) handleResultError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, 13001, "报名记录不存在")
	case errors.Is(err, service.ErrResultNotFound):
		response.NotFound(c, 15001, "成绩不存在")
	case errors.Is(err, service.ErrResultExists):
		response.Conflict(c, 15002, "该报名已发布成绩")
	case errors.Is(err, service.ErrResultBookingInvalid):
		response.BadRequest(c, 15003, "已取消的报名不能发布成绩")
	default:
		response.InternalError(c)
	}
}
