package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ielts-center/backend/internal/dto"
	"ielts-center/backend/internal/service"
	"ielts-center/backend/pkg/response"
)

// BookingHandler 报名模块 HTTP 处理器
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler 创建 BookingHandler
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Book 考生报名
// POST /api/v1/bookings
func (h *BookingHandler) Book(c *gin.Context) {
	var req dto.BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	studentID, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	booking, err := h.bookingSvc.Book(c.Request.Context(), studentID, &req)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.Created(c, booking)
}

// BookGuest 前台散客报名
// POST /api/v1/bookings/guest
func (h *BookingHandler) BookGuest(c *gin.Context) {
	var req dto.GuestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	booking, err := h.bookingSvc.BookGuest(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.Created(c, booking)
}

// ListMyBookings 我的报名列表
// GET /api/v1/bookings/my
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	studentID, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	bookings, err := h.bookingSvc.ListMine(c.Request.Context(), studentID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": bookings})
}

// ListBookings 报名列表（管理端）
// GET /api/v1/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var req dto.BookingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	bookings, total, err := h.bookingSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, bookings, total, req.GetPage(), req.GetPageSize())
}

// GetBooking 获取报名详情
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "报名ID不能为空")
		return
	}

	booking, err := h.bookingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, booking)
}

// CancelBooking 取消报名
// PUT /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "报名ID不能为空")
		return
	}

	callerID, ok := MustGetSubjectID(c)
	if !ok {
		return
	}

	if err := h.bookingSvc.Cancel(c.Request.Context(), id, callerID); err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleBookingError 统一处理报名模块业务错误
func (h *BookingHandler) handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 12001, "场次不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 14001, "考生不存在")
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, 13001, "报名记录不存在")
	case errors.Is(err, service.ErrSessionClosed):
		response.Conflict(c, 13002, "场次已关闭报名")
	case errors.Is(err, service.ErrSessionFull):
		response.Conflict(c, 13003, "场次已满员")
	case errors.Is(err, service.ErrInsufficientBalance):
		response.Conflict(c, 13004, "该模块剩余次数不足")
	case errors.Is(err, service.ErrDuplicateBooking):
		response.Conflict(c, 13005, "已报名该场次")
	case errors.Is(err, service.ErrSpeakingSlotRequired):
		response.BadRequest(c, 13006, "该场次需要选择口语时段")
	case errors.Is(err, service.ErrInvalidSpeakingDate):
		response.BadRequest(c, 13007, "口语日期不在候选范围内")
	case errors.Is(err, service.ErrInvalidSpeakingTime):
		response.BadRequest(c, 13008, "口语时段不在目录内")
	case errors.Is(err, service.ErrNoSpeakingSlot):
		response.BadRequest(c, 13009, "该模块不安排口语时段")
	case errors.Is(err, service.ErrAllRoomsTaken):
		response.Conflict(c, 13010, "该时段所有考场已被占用")
	case errors.Is(err, service.ErrSpeakingSlotTaken):
		response.Conflict(c, 13011, "该口语时段刚被占用，请重新选择")
	case errors.Is(err, service.ErrBookingAlreadyCancelled):
		response.Conflict(c, 13012, "报名已取消")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/booking_handler.go
