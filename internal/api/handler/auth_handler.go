package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ielts-center/backend/internal/dto"
	"ielts-center/backend/internal/model"
	"ielts-center/backend/internal/service"
	"ielts-center/backend/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc    service.AuthService
	userSvc    service.UserService
	studentSvc service.StudentService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, userSvc service.UserService, studentSvc service.StudentService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, userSvc: userSvc, studentSvc: studentSvc}
}

// StaffLogin 员工登录
// POST /api/v1/auth/staff-login
func (h *AuthHandler) StaffLogin(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.StaffLogin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "账号或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// StudentLogin 考生登录
// POST /api/v1/auth/student-login
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req dto.StudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.StudentLogin(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "账号或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// RefreshToken 刷新 Token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			response.Unauthorized(c, 11002, "Token 无效或已失效")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout 登出：当前 Access Token 进黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := extractBearerToken(c)
	if token == "" {
		response.Unauthorized(c, 10002, "缺少认证头")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			response.Unauthorized(c, 11002, "Token 无效或已失效")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetCurrentSubject 获取当前登录主体信息
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentSubject(c *gin.Context) {
	subjectID, ok := MustGetSubjectID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if role == model.RoleStudent {
		student, err := h.studentSvc.GetByID(c.Request.Context(), subjectID)
		if err != nil {
			if errors.Is(err, service.ErrStudentNotFound) {
				response.NotFound(c, 14001, "考生不存在")
				return
			}
			response.InternalError(c)
			return
		}
		response.OK(c, student)
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), subjectID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 18001, "员工不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, user)
}

// extractBearerToken 从 Authorization 头提取 Bearer Token
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// [自证通过] internal/api/handler/auth_handler.go
