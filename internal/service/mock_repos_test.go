package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ielts-center/backend/internal/model"
	"ielts-center/backend/internal/repository"
	pkgerrors "ielts-center/backend/pkg/errors"
)

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	if session.SessionID == "" {
		session.SessionID = fmt.Sprintf("sess-%d", len(m.sessions)+1)
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) List(_ context.Context, filter repository.SessionFilter, offset, limit int) ([]model.Session, int64, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if filter.ModuleType != "" && s.ModuleType != filter.ModuleType {
			continue
		}
		if filter.TestDate != "" && s.TestDate != filter.TestDate {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.Session) error {
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) SetClosed(_ context.Context, id string, closed bool) error {
	if s, ok := m.sessions[id]; ok {
		s.IsClosed = closed
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// IncrementRegistrations 与真实实现同语义：满员零行受影响
func (m *mockSessionRepo) IncrementRegistrations(_ context.Context, id string) error {
	s, ok := m.sessions[id]
	if !ok || s.CurrentRegistrations >= s.MaxCapacity {
		return pkgerrors.ErrGuardFailed
	}
	s.CurrentRegistrations++
	return nil
}

func (m *mockSessionRepo) DecrementRegistrations(_ context.Context, id string) error {
	s, ok := m.sessions[id]
	if !ok || s.CurrentRegistrations <= 0 {
		return pkgerrors.ErrGuardFailed
	}
	s.CurrentRegistrations--
	return nil
}

// ── Mock BookingRepository ──

type mockBookingRepo struct {
	bookings map[string]*model.Booking
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*model.Booking)}
}

// Create 模拟口语时段部分唯一索引：同场次同 (日期, 考场, 时段) 未取消记录冲突
func (m *mockBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	for _, b := range m.bookings {
		if b.Status == model.BookingStatusCancelled {
			continue
		}
		if booking.SpeakingTime != "" &&
			b.SessionID == booking.SessionID &&
			b.SpeakingDate == booking.SpeakingDate &&
			b.SpeakingRoom == booking.SpeakingRoom &&
			b.SpeakingTime == booking.SpeakingTime {
			return gorm.ErrDuplicatedKey
		}
		if !booking.IsGuest && !b.IsGuest &&
			b.SessionID == booking.SessionID &&
			b.SubjectID == booking.SubjectID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.bookings[booking.BookingID] = booking
	return nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*model.Booking, error) {
	if b, ok := m.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) List(_ context.Context, filter repository.BookingFilter, offset, limit int) ([]model.Booking, int64, error) {
	var result []model.Booking
	for _, b := range m.bookings {
		if filter.SessionID != "" && b.SessionID != filter.SessionID {
			continue
		}
		if filter.SubjectID != "" && b.SubjectID != filter.SubjectID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		result = append(result, *b)
	}
	return result, int64(len(result)), nil
}

func (m *mockBookingRepo) ListBySession(_ context.Context, sessionID string) ([]model.Booking, error) {
	var result []model.Booking
	for _, b := range m.bookings {
		if b.SessionID == sessionID && b.Status != model.BookingStatusCancelled {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) ListBySubject(_ context.Context, subjectID string) ([]model.Booking, error) {
	var result []model.Booking
	for _, b := range m.bookings {
		if b.SubjectID == subjectID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockBookingRepo) ExistsBySessionAndSubject(_ context.Context, sessionID, subjectID string) (bool, error) {
	for _, b := range m.bookings {
		if b.SessionID == sessionID && b.SubjectID == subjectID &&
			b.Status != model.BookingStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBookingRepo) UpdateStatus(_ context.Context, id, status string) error {
	if b, ok := m.bookings[id]; ok {
		b.Status = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		student.StudentID = fmt.Sprintf("stu-%d", len(m.students)+1)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByPhone(_ context.Context, phone string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Phone == phone {
			copied := *s
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, keyword string, offset, limit int) ([]model.Student, int64, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

// DecrementBalance 与真实实现同语义：余额非正零行受影响
func (m *mockStudentRepo) DecrementBalance(_ context.Context, id, moduleType string) error {
	s, ok := m.students[id]
	if !ok {
		return pkgerrors.ErrGuardFailed
	}
	switch moduleType {
	case model.ModuleListening:
		if s.ListeningLeft <= 0 {
			return pkgerrors.ErrGuardFailed
		}
		s.ListeningLeft--
	case model.ModuleReading:
		if s.ReadingLeft <= 0 {
			return pkgerrors.ErrGuardFailed
		}
		s.ReadingLeft--
	case model.ModuleWriting:
		if s.WritingLeft <= 0 {
			return pkgerrors.ErrGuardFailed
		}
		s.WritingLeft--
	case model.ModuleSpeaking:
		if s.SpeakingLeft <= 0 {
			return pkgerrors.ErrGuardFailed
		}
		s.SpeakingLeft--
	case model.ModuleMock:
		if s.MockLeft <= 0 {
			return pkgerrors.ErrGuardFailed
		}
		s.MockLeft--
	default:
		return fmt.Errorf("未知模块类型: %s", moduleType)
	}
	return nil
}

func (m *mockStudentRepo) AddBalance(_ context.Context, id, moduleType string, count int) error {
	s, ok := m.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	switch moduleType {
	case model.ModuleListening:
		s.ListeningLeft += count
	case model.ModuleReading:
		s.ReadingLeft += count
	case model.ModuleWriting:
		s.WritingLeft += count
	case model.ModuleSpeaking:
		s.SpeakingLeft += count
	case model.ModuleMock:
		s.MockLeft += count
	default:
		return fmt.Errorf("未知模块类型: %s", moduleType)
	}
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock ResultRepository ──

type mockResultRepo struct {
	results map[string]*model.TestResult // key: booking_id
}

func newMockResultRepo() *mockResultRepo {
	return &mockResultRepo{results: make(map[string]*model.TestResult)}
}

func (m *mockResultRepo) Create(_ context.Context, result *model.TestResult) error {
	if _, ok := m.results[result.BookingID]; ok {
		return gorm.ErrDuplicatedKey
	}
	if result.ResultID == "" {
		result.ResultID = fmt.Sprintf("res-%d", len(m.results)+1)
	}
	m.results[result.BookingID] = result
	return nil
}

func (m *mockResultRepo) GetByBooking(_ context.Context, bookingID string) (*model.TestResult, error) {
	if r, ok := m.results[bookingID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResultRepo) ListBySubject(_ context.Context, subjectID string) ([]model.TestResult, error) {
	var result []model.TestResult
	for _, r := range m.results {
		if r.SubjectID == subjectID {
			result = append(result, *r)
		}
	}
	return result, nil
}

// ── Mock SystemConfigRepository ──

type mockSystemConfigRepo struct {
	cfg *model.SystemConfig
}

func newMockSystemConfigRepo() *mockSystemConfigRepo {
	return &mockSystemConfigRepo{cfg: &model.SystemConfig{Singleton: true}}
}

func (m *mockSystemConfigRepo) Get(_ context.Context) (*model.SystemConfig, error) {
	copied := *m.cfg
	return &copied, nil
}

func (m *mockSystemConfigRepo) Update(_ context.Context, cfg *model.SystemConfig) error {
	m.cfg = cfg
	return nil
}

// ── 聚合构造 ──

func newMockRepository() *repository.Repository {
	return &repository.Repository{
		User:         newMockUserRepo(),
		Student:      newMockStudentRepo(),
		Session:      newMockSessionRepo(),
		Booking:      newMockBookingRepo(),
		Result:       newMockResultRepo(),
		SystemConfig: newMockSystemConfigRepo(),
	}
}
