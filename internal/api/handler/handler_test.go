package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ielts-center/backend/internal/dto"
	"ielts-center/backend/internal/model"
	"ielts-center/backend/internal/repository"
	"ielts-center/backend/internal/service"
	"ielts-center/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	staffLoginResult   *dto.TokenResponse
	staffLoginErr      error
	studentLoginResult *dto.TokenResponse
	studentLoginErr    error
	refreshResult      *dto.TokenResponse
	refreshErr         error
	logoutErr          error
}

func (m *mockAuthService) StaffLogin(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.staffLoginResult, m.staffLoginErr
}
func (m *mockAuthService) StudentLogin(_ context.Context, _ *dto.StudentLoginRequest) (*dto.TokenResponse, error) {
	return m.studentLoginResult, m.studentLoginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return m.logoutErr
}

// ── Mock BookingService ──

type mockBookingService struct {
	bookResult  *dto.BookingResponse
	bookErr     error
	guestResult *dto.BookingResponse
	guestErr    error
	cancelErr   error
	getResult   *dto.BookingResponse
	getErr      error
	listResult  []dto.BookingResponse
	listTotal   int64
	listErr     error
	mineResult  []dto.BookingResponse
	mineErr     error
}

func (m *mockBookingService) Book(_ context.Context, _ string, _ *dto.BookSessionRequest) (*dto.BookingResponse, error) {
	return m.bookResult, m.bookErr
}
func (m *mockBookingService) BookGuest(_ context.Context, _ *dto.GuestBookingRequest, _ string) (*dto.BookingResponse, error) {
	return m.guestResult, m.guestErr
}
func (m *mockBookingService) Cancel(_ context.Context, _ string, _ string) error {
	return m.cancelErr
}
func (m *mockBookingService) GetByID(_ context.Context, _ string) (*dto.BookingResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockBookingService) List(_ context.Context, _ *dto.BookingListRequest) ([]dto.BookingResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockBookingService) ListMine(_ context.Context, _ string) ([]dto.BookingResponse, error) {
	return m.mineResult, m.mineErr
}

// ── Mock SessionService ──

type mockSessionService struct {
	createResult *dto.SessionResponse
	createErr    error
	getResult    *dto.SessionResponse
	getErr       error
	listResult   []dto.SessionResponse
	listTotal    int64
	listErr      error
	updateResult *dto.SessionResponse
	updateErr    error
	setClosedErr error
	deleteErr    error
}

func (m *mockSessionService) Create(_ context.Context, _ *dto.CreateSessionRequest, _ string) (*dto.SessionResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockSessionService) GetByID(_ context.Context, _ string) (*dto.SessionResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockSessionService) List(_ context.Context, _ *dto.SessionListRequest) ([]dto.SessionResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockSessionService) Update(_ context.Context, _ string, _ *dto.UpdateSessionRequest, _ string) (*dto.SessionResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockSessionService) SetClosed(_ context.Context, _ string, _ bool, _ string) error {
	return m.setClosedErr
}
func (m *mockSessionService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}

// ── Mock SlotService ──

type mockSlotService struct {
	datesResult []string
	datesErr    error
	gridResult  *dto.SlotGridResponse
	gridErr     error
	roomResult  string
	roomErr     error
}

func (m *mockSlotService) CandidateDates(_ *model.Session) ([]string, error) {
	return m.datesResult, m.datesErr
}
func (m *mockSlotService) Grid(_ context.Context, _ string) (*dto.SlotGridResponse, error) {
	return m.gridResult, m.gridErr
}
func (m *mockSlotService) ResolveRoom(_ context.Context, _ *repository.Repository, _ *model.Session, _, _ string) (string, error) {
	return m.roomResult, m.roomErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportRoster(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupGin() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func setAuth(c *gin.Context, role string) {
	c.Set("subject_id", "test-subject-id")
	c.Set("role", role)
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_StaffLogin_Success(t *testing.T) {
	mock := &mockAuthService{
		staffLoginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
			Subject:      dto.SubjectBrief{ID: "u1", Name: "前台小王", Role: "staff"},
		},
	}
	h := NewAuthHandler(mock, nil, nil)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/staff-login", jsonBody(dto.LoginRequest{
		Username: "frontdesk",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/staff-login", h.StaffLogin)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_StaffLogin_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil, nil)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/staff-login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/staff-login", h.StaffLogin)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_StaffLogin_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{staffLoginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock, nil, nil)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/staff-login", jsonBody(dto.LoginRequest{
		Username: "frontdesk",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/staff-login", h.StaffLogin)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_StudentLogin_Success(t *testing.T) {
	mock := &mockAuthService{
		studentLoginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
			Subject:      dto.SubjectBrief{ID: "s1", Name: "张三", Role: "student"},
		},
	}
	h := NewAuthHandler(mock, nil, nil)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/student-login", jsonBody(dto.StudentLoginRequest{
		Phone:    "13800138000",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/student-login", h.StudentLogin)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_MissingToken(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil, nil)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	mock := &mockAuthService{refreshErr: service.ErrInvalidToken}
	h := NewAuthHandler(mock, nil, nil)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{
		RefreshToken: "stale-refresh",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11002 {
		t.Errorf("expected error code 11002, got %d", resp.Code)
	}
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil, nil)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer some-access-token")

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Logout_MissingHeader(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil, nil)

	w := setupGin()
	req := httptest.NewRequest("POST", "/auth/logout", nil)

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// BookingHandler Tests
// ═══════════════════════════════════════════════════════════

func TestBookingHandler_Book_Success(t *testing.T) {
	mock := &mockBookingService{
		bookResult: &dto.BookingResponse{
			BookingID:  "b1",
			SessionID:  "11111111-1111-1111-1111-111111111111",
			ModuleType: "listening",
			Status:     "confirmed",
		},
	}
	h := NewBookingHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("POST", "/bookings", jsonBody(dto.BookSessionRequest{
		SessionID: "11111111-1111-1111-1111-111111111111",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/bookings", func(c *gin.Context) {
		setAuth(c, "student")
		h.Book(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestBookingHandler_Book_BadJSON(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{})

	w := setupGin()
	req := httptest.NewRequest("POST", "/bookings", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/bookings", func(c *gin.Context) {
		setAuth(c, "student")
		h.Book(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestBookingHandler_Book_Unauthenticated(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{})

	w := setupGin()
	req := httptest.NewRequest("POST", "/bookings", jsonBody(dto.BookSessionRequest{
		SessionID: "11111111-1111-1111-1111-111111111111",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/bookings", h.Book)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestBookingHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"SessionNotFound", service.ErrSessionNotFound, 404, 12001},
		{"StudentNotFound", service.ErrStudentNotFound, 404, 14001},
		{"BookingNotFound", service.ErrBookingNotFound, 404, 13001},
		{"SessionClosed", service.ErrSessionClosed, 409, 13002},
		{"SessionFull", service.ErrSessionFull, 409, 13003},
		{"InsufficientBalance", service.ErrInsufficientBalance, 409, 13004},
		{"DuplicateBooking", service.ErrDuplicateBooking, 409, 13005},
		{"SpeakingSlotRequired", service.ErrSpeakingSlotRequired, 400, 13006},
		{"InvalidSpeakingDate", service.ErrInvalidSpeakingDate, 400, 13007},
		{"InvalidSpeakingTime", service.ErrInvalidSpeakingTime, 400, 13008},
		{"NoSpeakingSlot", service.ErrNoSpeakingSlot, 400, 13009},
		{"AllRoomsTaken", service.ErrAllRoomsTaken, 409, 13010},
		{"SpeakingSlotTaken", service.ErrSpeakingSlotTaken, 409, 13011},
		{"AlreadyCancelled", service.ErrBookingAlreadyCancelled, 409, 13012},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockBookingService{bookErr: tt.err}
			h := NewBookingHandler(mock)

			w := setupGin()
			req := httptest.NewRequest("POST", "/bookings", jsonBody(dto.BookSessionRequest{
				SessionID: "11111111-1111-1111-1111-111111111111",
			}))
			req.Header.Set("Content-Type", "application/json")

			r := gin.New()
			r.POST("/bookings", func(c *gin.Context) {
				setAuth(c, "student")
				h.Book(c)
			})
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestBookingHandler_CancelBooking_Success(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{})

	w := setupGin()
	req := httptest.NewRequest("PUT", "/bookings/b1/cancel", nil)

	r := gin.New()
	r.PUT("/bookings/:id/cancel", func(c *gin.Context) {
		setAuth(c, "staff")
		h.CancelBooking(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestBookingHandler_CancelBooking_AlreadyCancelled(t *testing.T) {
	mock := &mockBookingService{cancelErr: service.ErrBookingAlreadyCancelled}
	h := NewBookingHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("PUT", "/bookings/b1/cancel", nil)

	r := gin.New()
	r.PUT("/bookings/:id/cancel", func(c *gin.Context) {
		setAuth(c, "staff")
		h.CancelBooking(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13012 {
		t.Errorf("expected code 13012, got %d", resp.Code)
	}
}

func TestBookingHandler_ListMyBookings_Success(t *testing.T) {
	mock := &mockBookingService{
		mineResult: []dto.BookingResponse{
			{BookingID: "b1", ModuleType: "listening"},
			{BookingID: "b2", ModuleType: "speaking"},
		},
	}
	h := NewBookingHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/bookings/my", nil)

	r := gin.New()
	r.GET("/bookings/my", func(c *gin.Context) {
		setAuth(c, "student")
		h.ListMyBookings(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// SessionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSessionHandler_GetSpeakingSlots_Success(t *testing.T) {
	slotMock := &mockSlotService{
		gridResult: &dto.SlotGridResponse{
			SessionID: "s1",
			Dates:     []string{"2024-06-14", "2024-06-15", "2024-06-16"},
			Times:     []string{"9:00 AM", "9:20 AM"},
			Rooms:     []string{"Room 1", "Room 2"},
		},
	}
	h := NewSessionHandler(&mockSessionService{}, slotMock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/sessions/s1/speaking-slots", nil)

	r := gin.New()
	r.GET("/sessions/:id/speaking-slots", h.GetSpeakingSlots)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestSessionHandler_GetSpeakingSlots_NonSpeakingModule(t *testing.T) {
	slotMock := &mockSlotService{gridErr: service.ErrNoSpeakingSlot}
	h := NewSessionHandler(&mockSessionService{}, slotMock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/sessions/s1/speaking-slots", nil)

	r := gin.New()
	r.GET("/sessions/:id/speaking-slots", h.GetSpeakingSlots)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSessionHandler_CreateSession_CapacityValidation(t *testing.T) {
	h := NewSessionHandler(&mockSessionService{}, &mockSlotService{})

	w := setupGin()
	// max_capacity 为 0，binding 校验应拒绝
	req := httptest.NewRequest("POST", "/sessions", jsonBody(map[string]interface{}{
		"module_type":  "listening",
		"test_date":    "2024-06-15",
		"time_label":   "10:40 AM",
		"max_capacity": 0,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/sessions", func(c *gin.Context) {
		setAuth(c, "admin")
		h.CreateSession(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSessionHandler_GetSession_NotFound(t *testing.T) {
	mock := &mockSessionService{getErr: service.ErrSessionNotFound}
	h := NewSessionHandler(mock, &mockSlotService{})

	w := setupGin()
	req := httptest.NewRequest("GET", "/sessions/unknown", nil)

	r := gin.New()
	r.GET("/sessions/:id", h.GetSession)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 12001 {
		t.Errorf("expected code 12001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportRoster_Success(t *testing.T) {
	buf := bytes.NewBufferString("excel content")
	mock := &mockExportService{
		buf:      buf,
		filename: "花名册_listening_2024-06-15.xlsx",
	}
	h := NewExportHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/sessions/s1/roster", nil)

	r := gin.New()
	r.GET("/sessions/:id/roster", h.ExportRoster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected content type: %s", ct)
	}
	cd := w.Header().Get("Content-Disposition")
	if cd == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestExportHandler_ExportRoster_NoBookings(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportNoBookings}
	h := NewExportHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/sessions/s1/roster", nil)

	r := gin.New()
	r.GET("/sessions/:id/roster", h.ExportRoster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_ExportRoster_SessionNotFound(t *testing.T) {
	mock := &mockExportService{err: service.ErrSessionNotFound}
	h := NewExportHandler(mock)

	w := setupGin()
	req := httptest.NewRequest("GET", "/sessions/unknown/roster", nil)

	r := gin.New()
	r.GET("/sessions/:id/roster", h.ExportRoster)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
