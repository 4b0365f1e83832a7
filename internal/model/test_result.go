package model

// TestResult 成绩记录表 — 对应 test_results
// 每条报名至多一条成绩（booking_id 唯一），分项按模块可空
type TestResult struct {
	ResultID   string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"result_id"`
	BookingID  string   `gorm:"type:uuid;not null;uniqueIndex"                 json:"booking_id"`
	SubjectID  string   `gorm:"type:varchar(64);not null"                      json:"subject_id"`
	ModuleType string   `gorm:"type:varchar(20);not null"                      json:"module_type"`
	Listening  *float64 `gorm:"type:numeric(2,1)"                              json:"listening,omitempty"`
	Reading    *float64 `gorm:"type:numeric(2,1)"                              json:"reading,omitempty"`
	Writing    *float64 `gorm:"type:numeric(2,1)"                              json:"writing,omitempty"`
	Speaking   *float64 `gorm:"type:numeric(2,1)"                              json:"speaking,omitempty"`
	Overall    *float64 `gorm:"type:numeric(2,1)"                              json:"overall,omitempty"`
	Remarks    string   `gorm:"type:text;not null;default:''"                  json:"remarks,omitempty"`
	PublishedBy string  `gorm:"type:uuid;not null"                             json:"published_by"`
	BaseModel

	Booking *Booking `gorm:"foreignKey:BookingID;references:BookingID" json:"booking,omitempty"`
}

func (TestResult) TableName() string { return "test_results" }
