package entity

import "time"

// ActivityLog is an append-only record of a change to a doctor profile.
type ActivityLog struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID            string    `gorm:"type:text;not null;index" json:"doctor_id"`
	ActivityType        string    `gorm:"type:text;not null" json:"activity_type"`
	ActivityDescription string    `gorm:"type:text" json:"activity_description"`
	PerformedBy         string    `gorm:"type:text" json:"performed_by"`
	CreatedAt           time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Activity kinds
const (
	ActivityCreated = "created"
	ActivityUpdated = "updated"
)

// ActivityLogLimit caps the entries returned per doctor.
const ActivityLogLimit = 50
