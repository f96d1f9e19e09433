package dto

import "time"

// Response DTOs

type ActivityLogResponse struct {
	ID                  int64     `json:"id"`
	DoctorID            string    `json:"doctor_id"`
	ActivityType        string    `json:"activity_type"`
	ActivityDescription string    `json:"activity_description"`
	PerformedBy         string    `json:"performed_by"`
	CreatedAt           time.Time `json:"created_at"`
}
