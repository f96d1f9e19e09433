package repository

import (
	"docpool/internal/domain/entity"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(db *gorm.DB, log *entity.ActivityLog) error
	FindByDoctorID(db *gorm.DB, doctorID string, limit int) ([]entity.ActivityLog, error)
}
