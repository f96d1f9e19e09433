package repository

import (
	"docpool/internal/domain/entity"
	domainRepo "docpool/internal/domain/repository"

	"gorm.io/gorm"
)

type activityLogRepository struct{}

func NewActivityLogRepository() domainRepo.ActivityLogRepository {
	return &activityLogRepository{}
}

func (r *activityLogRepository) Create(db *gorm.DB, log *entity.ActivityLog) error {
	return db.Create(log).Error
}

func (r *activityLogRepository) FindByDoctorID(db *gorm.DB, doctorID string, limit int) ([]entity.ActivityLog, error) {
	var logs []entity.ActivityLog
	err := db.Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
