package service

import (
	"context"

	"docpool/internal/domain/entity"
	"docpool/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ActivityService appends and reads the per-doctor activity trail.
// Record runs on its own connection, outside any caller transaction, so a
// failed append never rolls back the change it describes.
type ActivityService interface {
	Record(ctx context.Context, doctorID, activityType, description, performedBy string) error
	ListByDoctor(ctx context.Context, doctorID string) ([]entity.ActivityLog, error)
}

type activityService struct {
	db           *gorm.DB
	log          *logrus.Logger
	activityRepo repository.ActivityLogRepository
}

func NewActivityService(db *gorm.DB, log *logrus.Logger, activityRepo repository.ActivityLogRepository) ActivityService {
	return &activityService{
		db:           db,
		log:          log,
		activityRepo: activityRepo,
	}
}

func (s *activityService) Record(ctx context.Context, doctorID, activityType, description, performedBy string) error {
	activity := &entity.ActivityLog{
		DoctorID:            doctorID,
		ActivityType:        activityType,
		ActivityDescription: description,
		PerformedBy:         performedBy,
	}

	if err := s.activityRepo.Create(s.db.WithContext(ctx), activity); err != nil {
		s.log.WithFields(logrus.Fields{
			"doctor_id":     doctorID,
			"activity_type": activityType,
		}).Errorf("Failed to record activity: %+v", err)
		return err
	}

	return nil
}

// ListByDoctor returns the newest entries first, at most entity.ActivityLogLimit.
func (s *activityService) ListByDoctor(ctx context.Context, doctorID string) ([]entity.ActivityLog, error) {
	logs, err := s.activityRepo.FindByDoctorID(s.db.WithContext(ctx), doctorID, entity.ActivityLogLimit)
	if err != nil {
		s.log.Warnf("Failed to find activity logs: %+v", err)
		return nil, err
	}
	return logs, nil
}
