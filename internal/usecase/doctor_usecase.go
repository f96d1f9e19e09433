package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"docpool/internal/converter"
	"docpool/internal/delivery/dto"
	"docpool/internal/domain/entity"
	"docpool/internal/domain/repository"
	"docpool/internal/domain/schema"
	"docpool/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	activityCreatedDescription = "Doctor profile created"
	activityUpdatedDescription = "Doctor profile updated"

	activityWarning = "Change saved, but the activity log entry could not be written"
)

// DoctorIDGenerator produces candidate doctor identifiers.
type DoctorIDGenerator interface {
	Generate() string
}

// DoctorExporter renders a doctor list to w.
type DoctorExporter interface {
	WriteDoctors(w io.Writer, doctors []entity.Doctor) error
}

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, fields map[string]interface{}, actor string) (*dto.CreateDoctorResponse, error)
	GetDoctor(ctx context.Context, identifier string) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, query *dto.DoctorListQuery) ([]dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, identifier string, fields map[string]interface{}, actor string) (string, error)
	DeleteDoctor(ctx context.Context, identifier string) error
	GetStats(ctx context.Context) (*dto.DoctorStatsResponse, error)
	GetActivityLogs(ctx context.Context, doctorID string) ([]dto.ActivityLogResponse, error)
	ExportDoctors(ctx context.Context, query *dto.DoctorListQuery, w io.Writer) error
}

type doctorUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	activityService service.ActivityService
	exporter        DoctorExporter
	idGenerator     DoctorIDGenerator
	idMaxAttempts   int
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	activityService service.ActivityService,
	exporter DoctorExporter,
	idGenerator DoctorIDGenerator,
	idMaxAttempts int,
) DoctorUsecase {
	if idMaxAttempts < 1 {
		idMaxAttempts = 1
	}
	return &doctorUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		activityService: activityService,
		exporter:        exporter,
		idGenerator:     idGenerator,
		idMaxAttempts:   idMaxAttempts,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, fields map[string]interface{}, actor string) (*dto.CreateDoctorResponse, error) {
	values, err := schema.NormalizeCreate(fields)
	if err != nil {
		u.log.Warnf("Failed to validate doctor: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctorID, err := u.allocateDoctorID(tx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	values[schema.FieldDoctorID] = doctorID
	values[schema.FieldCreatedAt] = now
	values[schema.FieldUpdatedAt] = now

	if err := u.doctorRepo.Create(tx, values); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		if isDuplicateKeyError(err, "doctor_id") {
			return nil, storeError("create doctor", ErrDoctorIDConflict)
		}
		return nil, storeError("create doctor", err)
	}

	doctor, err := u.doctorRepo.FindByDoctorID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find created doctor: %+v", err)
		return nil, storeError("find created doctor", err)
	}
	if doctor == nil {
		return nil, storeError("find created doctor", ErrDoctorNotFound)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		if isDuplicateKeyError(err, "doctor_id") {
			return nil, storeError("create doctor", ErrDoctorIDConflict)
		}
		return nil, storeError("commit", err)
	}

	return &dto.CreateDoctorResponse{
		DoctorID: doctorID,
		ID:       doctor.ID,
		Warning:  u.recordActivity(ctx, doctorID, entity.ActivityCreated, activityCreatedDescription, actor),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, identifier string) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByIdentifier(u.db.WithContext(ctx), identifier)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, storeError("find doctor", err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context, query *dto.DoctorListQuery) ([]dto.DoctorResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), converter.DoctorListQueryToFilter(query))
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, storeError("list doctors", err)
	}

	return converter.DoctorsToResponses(doctors), nil
}

// UpdateDoctor writes exactly the supplied columns plus updated_at. An empty
// field set is accepted and only refreshes updated_at. The returned string is
// a non-fatal warning for the client.
func (u *doctorUsecase) UpdateDoctor(ctx context.Context, identifier string, fields map[string]interface{}, actor string) (string, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByIdentifier(tx, identifier)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return "", storeError("find doctor", err)
	}
	if doctor == nil {
		return "", ErrDoctorNotFound
	}

	values, err := schema.NormalizeUpdate(fields)
	if err != nil {
		u.log.Warnf("Failed to validate doctor update: %+v", err)
		return "", err
	}
	values[schema.FieldUpdatedAt] = time.Now()

	affected, err := u.doctorRepo.UpdateFields(tx, doctor.ID, values)
	if err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return "", storeError("update doctor", err)
	}
	if affected == 0 {
		return "", ErrDoctorNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return "", storeError("commit", err)
	}

	return u.recordActivity(ctx, doctor.DoctorID, entity.ActivityUpdated, activityUpdatedDescription, actor), nil
}

// DeleteDoctor removes the row for good. Its activity entries are kept and no
// entry is written for the deletion itself.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, identifier string) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByIdentifier(tx, identifier)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return storeError("find doctor", err)
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	affected, err := u.doctorRepo.Delete(tx, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return storeError("delete doctor", err)
	}
	if affected == 0 {
		return ErrDoctorNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return storeError("commit", err)
	}

	return nil
}

func (u *doctorUsecase) GetStats(ctx context.Context) (*dto.DoctorStatsResponse, error) {
	stats, err := u.doctorRepo.Stats(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to compute doctor stats: %+v", err)
		return nil, storeError("doctor stats", err)
	}

	return converter.DoctorStatsToResponse(stats), nil
}

func (u *doctorUsecase) GetActivityLogs(ctx context.Context, doctorID string) ([]dto.ActivityLogResponse, error) {
	logs, err := u.activityService.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, storeError("list activity logs", err)
	}

	return converter.ActivityLogsToResponses(logs), nil
}

func (u *doctorUsecase) ExportDoctors(ctx context.Context, query *dto.DoctorListQuery, w io.Writer) error {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), converter.DoctorListQueryToFilter(query))
	if err != nil {
		u.log.Warnf("Failed to find doctors for export: %+v", err)
		return storeError("list doctors", err)
	}

	if err := u.exporter.WriteDoctors(w, doctors); err != nil {
		u.log.Warnf("Failed to write doctor export: %+v", err)
		return err
	}
	return nil
}

// allocateDoctorID regenerates while the candidate is already taken. The
// unique index still guards the race between this check and the insert.
func (u *doctorUsecase) allocateDoctorID(db *gorm.DB) (string, error) {
	for attempt := 1; attempt <= u.idMaxAttempts; attempt++ {
		candidate := u.idGenerator.Generate()

		exists, err := u.doctorRepo.ExistsByDoctorID(db, candidate)
		if err != nil {
			u.log.Warnf("Failed to check doctor id: %+v", err)
			return "", storeError("check doctor id", err)
		}
		if !exists {
			return candidate, nil
		}

		u.log.WithFields(logrus.Fields{
			"doctor_id": candidate,
			"attempt":   attempt,
		}).Warn("Doctor ID already taken, regenerating")
	}

	return "", storeError("allocate doctor id", ErrDoctorIDConflict)
}

// recordActivity appends to the activity trail after the change is committed.
// A failure is reported as a warning and never undoes the change.
func (u *doctorUsecase) recordActivity(ctx context.Context, doctorID, activityType, description, actor string) string {
	if err := u.activityService.Record(ctx, doctorID, activityType, description, actor); err != nil {
		return activityWarning
	}
	return ""
}

// IsStoreError reports whether err came from the backing store.
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}
