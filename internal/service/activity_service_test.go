package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"docpool/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeActivityRepo struct {
	created   []*entity.ActivityLog
	createErr error
	logs      []entity.ActivityLog
	lastLimit int
}

func (r *fakeActivityRepo) Create(db *gorm.DB, log *entity.ActivityLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, log)
	return nil
}

func (r *fakeActivityRepo) FindByDoctorID(db *gorm.DB, doctorID string, limit int) ([]entity.ActivityLog, error) {
	r.lastLimit = limit
	return r.logs, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newMockDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestActivityService_Record(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := NewActivityService(newMockDB(t), quietLogger(), repo)

	err := svc.Record(context.Background(), "DOC-2026-0001", entity.ActivityCreated, "Doctor profile created", "asha")
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, "DOC-2026-0001", repo.created[0].DoctorID)
	assert.Equal(t, entity.ActivityCreated, repo.created[0].ActivityType)
	assert.Equal(t, "Doctor profile created", repo.created[0].ActivityDescription)
	assert.Equal(t, "asha", repo.created[0].PerformedBy)
}

func TestActivityService_RecordFailure(t *testing.T) {
	repo := &fakeActivityRepo{createErr: errors.New("relation \"activity_logs\" does not exist")}
	svc := NewActivityService(newMockDB(t), quietLogger(), repo)

	err := svc.Record(context.Background(), "DOC-2026-0001", entity.ActivityUpdated, "Doctor profile updated", "system")
	assert.Error(t, err)
}

func TestActivityService_ListByDoctorUsesLimit(t *testing.T) {
	repo := &fakeActivityRepo{logs: []entity.ActivityLog{{ID: 1}}}
	svc := NewActivityService(newMockDB(t), quietLogger(), repo)

	logs, err := svc.ListByDoctor(context.Background(), "DOC-2026-0001")
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, entity.ActivityLogLimit, repo.lastLimit)
}
