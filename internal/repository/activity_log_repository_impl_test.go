package repository

import (
	"testing"
	"time"

	"docpool/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLogRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityLogRepository()

	mock.ExpectQuery(`INSERT INTO "activity_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	log := &entity.ActivityLog{
		DoctorID:            "DOC-2026-0001",
		ActivityType:        entity.ActivityCreated,
		ActivityDescription: "Doctor profile created",
		PerformedBy:         "system",
	}
	require.NoError(t, repo.Create(db, log))

	assert.Equal(t, int64(11), log.ID)
	assert.False(t, log.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivityLogRepository_FindByDoctorID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivityLogRepository()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "activity_logs" WHERE doctor_id = \$1 ORDER BY created_at DESC,id DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "activity_type", "activity_description", "performed_by", "created_at"}).
			AddRow(2, "DOC-2026-0001", "updated", "Doctor profile updated", "asha", now).
			AddRow(1, "DOC-2026-0001", "created", "Doctor profile created", "system", now.Add(-time.Hour)))

	logs, err := repo.FindByDoctorID(db, "DOC-2026-0001", entity.ActivityLogLimit)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.ActivityUpdated, logs[0].ActivityType)
	assert.Equal(t, "asha", logs[0].PerformedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}
