package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"docpool/internal/delivery/dto"
	"docpool/internal/domain/entity"
	"docpool/internal/domain/schema"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeDoctorRepo struct {
	byIdentifier map[string]*entity.Doctor
	taken        map[string]bool
	existsCalls  int

	created   map[string]interface{}
	createErr error

	updatedID      int64
	updated        map[string]interface{}
	updateAffected int64

	deletedID int64

	filter *entity.DoctorFilter
	all    []entity.Doctor
	stats  *entity.DoctorStats
}

func (r *fakeDoctorRepo) Create(db *gorm.DB, values map[string]interface{}) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = values
	return nil
}

func (r *fakeDoctorRepo) FindByIdentifier(db *gorm.DB, identifier string) (*entity.Doctor, error) {
	return r.byIdentifier[identifier], nil
}

func (r *fakeDoctorRepo) FindByDoctorID(db *gorm.DB, doctorID string) (*entity.Doctor, error) {
	if r.created == nil || r.created[schema.FieldDoctorID] != doctorID {
		return nil, nil
	}
	return &entity.Doctor{ID: 7, DoctorID: doctorID}, nil
}

func (r *fakeDoctorRepo) ExistsByDoctorID(db *gorm.DB, doctorID string) (bool, error) {
	r.existsCalls++
	return r.taken[doctorID], nil
}

func (r *fakeDoctorRepo) FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error) {
	r.filter = filter
	return r.all, nil
}

func (r *fakeDoctorRepo) UpdateFields(db *gorm.DB, id int64, values map[string]interface{}) (int64, error) {
	r.updatedID = id
	r.updated = values
	return r.updateAffected, nil
}

func (r *fakeDoctorRepo) Delete(db *gorm.DB, id int64) (int64, error) {
	r.deletedID = id
	return 1, nil
}

func (r *fakeDoctorRepo) Stats(db *gorm.DB) (*entity.DoctorStats, error) {
	return r.stats, nil
}

type recordedActivity struct {
	doctorID, activityType, description, actor string
}

type fakeActivityService struct {
	recorded  []recordedActivity
	recordErr error
	logs      []entity.ActivityLog
}

func (s *fakeActivityService) Record(ctx context.Context, doctorID, activityType, description, performedBy string) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.recorded = append(s.recorded, recordedActivity{doctorID, activityType, description, performedBy})
	return nil
}

func (s *fakeActivityService) ListByDoctor(ctx context.Context, doctorID string) ([]entity.ActivityLog, error) {
	return s.logs, nil
}

type sequenceGenerator struct {
	ids   []string
	calls int
}

func (g *sequenceGenerator) Generate() string {
	id := g.ids[g.calls%len(g.ids)]
	g.calls++
	return id
}

type fakeExporter struct {
	doctors []entity.Doctor
}

func (e *fakeExporter) WriteDoctors(w io.Writer, doctors []entity.Doctor) error {
	e.doctors = doctors
	_, err := w.Write([]byte("xlsx"))
	return err
}

type fixture struct {
	usecase   DoctorUsecase
	repo      *fakeDoctorRepo
	activity  *fakeActivityService
	generator *sequenceGenerator
	exporter  *fakeExporter
	mock      sqlmock.Sqlmock
}

func newFixture(t *testing.T, maxAttempts int) *fixture {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &fixture{
		repo:      &fakeDoctorRepo{byIdentifier: map[string]*entity.Doctor{}, taken: map[string]bool{}, updateAffected: 1},
		activity:  &fakeActivityService{},
		generator: &sequenceGenerator{ids: []string{"DOC-2026-0001"}},
		exporter:  &fakeExporter{},
		mock:      mock,
	}
	f.usecase = NewDoctorUsecase(db, log, f.repo, f.activity, f.exporter, f.generator, maxAttempts)
	return f
}

func validFields() map[string]interface{} {
	return map[string]interface{}{
		"first_name":       "Asha",
		"last_name":        "Rao",
		"mobile_number":    "9876543210",
		"whatsapp_enabled": true,
	}
}

func TestCreateDoctor(t *testing.T) {
	f := newFixture(t, 5)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.usecase.CreateDoctor(context.Background(), validFields(), "asha")
	require.NoError(t, err)

	assert.Equal(t, "DOC-2026-0001", resp.DoctorID)
	assert.Equal(t, int64(7), resp.ID)
	assert.Empty(t, resp.Warning)

	assert.Equal(t, "DOC-2026-0001", f.repo.created[schema.FieldDoctorID])
	assert.Equal(t, "Dr. Asha Rao", f.repo.created[schema.FieldFullName])
	assert.Equal(t, int64(1), f.repo.created["whatsapp_enabled"])
	assert.Equal(t, int64(0), f.repo.created["kol"])
	assert.Equal(t, entity.EngagementActive, f.repo.created[schema.FieldEngagementStatus])
	assert.NotNil(t, f.repo.created[schema.FieldCreatedAt])
	assert.Equal(t, f.repo.created[schema.FieldCreatedAt], f.repo.created[schema.FieldUpdatedAt])

	assert.Equal(t, []recordedActivity{
		{"DOC-2026-0001", entity.ActivityCreated, "Doctor profile created", "asha"},
	}, f.activity.recorded)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateDoctor_ValidationWritesNothing(t *testing.T) {
	f := newFixture(t, 5)

	_, err := f.usecase.CreateDoctor(context.Background(), map[string]interface{}{"first_name": "Asha"}, "asha")

	var verrs schema.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.Fields(), schema.FieldMobileNumber)
	assert.Nil(t, f.repo.created)
	assert.Empty(t, f.activity.recorded)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateDoctor_RegeneratesTakenID(t *testing.T) {
	f := newFixture(t, 5)
	f.generator.ids = []string{"DOC-2026-0001", "DOC-2026-0002"}
	f.repo.taken["DOC-2026-0001"] = true
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.usecase.CreateDoctor(context.Background(), validFields(), "system")
	require.NoError(t, err)

	assert.Equal(t, "DOC-2026-0002", resp.DoctorID)
	assert.Equal(t, 2, f.repo.existsCalls)
}

func TestCreateDoctor_GivesUpAfterMaxAttempts(t *testing.T) {
	f := newFixture(t, 3)
	f.repo.taken["DOC-2026-0001"] = true
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.CreateDoctor(context.Background(), validFields(), "system")

	assert.ErrorIs(t, err, ErrDoctorIDConflict)
	assert.True(t, IsStoreError(err))
	assert.Equal(t, 3, f.generator.calls)
	assert.Nil(t, f.repo.created)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateDoctor_UniqueViolationIsConflict(t *testing.T) {
	f := newFixture(t, 5)
	f.repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "idx_doctors_doctor_id"}
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.CreateDoctor(context.Background(), validFields(), "system")

	assert.ErrorIs(t, err, ErrDoctorIDConflict)
	assert.Empty(t, f.activity.recorded)
}

func TestCreateDoctor_ActivityFailureIsWarning(t *testing.T) {
	f := newFixture(t, 5)
	f.activity.recordErr = errors.New("activity_logs unavailable")
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.usecase.CreateDoctor(context.Background(), validFields(), "system")
	require.NoError(t, err)

	assert.Equal(t, "DOC-2026-0001", resp.DoctorID)
	assert.NotEmpty(t, resp.Warning)
}

func TestGetDoctor(t *testing.T) {
	f := newFixture(t, 5)
	f.repo.byIdentifier["DOC-2026-0001"] = &entity.Doctor{ID: 1, DoctorID: "DOC-2026-0001", FullName: "Dr. Asha Rao"}

	resp, err := f.usecase.GetDoctor(context.Background(), "DOC-2026-0001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, schema.NameParts{First: "Asha", Last: "Rao"}, resp.NameParts)

	_, err = f.usecase.GetDoctor(context.Background(), "DOC-2026-9999")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestUpdateDoctor_WritesOnlySuppliedFields(t *testing.T) {
	f := newFixture(t, 5)
	f.repo.byIdentifier["3"] = &entity.Doctor{ID: 3, DoctorID: "DOC-2026-0003"}
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	warning, err := f.usecase.UpdateDoctor(context.Background(), "3", map[string]interface{}{
		"city":             "Pune",
		"kol":              "1",
		"doctor_id":        "DOC-2000-0000",
		"consultation_fee": "",
	}, "asha")
	require.NoError(t, err)
	assert.Empty(t, warning)

	assert.Equal(t, int64(3), f.repo.updatedID)
	assert.Len(t, f.repo.updated, 4)
	assert.Equal(t, "Pune", f.repo.updated["city"])
	assert.Equal(t, int64(1), f.repo.updated["kol"])
	assert.Contains(t, f.repo.updated, "consultation_fee")
	assert.Nil(t, f.repo.updated["consultation_fee"])
	assert.Contains(t, f.repo.updated, schema.FieldUpdatedAt)
	assert.NotContains(t, f.repo.updated, schema.FieldDoctorID)

	assert.Equal(t, []recordedActivity{
		{"DOC-2026-0003", entity.ActivityUpdated, "Doctor profile updated", "asha"},
	}, f.activity.recorded)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUpdateDoctor_EmptyBodyTouchesTimestamp(t *testing.T) {
	f := newFixture(t, 5)
	f.repo.byIdentifier["DOC-2026-0003"] = &entity.Doctor{ID: 3, DoctorID: "DOC-2026-0003"}
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	_, err := f.usecase.UpdateDoctor(context.Background(), "DOC-2026-0003", map[string]interface{}{}, "system")
	require.NoError(t, err)

	assert.Len(t, f.repo.updated, 1)
	assert.Contains(t, f.repo.updated, schema.FieldUpdatedAt)
	assert.Len(t, f.activity.recorded, 1)
}

func TestUpdateDoctor_NotFound(t *testing.T) {
	f := newFixture(t, 5)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.UpdateDoctor(context.Background(), "42", map[string]interface{}{"city": "Pune"}, "system")

	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.Nil(t, f.repo.updated)
	assert.Empty(t, f.activity.recorded)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUpdateDoctor_InvalidFieldWritesNothing(t *testing.T) {
	f := newFixture(t, 5)
	f.repo.byIdentifier["3"] = &entity.Doctor{ID: 3, DoctorID: "DOC-2026-0003"}
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, err := f.usecase.UpdateDoctor(context.Background(), "3", map[string]interface{}{"favourite_colour": "blue"}, "system")

	var verrs schema.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Nil(t, f.repo.updated)
	assert.Empty(t, f.activity.recorded)
}

func TestDeleteDoctor(t *testing.T) {
	f := newFixture(t, 5)
	f.repo.byIdentifier["DOC-2026-0003"] = &entity.Doctor{ID: 3, DoctorID: "DOC-2026-0003"}
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	require.NoError(t, f.usecase.DeleteDoctor(context.Background(), "DOC-2026-0003"))
	assert.Equal(t, int64(3), f.repo.deletedID)
	assert.Empty(t, f.activity.recorded)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestDeleteDoctor_NotFound(t *testing.T) {
	f := newFixture(t, 5)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	err := f.usecase.DeleteDoctor(context.Background(), "DOC-2026-0404")
	assert.ErrorIs(t, err, ErrDoctorNotFound)
	assert.Zero(t, f.repo.deletedID)
}

func TestListDoctors_PassesFilter(t *testing.T) {
	f := newFixture(t, 5)
	f.repo.all = []entity.Doctor{{ID: 2, FullName: "Dr. B"}, {ID: 1, FullName: "Dr. A"}}

	doctors, err := f.usecase.ListDoctors(context.Background(), &dto.DoctorListQuery{Status: "Active", Search: " 98 "})
	require.NoError(t, err)

	assert.Len(t, doctors, 2)
	assert.Equal(t, int64(2), doctors[0].ID)
	assert.Equal(t, &entity.DoctorFilter{Status: "Active", Search: "98"}, f.repo.filter)
}

func TestGetStats(t *testing.T) {
	f := newFixture(t, 5)
	f.repo.stats = &entity.DoctorStats{Total: 4, Active: 3, Gold: 1}

	stats, err := f.usecase.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &dto.DoctorStatsResponse{Total: 4, Active: 3, Gold: 1}, stats)
}

func TestGetActivityLogs(t *testing.T) {
	f := newFixture(t, 5)
	f.activity.logs = []entity.ActivityLog{{ID: 9, DoctorID: "DOC-2026-0001", ActivityType: entity.ActivityUpdated, PerformedBy: "asha"}}

	logs, err := f.usecase.GetActivityLogs(context.Background(), "DOC-2026-0001")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "asha", logs[0].PerformedBy)
}

func TestExportDoctors(t *testing.T) {
	f := newFixture(t, 5)
	f.repo.all = []entity.Doctor{{ID: 1}}

	var buf bytes.Buffer
	require.NoError(t, f.usecase.ExportDoctors(context.Background(), &dto.DoctorListQuery{City: "Pune"}, &buf))

	assert.Equal(t, "xlsx", buf.String())
	assert.Len(t, f.exporter.doctors, 1)
	assert.Equal(t, "Pune", f.repo.filter.City)
}
