package repository

import (
	"errors"
	"strconv"

	"docpool/internal/domain/entity"
	domainRepo "docpool/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, values map[string]interface{}) error {
	return db.Table(entity.Doctor{}.TableName()).Create(values).Error
}

// FindByIdentifier matches either the internal key or the doctor_id.
// When several rows match, the lowest internal key wins.
func (r *doctorRepository) FindByIdentifier(db *gorm.DB, identifier string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := identifierQuery(db, identifier).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByDoctorID(db *gorm.DB, doctorID string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("doctor_id = ?", doctorID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) ExistsByDoctorID(db *gorm.DB, doctorID string) (bool, error) {
	var count int64
	err := db.Model(&entity.Doctor{}).Where("doctor_id = ?", doctorID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *doctorRepository) FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := listQuery(db, filter).Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// UpdateFields sets exactly the given columns on the row with the given key.
func (r *doctorRepository) UpdateFields(db *gorm.DB, id int64, values map[string]interface{}) (int64, error) {
	result := db.Table(entity.Doctor{}.TableName()).Where("id = ?", id).Updates(values)
	return result.RowsAffected, result.Error
}

func (r *doctorRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, result.Error
}

func (r *doctorRepository) Stats(db *gorm.DB) (*entity.DoctorStats, error) {
	var stats entity.DoctorStats
	err := statsQuery(db).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func identifierQuery(db *gorm.DB, identifier string) *gorm.DB {
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return db.Where("id = ? OR doctor_id = ?", id, identifier)
	}
	return db.Where("doctor_id = ?", identifier)
}

func listQuery(db *gorm.DB, filter *entity.DoctorFilter) *gorm.DB {
	return applyDoctorFilter(db.Model(&entity.Doctor{}), filter).
		Order("created_at DESC").
		Order("id DESC")
}

func statsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&entity.Doctor{}).Select(`COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN engagement_status = ? THEN 1 ELSE 0 END), 0) AS active,
		COALESCE(SUM(CASE WHEN doctor_category = ? THEN 1 ELSE 0 END), 0) AS platinum,
		COALESCE(SUM(CASE WHEN doctor_category = ? THEN 1 ELSE 0 END), 0) AS gold,
		COALESCE(SUM(CASE WHEN doctor_category = ? THEN 1 ELSE 0 END), 0) AS silver`,
		entity.EngagementActive, entity.CategoryPlatinum, entity.CategoryGold, entity.CategorySilver)
}
