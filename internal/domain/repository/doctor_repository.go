package repository

import (
	"docpool/internal/domain/entity"

	"gorm.io/gorm"
)

// DoctorRepository persists doctor rows. Write methods take normalized column
// maps produced by the schema package.
type DoctorRepository interface {
	Create(db *gorm.DB, values map[string]interface{}) error
	FindByIdentifier(db *gorm.DB, identifier string) (*entity.Doctor, error)
	FindByDoctorID(db *gorm.DB, doctorID string) (*entity.Doctor, error)
	ExistsByDoctorID(db *gorm.DB, doctorID string) (bool, error)
	FindAll(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.Doctor, error)
	UpdateFields(db *gorm.DB, id int64, values map[string]interface{}) (int64, error)
	Delete(db *gorm.DB, id int64) (int64, error)
	Stats(db *gorm.DB) (*entity.DoctorStats, error)
}
