package repository

import (
	"strings"

	"docpool/internal/domain/entity"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applyDoctorFilter adds one bound predicate per non-empty criterion.
// Substring criteria are case-insensitive and match their input literally.
func applyDoctorFilter(db *gorm.DB, filter *entity.DoctorFilter) *gorm.DB {
	if filter == nil {
		return db
	}

	if filter.Status != "" {
		db = db.Where("engagement_status = ?", filter.Status)
	}
	if filter.Category != "" {
		db = db.Where("doctor_category = ?", filter.Category)
	}
	if filter.Specialization != "" {
		db = db.Where("specialization ILIKE ?", containsPattern(filter.Specialization))
	}
	if filter.City != "" {
		db = db.Where("city ILIKE ?", containsPattern(filter.City))
	}
	if filter.State != "" {
		db = db.Where("state ILIKE ?", containsPattern(filter.State))
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		db = db.Where("(full_name ILIKE ? OR mobile_number ILIKE ? OR email ILIKE ?)", pattern, pattern, pattern)
	}

	return db
}

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
