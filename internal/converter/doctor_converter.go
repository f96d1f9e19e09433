package converter

import (
	"strings"

	"docpool/internal/delivery/dto"
	"docpool/internal/domain/entity"
	"docpool/internal/domain/schema"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		Doctor:    *doctor,
		NameParts: schema.SplitFullName(doctor.FullName),
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = dto.DoctorResponse{
			Doctor:    doctor,
			NameParts: schema.SplitFullName(doctor.FullName),
		}
	}
	return responses
}

// DoctorListQueryToFilter converts list query parameters to a domain filter
func DoctorListQueryToFilter(query *dto.DoctorListQuery) *entity.DoctorFilter {
	if query == nil {
		return &entity.DoctorFilter{}
	}

	return &entity.DoctorFilter{
		Status:         strings.TrimSpace(query.Status),
		Category:       strings.TrimSpace(query.Category),
		Specialization: strings.TrimSpace(query.Specialization),
		City:           strings.TrimSpace(query.City),
		State:          strings.TrimSpace(query.State),
		Search:         strings.TrimSpace(query.Search),
	}
}

// DoctorStatsToResponse converts DoctorStats to DoctorStatsResponse DTO
func DoctorStatsToResponse(stats *entity.DoctorStats) *dto.DoctorStatsResponse {
	if stats == nil {
		return &dto.DoctorStatsResponse{}
	}

	return &dto.DoctorStatsResponse{
		Total:    stats.Total,
		Active:   stats.Active,
		Platinum: stats.Platinum,
		Gold:     stats.Gold,
		Silver:   stats.Silver,
	}
}
