package converter

import (
	"docpool/internal/delivery/dto"
	"docpool/internal/domain/entity"
)

// ActivityLogsToResponses converts a slice of ActivityLog entities to slice of ActivityLogResponse DTOs
func ActivityLogsToResponses(logs []entity.ActivityLog) []dto.ActivityLogResponse {
	responses := make([]dto.ActivityLogResponse, len(logs))
	for i, log := range logs {
		responses[i] = dto.ActivityLogResponse{
			ID:                  log.ID,
			DoctorID:            log.DoctorID,
			ActivityType:        log.ActivityType,
			ActivityDescription: log.ActivityDescription,
			PerformedBy:         log.PerformedBy,
			CreatedAt:           log.CreatedAt,
		}
	}
	return responses
}
