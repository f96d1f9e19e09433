package dto

import (
	"docpool/internal/domain/entity"
	"docpool/internal/domain/schema"
)

// Request DTOs

// Doctor create and update bodies are decoded into a field map and validated
// by the schema registry, so only the list query has a struct form.

type DoctorListQuery struct {
	Status         string `json:"status" validate:"omitempty,oneof=Active Dormant Inactive"`
	Category       string `json:"category" validate:"omitempty,oneof=Platinum Gold Silver"`
	Specialization string `json:"specialization" validate:"omitempty,max=100"`
	City           string `json:"city" validate:"omitempty,max=100"`
	State          string `json:"state" validate:"omitempty,max=100"`
	Search         string `json:"search" validate:"omitempty,max=100"`
}

// Response DTOs

type DoctorResponse struct {
	entity.Doctor
	NameParts schema.NameParts `json:"name_parts"`
}

type CreateDoctorResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	DoctorID string `json:"doctor_id"`
	ID       int64  `json:"id"`
	Warning  string `json:"warning,omitempty"`
}

type DoctorStatsResponse struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Platinum int64 `json:"platinum"`
	Gold     int64 `json:"gold"`
	Silver   int64 `json:"silver"`
}
