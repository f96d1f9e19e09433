package handler

import (
	"errors"
	"net/http"

	"docpool/internal/domain/schema"
	"docpool/internal/usecase"
	"docpool/pkg/response"
)

// writeError maps usecase errors to responses. Store messages are passed
// through only when exposeStoreErrors is set.
func writeError(w http.ResponseWriter, err error, fallback string, exposeStoreErrors bool) {
	var validationErrs schema.ValidationErrors
	var validationErr *schema.ValidationError

	switch {
	case errors.As(err, &validationErrs):
		response.ValidationError(w, validationErrs.Error(), validationErrs.Fields())
	case errors.As(err, &validationErr):
		response.ValidationError(w, validationErr.Error(), map[string]string{validationErr.Field: validationErr.Message})
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case usecase.IsStoreError(err) && exposeStoreErrors:
		response.InternalServerError(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
