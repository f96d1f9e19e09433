package response

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Warning string      `json:"warning,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithWarning reports a completed change that had a non-fatal problem.
func SuccessWithWarning(w http.ResponseWriter, statusCode int, message string, warning string) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Warning: warning,
	})
}

func List(w http.ResponseWriter, data interface{}, count int) {
	JSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

func Error(w http.ResponseWriter, statusCode int, message string, details interface{}) {
	JSON(w, statusCode, Response{
		Success: false,
		Error:   message,
		Details: details,
	})
}

func ValidationError(w http.ResponseWriter, message string, details interface{}) {
	if message == "" {
		message = "Validation failed"
	}
	Error(w, http.StatusBadRequest, message, details)
}

func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Bad request"
	}
	Error(w, http.StatusBadRequest, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message, nil)
}

func ServiceUnavailable(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusServiceUnavailable, data)
}
