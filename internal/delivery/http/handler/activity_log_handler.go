package handler

import (
	"net/http"

	"docpool/internal/usecase"
	"docpool/pkg/response"

	"github.com/gorilla/mux"
)

type ActivityLogHandler struct {
	doctorUsecase     usecase.DoctorUsecase
	exposeStoreErrors bool
}

func NewActivityLogHandler(doctorUsecase usecase.DoctorUsecase, exposeStoreErrors bool) *ActivityLogHandler {
	return &ActivityLogHandler{
		doctorUsecase:     doctorUsecase,
		exposeStoreErrors: exposeStoreErrors,
	}
}

func (h *ActivityLogHandler) GetActivityLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.doctorUsecase.GetActivityLogs(r.Context(), mux.Vars(r)["doctorId"])
	if err != nil {
		writeError(w, err, "Failed to get activity logs", h.exposeStoreErrors)
		return
	}

	response.Success(w, http.StatusOK, "", logs)
}
