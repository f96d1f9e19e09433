package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docpool/internal/delivery/dto"
	"docpool/internal/usecase"
	"docpool/pkg/response"
	"docpool/pkg/validator"

	"github.com/gorilla/mux"
)

const (
	PerformedByHeader = "X-Performed-By"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxBodyBytes    = 1 << 20
)

var errTrailingData = errors.New("unexpected data after JSON object")

type DoctorHandler struct {
	doctorUsecase     usecase.DoctorUsecase
	validator         *validator.CustomValidator
	defaultActor      string
	exposeStoreErrors bool
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator, defaultActor string, exposeStoreErrors bool) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase:     doctorUsecase,
		validator:         validator,
		defaultActor:      defaultActor,
		exposeStoreErrors: exposeStoreErrors,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(w, r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	created, err := h.doctorUsecase.CreateDoctor(r.Context(), fields, h.actor(r))
	if err != nil {
		writeError(w, err, "Failed to create doctor", h.exposeStoreErrors)
		return
	}

	created.Success = true
	created.Message = "Doctor created successfully"
	response.JSON(w, http.StatusCreated, created)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get doctor", h.exposeStoreErrors)
		return
	}

	response.Success(w, http.StatusOK, "", doctor)
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	query, ok := h.listQuery(w, r)
	if !ok {
		return
	}

	doctors, err := h.doctorUsecase.ListDoctors(r.Context(), query)
	if err != nil {
		writeError(w, err, "Failed to get doctors", h.exposeStoreErrors)
		return
	}

	response.List(w, doctors, len(doctors))
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(w, r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	warning, err := h.doctorUsecase.UpdateDoctor(r.Context(), mux.Vars(r)["id"], fields, h.actor(r))
	if err != nil {
		writeError(w, err, "Failed to update doctor", h.exposeStoreErrors)
		return
	}

	response.SuccessWithWarning(w, http.StatusOK, "Doctor updated successfully", warning)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	if err := h.doctorUsecase.DeleteDoctor(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Failed to delete doctor", h.exposeStoreErrors)
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func (h *DoctorHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.doctorUsecase.GetStats(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get stats", h.exposeStoreErrors)
		return
	}

	response.Success(w, http.StatusOK, "", stats)
}

func (h *DoctorHandler) ExportDoctors(w http.ResponseWriter, r *http.Request) {
	query, ok := h.listQuery(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.doctorUsecase.ExportDoctors(r.Context(), query, &buf); err != nil {
		writeError(w, err, "Failed to export doctors", h.exposeStoreErrors)
		return
	}

	filename := fmt.Sprintf("doctors-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	// the status is already sent; a failed write means the client went away
	_, _ = buf.WriteTo(w)
}

func (h *DoctorHandler) listQuery(w http.ResponseWriter, r *http.Request) (*dto.DoctorListQuery, bool) {
	values := r.URL.Query()
	query := &dto.DoctorListQuery{
		Status:         strings.TrimSpace(values.Get("status")),
		Category:       strings.TrimSpace(values.Get("category")),
		Specialization: values.Get("specialization"),
		City:           values.Get("city"),
		State:          values.Get("state"),
		Search:         values.Get("search"),
	}

	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, "Invalid query parameters", h.validator.FormatValidationErrors(err))
		return nil, false
	}
	return query, true
}

func (h *DoctorHandler) actor(r *http.Request) string {
	if actor := strings.TrimSpace(r.Header.Get(PerformedByHeader)); actor != "" {
		return actor
	}
	return h.defaultActor
}

// decodeFields reads a JSON object body. Numbers keep their literal form so
// the schema can tell integers from decimals. An empty body is an empty object.
func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]interface{}, error) {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.UseNumber()

	var fields map[string]interface{}
	if err := decoder.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]interface{}{}, nil
		}
		return nil, err
	}
	if decoder.More() {
		return nil, errTrailingData
	}
	if fields == nil {
		fields = map[string]interface{}{}
	}
	return fields, nil
}
