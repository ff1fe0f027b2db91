package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/delivery/http/middleware"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/usecase"
	"github.com/Moraarn/sistercheck/pkg/response"
	"github.com/Moraarn/sistercheck/pkg/validator"

	"github.com/gorilla/mux"
)

type SymptomHandler struct {
	symptomUsecase usecase.SymptomUsecase
	validator      *validator.CustomValidator
}

func NewSymptomHandler(symptomUsecase usecase.SymptomUsecase, validator *validator.CustomValidator) *SymptomHandler {
	return &SymptomHandler{
		symptomUsecase: symptomUsecase,
		validator:      validator,
	}
}

func (h *SymptomHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req dto.CreateSymptomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	symptom, template, err := h.symptomUsecase.Create(r.Context(), user, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to log symptoms")
		return
	}

	data := response.M{"symptom": symptom}
	if template != nil {
		data["careTemplate"] = template
	}
	response.Success(w, http.StatusCreated, "Symptoms logged successfully", data)
}

func (h *SymptomHandler) Latest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	symptom, err := h.symptomUsecase.GetLatest(r.Context(), user.ID.Hex())
	if err != nil {
		switch err {
		case usecase.ErrSymptomNotFound:
			response.NotFound(w, "No symptom entries found")
		default:
			response.InternalServerError(w, "Failed to retrieve latest symptoms")
		}
		return
	}
	response.Success(w, http.StatusOK, "Latest symptoms retrieved successfully", response.M{
		"symptom": symptom,
	})
}

func (h *SymptomHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	result, err := h.symptomUsecase.List(r.Context(), user.ID.Hex(), queryParams(r))
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve symptom history")
		return
	}
	response.Success(w, http.StatusOK, "Symptom history retrieved successfully", response.M(result))
}

func (h *SymptomHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	symptom, err := h.symptomUsecase.GetByID(r.Context(), user.ID.Hex(), mux.Vars(r)["id"])
	if err != nil {
		h.writeSymptomError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Symptom entry retrieved successfully", response.M{
		"symptom": symptom,
	})
}

func (h *SymptomHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req dto.UpdateSymptomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	symptom, err := h.symptomUsecase.Update(r.Context(), user.ID.Hex(), mux.Vars(r)["id"], &req)
	if err != nil {
		h.writeSymptomError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Symptom entry updated successfully", response.M{
		"symptom": symptom,
	})
}

func (h *SymptomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	if err := h.symptomUsecase.Delete(r.Context(), user.ID.Hex(), mux.Vars(r)["id"]); err != nil {
		h.writeSymptomError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Symptom entry deleted successfully", nil)
}

func (h *SymptomHandler) BySeverity(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	severity := entity.Severity(mux.Vars(r)["severity"])
	switch severity {
	case entity.SeverityMild, entity.SeverityModerate, entity.SeveritySevere:
	default:
		response.BadRequest(w, "Invalid severity, expected Mild, Moderate or Severe")
		return
	}

	symptoms, err := h.symptomUsecase.BySeverity(r.Context(), user.ID.Hex(), severity)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve symptoms")
		return
	}
	response.Success(w, http.StatusOK, "Symptoms retrieved successfully", response.M{
		"symptoms": symptoms,
		"count":    len(symptoms),
	})
}

func (h *SymptomHandler) Recent(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	symptoms, err := h.symptomUsecase.Recent(r.Context(), user.ID.Hex(), days)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve recent symptoms")
		return
	}
	response.Success(w, http.StatusOK, "Recent symptoms retrieved successfully", response.M{
		"symptoms": symptoms,
		"count":    len(symptoms),
	})
}

func (h *SymptomHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	stats, err := h.symptomUsecase.Stats(r.Context(), user.ID.Hex())
	if err != nil {
		response.InternalServerError(w, "Failed to compute symptom statistics")
		return
	}
	response.Success(w, http.StatusOK, "Symptom statistics retrieved successfully", response.M{
		"stats": stats,
	})
}

func (h *SymptomHandler) writeSymptomError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrSymptomNotFound:
		response.NotFound(w, "Symptom entry not found")
	case usecase.ErrSymptomNotOwned:
		response.Forbidden(w, "You do not have access to this symptom entry")
	default:
		response.InternalServerError(w, "Something went wrong")
	}
}
