package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/delivery/http/middleware"
	"github.com/Moraarn/sistercheck/internal/usecase"
	"github.com/Moraarn/sistercheck/pkg/response"
	"github.com/Moraarn/sistercheck/pkg/validator"

	"github.com/gorilla/mux"
)

type RiskAssessmentHandler struct {
	riskUsecase usecase.RiskAssessmentUsecase
	validator   *validator.CustomValidator
}

func NewRiskAssessmentHandler(riskUsecase usecase.RiskAssessmentUsecase, validator *validator.CustomValidator) *RiskAssessmentHandler {
	return &RiskAssessmentHandler{
		riskUsecase: riskUsecase,
		validator:   validator,
	}
}

func (h *RiskAssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req dto.CreateRiskAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	assessment, template, err := h.riskUsecase.Create(r.Context(), user, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to save risk assessment")
		return
	}

	data := response.M{"assessment": assessment}
	if template != nil {
		data["careTemplate"] = template
	}
	response.Success(w, http.StatusCreated, "Risk assessment saved successfully", data)
}

func (h *RiskAssessmentHandler) Latest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	assessment, err := h.riskUsecase.GetLatest(r.Context(), user.ID.Hex())
	if err != nil {
		switch err {
		case usecase.ErrRiskAssessmentNotFound:
			response.NotFound(w, "No risk assessments found")
		default:
			response.InternalServerError(w, "Failed to retrieve latest risk assessment")
		}
		return
	}
	response.Success(w, http.StatusOK, "Latest risk assessment retrieved successfully", response.M{
		"assessment": assessment,
	})
}

func (h *RiskAssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	result, err := h.riskUsecase.List(r.Context(), user.ID.Hex(), queryParams(r))
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve assessment history")
		return
	}
	response.Success(w, http.StatusOK, "Assessment history retrieved successfully", response.M(result))
}

func (h *RiskAssessmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	assessment, err := h.riskUsecase.GetByID(r.Context(), user.ID.Hex(), mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrRiskAssessmentNotFound:
			response.NotFound(w, "Risk assessment not found")
		case usecase.ErrRiskAssessmentNotOwned:
			response.Forbidden(w, "You do not have access to this risk assessment")
		default:
			response.InternalServerError(w, "Failed to retrieve risk assessment")
		}
		return
	}
	response.Success(w, http.StatusOK, "Risk assessment retrieved successfully", response.M{
		"assessment": assessment,
	})
}
