package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Moraarn/sistercheck/internal/converter"
	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/delivery/http/middleware"
	"github.com/Moraarn/sistercheck/internal/usecase"
	"github.com/Moraarn/sistercheck/pkg/jwt"
	"github.com/Moraarn/sistercheck/pkg/response"
	"github.com/Moraarn/sistercheck/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
	jwtService     *jwt.JWTService
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator, jwtService *jwt.JWTService) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
		jwtService:     jwtService,
	}
}

func (h *PatientHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, token, err := h.patientUsecase.Signup(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientEmailTaken:
			response.Error(w, http.StatusConflict, "A patient with this email already exists", nil)
		default:
			response.InternalServerError(w, "Failed to register patient")
		}
		return
	}

	setTokenCookie(w, token, h.jwtService.GetAccessExpiry())
	response.Success(w, http.StatusCreated, "Patient registered successfully", response.M{
		"patient": converter.PatientToResponse(patient),
		"token":   token,
	})
}

func (h *PatientHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req dto.SigninPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, token, err := h.patientUsecase.Signin(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Incorrect email or password")
		default:
			response.InternalServerError(w, "Failed to sign in")
		}
		return
	}

	setTokenCookie(w, token, h.jwtService.GetAccessExpiry())
	response.Success(w, http.StatusOK, "Signed in successfully", response.M{
		"patient": converter.PatientToResponse(patient),
		"token":   token,
	})
}

func (h *PatientHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}
	if err := h.patientUsecase.Logout(r.Context(), claims.ID, claims.TokenID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}
	clearTokenCookie(w)
	response.Success(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *PatientHandler) Profile(w http.ResponseWriter, r *http.Request) {
	patient, ok := middleware.GetPatientFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}
	response.Success(w, http.StatusOK, "Profile retrieved successfully", response.M{
		"patient": converter.PatientToResponse(patient),
	})
}

func (h *PatientHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	patient, ok := middleware.GetPatientFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req dto.UpdatePatientProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updated, err := h.patientUsecase.UpdateProfile(r.Context(), patient.ID.Hex(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}
	response.Success(w, http.StatusOK, "Profile updated successfully", response.M{
		"patient": converter.PatientToResponse(updated),
	})
}

// List pages through all patients for the clinical staff view.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	page := parseInt64(params["page"], 1)
	limit := parseInt64(params["limit"], 10)

	patients, total, err := h.patientUsecase.List(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve patients")
		return
	}
	response.Success(w, http.StatusOK, "Patients retrieved successfully", response.M{
		"patients": converter.PatientsToResponses(patients),
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *PatientHandler) Search(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.Search(r.Context(), queryParams(r))
	if err != nil {
		response.InternalServerError(w, "Failed to search patients")
		return
	}
	response.Success(w, http.StatusOK, "Patients retrieved successfully", response.M{
		"patients": converter.PatientsToResponses(patients),
		"count":    len(patients),
	})
}

// CreateWithAssessment registers a patient and reports the predicted
// risk in the same response when the prediction service is reachable.
func (h *PatientHandler) CreateWithAssessment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientWithAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, prediction, token, err := h.patientUsecase.CreateWithAssessment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientEmailTaken:
			response.Error(w, http.StatusConflict, "A patient with this email already exists", nil)
		default:
			response.InternalServerError(w, "Failed to register patient")
		}
		return
	}

	setTokenCookie(w, token, h.jwtService.GetAccessExpiry())
	data := response.M{
		"patient": converter.PatientToResponse(patient),
		"token":   token,
	}
	if prediction != nil {
		data["riskAssessment"] = prediction
	}
	response.Success(w, http.StatusCreated, "Patient registered successfully", data)
}
