package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/delivery/http/middleware"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/usecase"
	"github.com/Moraarn/sistercheck/pkg/response"
	"github.com/Moraarn/sistercheck/pkg/validator"

	"github.com/gorilla/mux"
)

type CareTemplateHandler struct {
	careTemplateUsecase usecase.CareTemplateUsecase
	validator           *validator.CustomValidator
}

func NewCareTemplateHandler(careTemplateUsecase usecase.CareTemplateUsecase, validator *validator.CustomValidator) *CareTemplateHandler {
	return &CareTemplateHandler{
		careTemplateUsecase: careTemplateUsecase,
		validator:           validator,
	}
}

func (h *CareTemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req dto.CreateCareTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	template, err := h.careTemplateUsecase.Create(r.Context(), user.ID.Hex(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPredictionFailed:
			response.ServiceUnavailable(w, "The prediction service is currently unavailable")
		default:
			response.InternalServerError(w, "Failed to create care template")
		}
		return
	}
	response.Success(w, http.StatusCreated, "Care template created successfully", response.M{
		"careTemplate": template,
	})
}

func (h *CareTemplateHandler) Latest(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	template, err := h.careTemplateUsecase.GetLatest(r.Context(), user.ID.Hex())
	if err != nil {
		switch err {
		case usecase.ErrCareTemplateNotFound:
			response.NotFound(w, "No care templates found")
		default:
			response.InternalServerError(w, "Failed to retrieve latest care template")
		}
		return
	}
	response.Success(w, http.StatusOK, "Latest care template retrieved successfully", response.M{
		"careTemplate": template,
	})
}

func (h *CareTemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	result, err := h.careTemplateUsecase.List(r.Context(), user.ID.Hex(), queryParams(r))
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve care templates")
		return
	}
	response.Success(w, http.StatusOK, "Care templates retrieved successfully", response.M(result))
}

func (h *CareTemplateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	template, err := h.careTemplateUsecase.GetByID(r.Context(), user.ID.Hex(), mux.Vars(r)["id"])
	if err != nil {
		h.writeCareTemplateError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Care template retrieved successfully", response.M{
		"careTemplate": template,
	})
}

func (h *CareTemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req dto.UpdateCareTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	template, err := h.careTemplateUsecase.Update(r.Context(), user.ID.Hex(), mux.Vars(r)["id"], &req)
	if err != nil {
		h.writeCareTemplateError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Care template updated successfully", response.M{
		"careTemplate": template,
	})
}

func (h *CareTemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	if err := h.careTemplateUsecase.Delete(r.Context(), user.ID.Hex(), mux.Vars(r)["id"]); err != nil {
		h.writeCareTemplateError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "Care template deleted successfully", nil)
}

func (h *CareTemplateHandler) ByStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	status := entity.CareTemplateStatus(mux.Vars(r)["status"])
	switch status {
	case entity.CareTemplatePending, entity.CareTemplateApproved, entity.CareTemplateInProgress, entity.CareTemplateCompleted:
	default:
		response.BadRequest(w, "Invalid status, expected pending, approved, in_progress or completed")
		return
	}

	templates, err := h.careTemplateUsecase.ByStatus(r.Context(), user.ID.Hex(), status)
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve care templates")
		return
	}
	response.Success(w, http.StatusOK, "Care templates retrieved successfully", response.M{
		"careTemplates": templates,
		"count":         len(templates),
	})
}

func (h *CareTemplateHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	stats, err := h.careTemplateUsecase.Stats(r.Context(), user.ID.Hex())
	if err != nil {
		response.InternalServerError(w, "Failed to compute care template statistics")
		return
	}
	response.Success(w, http.StatusOK, "Care template statistics retrieved successfully", response.M{
		"stats": stats,
	})
}

func (h *CareTemplateHandler) writeCareTemplateError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrCareTemplateNotFound:
		response.NotFound(w, "Care template not found")
	case usecase.ErrCareTemplateNotOwned:
		response.Forbidden(w, "You do not have access to this care template")
	default:
		response.InternalServerError(w, "Something went wrong")
	}
}
