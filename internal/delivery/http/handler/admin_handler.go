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

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
	jwtService   *jwt.JWTService
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator, jwtService *jwt.JWTService) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
		jwtService:   jwtService,
	}
}

func (h *AdminHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	admin, token, err := h.adminUsecase.Signin(r.Context(), &req)
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
		"admin": converter.AdminToResponse(admin),
		"token": token,
	})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}
	if err := h.adminUsecase.Logout(r.Context(), claims.ID, claims.TokenID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}
	clearTokenCookie(w)
	response.Success(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *AdminHandler) Profile(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetAdminFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}
	response.Success(w, http.StatusOK, "Profile retrieved successfully", response.M{
		"admin": converter.AdminToResponse(admin),
	})
}

func (h *AdminHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetAdminFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req dto.UpdateAdminProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updated, err := h.adminUsecase.UpdateProfile(r.Context(), admin.ID.Hex(), &req)
	if err != nil {
		switch err {
		case usecase.ErrAdminNotFound:
			response.NotFound(w, "Admin not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}
	response.Success(w, http.StatusOK, "Profile updated successfully", response.M{
		"admin": converter.AdminToResponse(updated),
	})
}
