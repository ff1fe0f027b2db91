package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Moraarn/sistercheck/internal/converter"
	"github.com/Moraarn/sistercheck/internal/delivery/dto"
	"github.com/Moraarn/sistercheck/internal/delivery/http/middleware"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/usecase"
	"github.com/Moraarn/sistercheck/pkg/jwt"
	"github.com/Moraarn/sistercheck/pkg/response"
	"github.com/Moraarn/sistercheck/pkg/validator"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
	jwtService  *jwt.JWTService
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator, jwtService *jwt.JWTService) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		jwtService:  jwtService,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, token, err := h.userUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailTaken:
			response.Error(w, http.StatusConflict, "Email is already registered", nil)
		case usecase.ErrUsernameTaken:
			response.Error(w, http.StatusConflict, "Username is already taken", nil)
		default:
			response.InternalServerError(w, "Failed to register user")
		}
		return
	}

	setTokenCookie(w, token, h.jwtService.GetAccessExpiry())
	response.Success(w, http.StatusCreated, "User registered successfully", response.M{
		"user":  converter.UserToResponse(user),
		"token": token,
	})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, token, err := h.userUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Incorrect email or password")
		case usecase.ErrAccountSuspended:
			response.Forbidden(w, "Your account has been suspended")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	setTokenCookie(w, token, h.jwtService.GetAccessExpiry())
	response.Success(w, http.StatusOK, "Login successful", response.M{
		"user":  converter.UserToResponse(user),
		"token": token,
	})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}
	if err := h.userUsecase.Logout(r.Context(), claims.ID, claims.TokenID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}
	clearTokenCookie(w)
	response.Success(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}
	response.Success(w, http.StatusOK, "Profile retrieved successfully", response.M{
		"user": converter.UserToResponse(user),
	})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updated, err := h.userUsecase.UpdateSelf(r.Context(), user.ID.Hex(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}
	response.Success(w, http.StatusOK, "Profile updated successfully", response.M{
		"user": converter.UserToResponse(updated),
	})
}

func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}
	if err := h.userUsecase.DeleteSelf(r.Context(), user.ID.Hex()); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to delete account")
		}
		return
	}
	clearTokenCookie(w)
	response.Success(w, http.StatusOK, "Account deleted successfully", nil)
}

func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.RequestPasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	resetURLBase := "https://" + r.Host + "/api/v1/users"
	if err := h.userUsecase.RequestPasswordReset(r.Context(), req.Email, resetURLBase); err != nil {
		switch err {
		case usecase.ErrEmailSendFailed:
			response.InternalServerError(w, "There was an error sending the email. Try again later!")
		default:
			response.InternalServerError(w, "Failed to process password reset")
		}
		return
	}
	// Same reply whether or not the email is registered.
	response.Success(w, http.StatusOK, "Token sent to email!", nil)
}

func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	req.Token = mux.Vars(r)["token"]

	var body struct {
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	req.NewPassword = body.NewPassword
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, token, err := h.userUsecase.ResetPassword(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrResetTokenInvalid:
			response.BadRequest(w, "Token is invalid or has expired")
		default:
			response.InternalServerError(w, "Failed to reset password")
		}
		return
	}

	setTokenCookie(w, token, h.jwtService.GetAccessExpiry())
	response.Success(w, http.StatusOK, "Password reset successfully", response.M{
		"user":  converter.UserToResponse(user),
		"token": token,
	})
}

// CreateByAdmin provisions an account on someone else's behalf, so no
// session cookie is issued.
func (h *UserHandler) CreateByAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.CreateByAdmin(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailTaken:
			response.Error(w, http.StatusConflict, "Email is already registered", nil)
		case usecase.ErrUsernameTaken:
			response.Error(w, http.StatusConflict, "Username is already taken", nil)
		default:
			response.InternalServerError(w, "Failed to create user")
		}
		return
	}
	response.Success(w, http.StatusCreated, "User created successfully", response.M{
		"user": converter.UserToResponse(user),
	})
}

// List is the admin view over the user collection with full filter,
// search and pagination support.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.userUsecase.List(r.Context(), queryParams(r))
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve users")
		return
	}
	response.Success(w, http.StatusOK, "Users retrieved successfully", response.M(result))
}

func (h *UserHandler) ListByRole(w http.ResponseWriter, r *http.Request) {
	role := entity.UserRole(mux.Vars(r)["role"])
	switch role {
	case entity.RoleUser, entity.RolePeerSister, entity.RoleNurse, entity.RoleAdmin:
	default:
		response.BadRequest(w, "Invalid role")
		return
	}

	result, err := h.userUsecase.ListByRole(r.Context(), role, queryParams(r))
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve users")
		return
	}
	response.Success(w, http.StatusOK, "Users retrieved successfully", response.M(result))
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.userUsecase.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to retrieve user")
		}
		return
	}
	response.Success(w, http.StatusOK, "User retrieved successfully", response.M{
		"user": converter.UserToResponse(user),
	})
}

func (h *UserHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.UpdateByID(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to update user")
		}
		return
	}
	response.Success(w, http.StatusOK, "User updated successfully", response.M{
		"user": converter.UserToResponse(user),
	})
}

func (h *UserHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	if err := h.userUsecase.DeleteByID(r.Context(), mux.Vars(r)["id"]); err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to delete user")
		}
		return
	}
	response.Success(w, http.StatusOK, "User deleted successfully", nil)
}
