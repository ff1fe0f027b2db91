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

type CrystalHandler struct {
	crystalUsecase usecase.CrystalUsecase
	validator      *validator.CustomValidator
}

func NewCrystalHandler(crystalUsecase usecase.CrystalUsecase, validator *validator.CustomValidator) *CrystalHandler {
	return &CrystalHandler{
		crystalUsecase: crystalUsecase,
		validator:      validator,
	}
}

func (h *CrystalHandler) Talk(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req dto.CrystalTalkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	reply, err := h.crystalUsecase.Talk(r.Context(), user.ID.Hex(), req.SessionID, req.Message)
	if err != nil {
		switch err {
		case usecase.ErrCrystalSessionNotFound:
			response.NotFound(w, "Chat session not found")
		default:
			response.InternalServerError(w, "Failed to get a response from Crystal")
		}
		return
	}
	response.Success(w, http.StatusOK, "Response generated successfully", response.M{
		"response":     reply.Response,
		"sessionId":    reply.SessionID,
		"sessionTitle": reply.SessionTitle,
	})
}

func (h *CrystalHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	sessions, err := h.crystalUsecase.Sessions(r.Context(), user.ID.Hex())
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve chat sessions")
		return
	}
	response.Success(w, http.StatusOK, "Chat sessions retrieved successfully", response.M{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

func (h *CrystalHandler) SessionMessages(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	session, messages, err := h.crystalUsecase.SessionWithMessages(r.Context(), user.ID.Hex(), mux.Vars(r)["sessionId"])
	if err != nil {
		switch err {
		case usecase.ErrCrystalSessionNotFound:
			response.NotFound(w, "Chat session not found")
		default:
			response.InternalServerError(w, "Failed to retrieve chat session")
		}
		return
	}
	response.Success(w, http.StatusOK, "Chat session retrieved successfully", response.M{
		"session":  session,
		"messages": messages,
	})
}

func (h *CrystalHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	if err := h.crystalUsecase.DeleteSession(r.Context(), user.ID.Hex(), mux.Vars(r)["sessionId"]); err != nil {
		switch err {
		case usecase.ErrCrystalSessionNotFound:
			response.NotFound(w, "Chat session not found")
		default:
			response.InternalServerError(w, "Failed to delete chat session")
		}
		return
	}
	response.Success(w, http.StatusOK, "Chat session deleted successfully", nil)
}
