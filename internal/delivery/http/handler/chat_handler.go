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

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.CustomValidator
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, validator *validator.CustomValidator) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
	}
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.chatUsecase.Send(r.Context(), user.ID.Hex(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSelfMessage:
			response.BadRequest(w, "Cannot send a message to yourself")
		default:
			response.InternalServerError(w, "Failed to send message")
		}
		return
	}
	response.Success(w, http.StatusCreated, "Message sent successfully", response.M{
		"chatMessage": message,
	})
}

// Messages returns the paged conversation between the logged-in user
// and the user in the path.
func (h *ChatHandler) Messages(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	otherID := mux.Vars(r)["userId"]
	result, err := h.chatUsecase.MessagesBetween(r.Context(), user.ID.Hex(), otherID, queryParams(r))
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve messages")
		return
	}
	response.Success(w, http.StatusOK, "Messages retrieved successfully", response.M(result))
}

func (h *ChatHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	rooms, err := h.chatUsecase.Rooms(r.Context(), user.ID.Hex())
	if err != nil {
		response.InternalServerError(w, "Failed to retrieve chat rooms")
		return
	}
	response.Success(w, http.StatusOK, "Chat rooms retrieved successfully", response.M{
		"rooms": rooms,
		"count": len(rooms),
	})
}

func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	var req dto.MarkMessagesReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	count, err := h.chatUsecase.MarkRead(r.Context(), user.ID.Hex(), req.SenderID)
	if err != nil {
		response.InternalServerError(w, "Failed to mark messages as read")
		return
	}
	response.Success(w, http.StatusOK, "Messages marked as read", response.M{
		"markedCount": count,
	})
}

func (h *ChatHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	count, err := h.chatUsecase.UnreadCount(r.Context(), user.ID.Hex())
	if err != nil {
		response.InternalServerError(w, "Failed to count unread messages")
		return
	}
	response.Success(w, http.StatusOK, "Unread count retrieved successfully", response.M{
		"unreadCount": count,
	})
}

func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "You are not logged in! Please log in to get access.")
		return
	}

	if err := h.chatUsecase.DeleteMessage(r.Context(), user.ID.Hex(), mux.Vars(r)["id"]); err != nil {
		switch err {
		case usecase.ErrMessageNotFound:
			response.NotFound(w, "Message not found")
		case usecase.ErrMessageNotOwned:
			response.Forbidden(w, "You can only delete your own messages")
		default:
			response.InternalServerError(w, "Failed to delete message")
		}
		return
	}
	response.Success(w, http.StatusOK, "Message deleted successfully", nil)
}
