package dto

type SendMessageRequest struct {
	ReceiverID  string `json:"receiverId" validate:"required"`
	Content     string `json:"content" validate:"required"`
	MessageType string `json:"messageType" validate:"omitempty,oneof=text image file"`
}

type MarkMessagesReadRequest struct {
	SenderID string `json:"senderId" validate:"required"`
}
