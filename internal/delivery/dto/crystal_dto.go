package dto

type CrystalTalkRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"sessionId"`
}
