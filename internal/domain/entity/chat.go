package entity

import (
	"time"

	"github.com/Moraarn/sistercheck/pkg/apifeatures"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageFile  MessageType = "file"
)

// Message is one direct message between two accounts.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    string             `bson:"senderId" json:"senderId"`
	ReceiverID  string             `bson:"receiverId" json:"receiverId"`
	Content     string             `bson:"content" json:"content"`
	MessageType MessageType        `bson:"messageType" json:"messageType"`
	IsRead      bool               `bson:"isRead" json:"isRead"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ChatRoom is derived from the sorted pair of participant ids; sending
// A→B and B→A resolves to the same room. UnreadCount is keyed by the
// receiving participant's id.
type ChatRoom struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Participants []string           `bson:"participants" json:"participants"`
	LastMessage  string             `bson:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	UnreadCount  map[string]int64   `bson:"unreadCount" json:"unreadCount"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var MessageSchema = apifeatures.NewSchema(
	"_id", "senderId", "receiverId", "content", "messageType", "isRead",
	"createdAt", "updatedAt",
)
