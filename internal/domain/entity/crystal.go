package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CrystalMessageType string

const (
	CrystalMessageUser      CrystalMessageType = "user"
	CrystalMessageAssistant CrystalMessageType = "crystal"
)

// CrystalSession is one conversation with the Crystal assistant. The
// session id is an opaque random hex string, not the Mongo id.
type CrystalSession struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userId" json:"userId"`
	SessionID    string             `bson:"sessionId" json:"sessionId"`
	Title        string             `bson:"title" json:"title"`
	LastMessage  string             `bson:"lastMessage" json:"lastMessage"`
	MessageCount int64              `bson:"messageCount" json:"messageCount"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CrystalMessage stores one side of an exchange: the user's text in
// Message or the assistant's text in Response, never both, tagged by
// MessageType. Timestamp is strictly increasing within a session.
type CrystalMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	SessionID   string             `bson:"sessionId" json:"sessionId"`
	Message     string             `bson:"message" json:"message"`
	Response    string             `bson:"response" json:"response"`
	MessageType CrystalMessageType `bson:"messageType" json:"messageType"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
