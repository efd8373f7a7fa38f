package entity

import "time"

const MaxMessageLength = 500

type Message struct {
	Id             string    `bson:"_id" json:"id"`
	ConversationId string    `bson:"conversationId" json:"conversationId"`
	Sender         string    `bson:"sender" json:"sender"`
	Receiver       string    `bson:"receiver" json:"receiver"`
	Content        string    `bson:"content" json:"content"`
	Read           bool      `bson:"read" json:"read"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

type MessageView struct {
	Message
	IsMine bool `json:"isMine"`
}

// ConversationHistory is the full exchange with one counterpart.
type ConversationHistory struct {
	User     User          `json:"user"`
	Messages []MessageView `json:"messages"`
}
