package entity

import "time"

// Conversation groups exactly two users. ParticipantsKey is the sorted
// participant ids joined with ":" and carries a unique index so the same
// pair can never end up with two conversations.
type Conversation struct {
	Id              string    `bson:"_id" json:"id"`
	Participants    []string  `bson:"participants" json:"participants"`
	ParticipantsKey string    `bson:"participantsKey" json:"-"`
	LastMessage     string    `bson:"lastMessage" json:"lastMessage"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ConversationSummary is the per-conversation row of the inbox listing,
// enriched with the counterpart's identity and derived message state.
type ConversationSummary struct {
	Id          string `json:"id"`
	UserId      string `json:"userId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	University  string `json:"university,omitempty"`
	LastMessage string `json:"lastMessage"`
	Date        string `json:"date"`
	Unread      int64  `json:"unread"`
}
