package entity

import "time"

type User struct {
	Id         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	Password   string    `bson:"password" json:"-"` // Don't expose password in JSON
	Role       string    `bson:"role" json:"role"`
	University string    `bson:"university,omitempty" json:"university,omitempty"`
	Verified   bool      `bson:"verified" json:"verified"`
	IsOnline   bool      `bson:"isOnline" json:"isOnline"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}
