package models

import "time"

// User is the acting identity resolved by the auth layer before the
// reservation engine runs.
type User struct {
	ID             string    `bson:"id" json:"id"`
	Username       string    `bson:"username" json:"username"`
	Email          string    `bson:"email" json:"email"`
	HashedPassword string    `bson:"hashed_password" json:"-"`
	FullName       string    `bson:"full_name" json:"full_name"`
	Role           string    `bson:"role" json:"role"`
	IsActive       bool      `bson:"is_active" json:"is_active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
