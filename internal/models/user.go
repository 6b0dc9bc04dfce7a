package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account document stored in MongoDB. Username carries a
// unique index; PasswordHash is a bcrypt digest and never leaves the
// server.
type User struct {
	ID           primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	Username     string             `json:"username"   bson:"username"`
	Email        string             `json:"email"      bson:"email"`
	PasswordHash string             `json:"-"          bson:"password_hash"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

// SignupForm is the form body for POST /signup.
type SignupForm struct {
	Username string
	Email    string
	Password string
}

// LoginForm is the form body for POST /login.
type LoginForm struct {
	Username string
	Password string
}
