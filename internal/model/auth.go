package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims are JWT claims for an authenticated user
type UserClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RegisterRequest is the request body for account creation
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after register or login
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
