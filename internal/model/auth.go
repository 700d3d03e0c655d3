package model

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the JWT payload for authenticated users
type UserClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// LoginResponse is returned on successful register/login
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
