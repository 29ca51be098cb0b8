package dto

import "time"

// AccessCheckRequest is the body of POST /api/auth/check
type AccessCheckRequest struct {
	Password string `json:"password"`
}

// AccessCheckResponse reports the outcome of a password check
type AccessCheckResponse struct {
	Success   bool       `json:"success"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Msg       string     `json:"msg,omitempty"`
}
