package dtos

import "time"

// APIResponse is the uniform JSON envelope for API handlers.
type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// UploadResponse reports a stored pit image.
type UploadResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// TransferResponse carries an encoded QR transfer token.
type TransferResponse struct {
	Token string `json:"token"`
}

// LoginRequest selects an org and optionally a user account.
type LoginRequest struct {
	OrgKey string `json:"org_key"`
	UserID string `json:"user_id,omitempty"`
}

// LoginResponse reports a created session.
type LoginResponse struct {
	SessionID   string `json:"session_id"`
	Username    string `json:"username"`
	OrgKey      string `json:"org_key"`
	AccessLevel int    `json:"access_level"`
	Redirect    string `json:"redirect,omitempty"`
}
