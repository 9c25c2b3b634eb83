package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/constants"
	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionCookieName is the cookie carrying the session id.
const SessionCookieName = "scoutradioz_session"

// ErrSessionNotFound means the session id was not present or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionData is a signed-in user's session.
type SessionData struct {
	SessionID   string                `json:"session_id"`
	UserID      string                `json:"user_id"`
	Username    string                `json:"username"`
	OrgKey      string                `json:"org_key"`
	AccessLevel constants.AccessLevel `json:"access_level"`
	CreatedAt   time.Time             `json:"created_at"`
	ExpiresAt   time.Time             `json:"expires_at"`
}

// SessionService manages user sessions in Redis
type SessionService struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(redisClient *redis.Client) *SessionService {
	return &SessionService{
		redis: redisClient,
		ttl:   7 * 24 * time.Hour,
	}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// CreateSession creates a new session for a user
func (s *SessionService) CreateSession(ctx context.Context, userID, username, orgKey string, level constants.AccessLevel) (string, error) {
	sessionID := uuid.New().String()

	now := time.Now()
	session := SessionData{
		SessionID:   sessionID,
		UserID:      userID,
		Username:    username,
		OrgKey:      orgKey,
		AccessLevel: level,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.redis.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	logging.Info("Session created",
		"session_id", sessionID,
		"user_id", userID,
		"org_key", orgKey,
	)
	return sessionID, nil
}

// GetSession loads a session by id.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.DeleteSession(ctx, sessionID)
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

// DeleteSession removes a session.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, sessionKey(sessionID)).Err()
}
