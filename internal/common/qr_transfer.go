package common

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/localstore"

	"github.com/golang-jwt/jwt/v5"
)

// QRTransferService encodes LightUser records as signed compact tokens
// for transfer between devices over QR codes. Signing keeps a scanned
// code from impersonating another org's scouter; the payload itself is
// not secret.
type QRTransferService struct {
	secret []byte
	ttl    time.Duration
}

// ErrTransferTokenInvalid means the scanned payload was not produced by
// this deployment or has expired.
var ErrTransferTokenInvalid = errors.New("transfer token invalid or expired")

type transferClaims struct {
	User localstore.LightUser `json:"user"`
	jwt.RegisteredClaims
}

// NewQRTransferService creates a new QR transfer service
func NewQRTransferService() *QRTransferService {
	secret := os.Getenv("QR_TRANSFER_SECRET")
	if secret == "" {
		secret = "scoutradioz-dev-secret"
	}
	return &QRTransferService{
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}
}

// Encode signs a LightUser into a compact token suitable for a QR code.
func (s *QRTransferService) Encode(user localstore.LightUser) (string, error) {
	now := time.Now()
	claims := transferClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign transfer token: %w", err)
	}
	return signed, nil
}

// Decode validates a scanned token and returns the LightUser it carries.
func (s *QRTransferService) Decode(tokenString string) (*localstore.LightUser, error) {
	var claims transferClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTransferTokenInvalid
	}
	return &claims.User, nil
}
