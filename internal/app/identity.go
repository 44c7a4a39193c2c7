package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// IdentityService mints and verifies short-lived tokens binding a
// connection id to a room name. The match handler's rejoinGame handling
// uses a verified token to move a player who is still seated under that
// connection id onto a new one; it does not restore a player that Leave
// has already removed.
type IdentityService struct {
	secret []byte
	issuer string
	grace  time.Duration
}

// DefaultGrace is how long a connection id token remains valid after
// IssueToken mints it.
const DefaultGrace = 30 * time.Second

// NewIdentityService builds an IdentityService signing with secret.
func NewIdentityService(secret, issuer string, grace time.Duration) *IdentityService {
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &IdentityService{secret: []byte(secret), issuer: issuer, grace: grace}
}

// IssueToken mints a token binding connID to roomName for the grace window,
// starting from now.
func (s *IdentityService) IssueToken(connID, roomName string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("identity service is nil")
	}
	if connID == "" {
		return "", fmt.Errorf("connID is required")
	}
	claims := jwt.MapClaims{
		"iss":  s.issuer,
		"sub":  connID,
		"room": roomName,
		"exp":  time.Now().Add(s.grace).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ConnectionClaims is a verified token's payload.
type ConnectionClaims struct {
	ConnID   string
	RoomName string
}

// VerifyToken parses and validates tokenString, rejecting expired or
// mis-signed tokens.
func (s *IdentityService) VerifyToken(tokenString string) (*ConnectionClaims, error) {
	if s == nil {
		return nil, fmt.Errorf("identity service is nil")
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	connID, _ := claims["sub"].(string)
	roomName, _ := claims["room"].(string)
	if connID == "" {
		return nil, fmt.Errorf("token missing connection id")
	}
	return &ConnectionClaims{ConnID: connID, RoomName: roomName}, nil
}
