package token

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// secretKey stores the HMAC key configured at startup.
var secretKey []byte

// sessionTTL is how long an issued session token stays valid.
const sessionTTL = 24 * time.Hour

// Claims is the JWT payload carried by every session token. SessionID is a
// random UUID registered in the session store so a logout can revoke the
// token before it expires.
type Claims struct {
	UserID    uint   `json:"uid"`
	Role      string `json:"role"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SetSecretKey installs the signing key. Must be called once at startup
// before any token is issued or verified.
func SetSecretKey(secret string) {
	secretKey = []byte(secret)
}

// Issue signs a new session token for the given user and returns the token
// string together with its session ID and expiry.
func Issue(userID uint, role string) (signed string, sessionID string, expiresAt time.Time, err error) {
	if len(secretKey) == 0 {
		return "", "", time.Time{}, errors.New("token secret key is not set")
	}

	sessionID = uuid.NewString()
	expiresAt = time.Now().Add(sessionTTL)

	claims := Claims{
		UserID:    userID,
		Role:      role,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		return "", "", time.Time{}, err
	}
	return signed, sessionID, expiresAt, nil
}

// Verify parses and validates a session token string.
func Verify(tokenStr string) (*Claims, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("token secret key is not set")
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == 0 || claims.SessionID == "" {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
