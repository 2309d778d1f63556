package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// sessionIssuer is written to and required in every session token.
const sessionIssuer = "wanderlust"

// ErrInvalidSessionToken is returned for tokens that fail signature, expiry
// or claim checks.
var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionToken is a signed cookie value naming a server-side session.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// NewSessionToken signs an HS256 JWT carrying the session id. The session
// contents stay on the server; the token only proves the id was issued here.
func NewSessionToken(secret, sessionID string, ttl time.Duration) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates raw and returns the session id it carries.
func ParseSessionToken(secret, raw string) (string, error) {
	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid || claims.SessionID == "" {
		return "", ErrInvalidSessionToken
	}
	return claims.SessionID, nil
}
