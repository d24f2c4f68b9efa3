package hdsite

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidToken is returned for any token that cannot be accepted:
// malformed encoding, invalid payload, or past expiry. Callers never need
// to distinguish the cases — they all mean "not authenticated".
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL is how long a minted session token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// AdminRole is the only role the panel knows about.
const AdminRole = "admin"

// EncodeToken serializes a payload to JSON and base64-encodes it into a
// cookie-safe string.
//
// The encoding is deliberately reversible without any key: it provides
// obfuscation, not integrity. Anyone holding the string can read and forge
// the payload. Do not treat a decoded token as proof of anything beyond
// "the login handler issued a token with this shape at some point".
func EncodeToken(p TokenPayload) string {
	b, _ := json.Marshal(p)
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeToken is the inverse of EncodeToken.
func DecodeToken(token string) (TokenPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return TokenPayload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	var p TokenPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return TokenPayload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return p, nil
}

// CreateAuthToken mints an admin session token for username expiring ttl
// from now. Exp is stored as unix milliseconds.
func CreateAuthToken(username string, ttl time.Duration) string {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return EncodeToken(TokenPayload{
		Username: username,
		Role:     AdminRole,
		Exp:      time.Now().Add(ttl).UnixMilli(),
	})
}

// VerifyAuthToken decodes a token and checks its expiry. An expired token
// fails exactly like a malformed one.
func VerifyAuthToken(token string) (TokenPayload, error) {
	p, err := DecodeToken(token)
	if err != nil {
		return TokenPayload{}, err
	}
	if p.Exp <= time.Now().UnixMilli() {
		return TokenPayload{}, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	return p, nil
}
