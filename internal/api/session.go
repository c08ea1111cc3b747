package api

import (
	"crypto/hmac"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Bright-Bots-Initiative/brightboost-sub001/internal/constants"
)

// sessionClaims identifies the authenticated student. Identity issuance
// (login) lives outside this module; the engine only validates tokens.
type sessionClaims struct {
	Sub string `json:"sub"` // student ID
	Iat int64  `json:"iat"`
	Exp int64  `json:"exp"`
}

var devSecret []byte

func getSessionSecret() ([]byte, error) {
	secret := os.Getenv(constants.EnvSessionSecret)
	if secret == "" {
		// Generate an in-memory secret for development if not set
		if len(devSecret) == 0 {
			devSecret = make([]byte, 32)
			if _, err := crand.Read(devSecret); err != nil {
				return nil, errors.New("failed to generate dev session secret")
			}
		}
		return devSecret, nil
	}
	return []byte(secret), nil
}

func sign(payload []byte, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// MintSessionToken issues a signed session token for the student. Used
// by tests and ops tooling; production tokens come from the auth service
// sharing the same SESSION_SECRET.
func MintSessionToken(studentID string, ttl time.Duration) (string, error) {
	secret, err := getSessionSecret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := sessionClaims{Sub: studentID, Iat: now.Unix(), Exp: now.Add(ttl).Unix()}
	b, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign([]byte(payload), secret), nil
}

func parseAndValidateSession(token string) (*sessionClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return nil, errors.New("malformed session token")
	}
	secret, err := getSessionSecret()
	if err != nil {
		return nil, err
	}
	expected := sign([]byte(parts[0]), secret)
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return nil, errors.New("bad session signature")
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("bad session payload: %w", err)
	}
	var claims sessionClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("bad session claims: %w", err)
	}
	if claims.Sub == "" {
		return nil, errors.New("session missing subject")
	}
	if time.Now().Unix() >= claims.Exp {
		return nil, errors.New("session expired")
	}
	return &claims, nil
}
