package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// AttestService mints and verifies signed win attestations. A token proves
// to external consumers (leaderboard audits, tournament services) that a
// round result was produced by this server.
type AttestService struct {
	secret string
	issuer string
}

// NewAttestService builds an attestation service for the given HMAC secret
// and issuer name.
func NewAttestService(secret, issuer string) *AttestService {
	return &AttestService{secret: secret, issuer: issuer}
}

// WinClaims are the verified contents of a win token.
type WinClaims struct {
	UserID  string
	MatchID string
	Score   int
}

// GenerateWinToken signs a win attestation for the given user and match.
func (s *AttestService) GenerateWinToken(userID, matchID string, score int) (string, error) {
	if s == nil {
		return "", fmt.Errorf("attest service is nil")
	}
	if userID == "" {
		return "", fmt.Errorf("userID is required")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("attest config is incomplete")
	}

	claims := jwt.MapClaims{
		"iss":   s.issuer,
		"sub":   userID,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"jti":   fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63()),
		"match": matchID,
		"score": score,
		"won":   true,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifyWinToken validates a win token's signature and shape and returns
// its claims.
func (s *AttestService) VerifyWinToken(tokenString string) (*WinClaims, error) {
	if s == nil {
		return nil, fmt.Errorf("attest service is nil")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse win token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("win token is invalid")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return nil, fmt.Errorf("win token issuer mismatch")
	}
	if won, _ := claims["won"].(bool); !won {
		return nil, fmt.Errorf("token does not attest a win")
	}

	sub, _ := claims["sub"].(string)
	match, _ := claims["match"].(string)
	score, _ := claims["score"].(float64)
	return &WinClaims{UserID: sub, MatchID: match, Score: int(score)}, nil
}
