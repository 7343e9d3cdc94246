package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in token claims.
const (
	RoleOperator = "operator"
	RolePlayer   = "player"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims for session tokens. Subject is the operator or player id. Player
// tokens are scoped to a single session via SessionID.
type Claims struct {
	Role      string `json:"role"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// TokenConfig holds JWT signing configuration.
type TokenConfig struct {
	Secret      []byte
	OperatorTTL time.Duration // default: 12 hours
	PlayerTTL   time.Duration // default: 6 hours
	Issuer      string
}

// Manager signs and validates operator and player tokens.
type Manager struct {
	secret      []byte
	operatorTTL time.Duration
	playerTTL   time.Duration
	issuer      string
}

// NewManager creates a token manager.
func NewManager(cfg TokenConfig) *Manager {
	if cfg.OperatorTTL == 0 {
		cfg.OperatorTTL = 12 * time.Hour
	}
	if cfg.PlayerTTL == 0 {
		cfg.PlayerTTL = 6 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "livequiz"
	}
	return &Manager{
		secret:      cfg.Secret,
		operatorTTL: cfg.OperatorTTL,
		playerTTL:   cfg.PlayerTTL,
		issuer:      cfg.Issuer,
	}
}

// IssueOperatorToken creates a token identifying a session operator.
func (m *Manager) IssueOperatorToken(operatorID string) (string, error) {
	return m.sign(Claims{
		Role:             RoleOperator,
		RegisteredClaims: m.registered(operatorID, m.operatorTTL),
	})
}

// IssuePlayerToken creates a token identifying a player within one session.
func (m *Manager) IssuePlayerToken(sessionID, playerID string) (string, error) {
	return m.sign(Claims{
		Role:             RolePlayer,
		SessionID:        sessionID,
		RegisteredClaims: m.registered(playerID, m.playerTTL),
	})
}

// Verify parses and validates a token.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *Manager) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
}

func (m *Manager) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
