package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/othello/internal/model"
)

// TokenPrefix marks seat tokens so they are recognisable in headers and state files
const TokenPrefix = "seat_"

// Config holds configuration for the seat token service
type Config struct {
	// Cost is the bcrypt cost used to hash issued tokens
	Cost int
}

// DefaultConfig returns default token configuration
func DefaultConfig() Config {
	return Config{
		Cost: bcrypt.DefaultCost,
	}
}

// Service issues and checks the secret tokens that authorise moves for a seat.
// Only the bcrypt hash of a token is stored with the game.
type Service struct {
	cost int
}

// New creates a new seat token Service
func New(cfg Config) *Service {
	if cfg.Cost == 0 {
		cfg.Cost = DefaultConfig().Cost
	}
	if cfg.Cost < bcrypt.MinCost {
		cfg.Cost = bcrypt.MinCost
	}
	return &Service{cost: cfg.Cost}
}

// IssueToken generates a new token and returns it with its hash
func (s *Service) IssueToken() (token string, hash string, err error) {
	token = s.generateToken()
	h, err := bcrypt.GenerateFromPassword([]byte(token), s.cost)
	if err != nil {
		return "", "", fmt.Errorf("hashing seat token: %w", err)
	}
	return token, string(h), nil
}

// Verify checks token against the seat's stored hash
func (s *Service) Verify(seat model.Seat, token string) error {
	if seat.TokenHash == "" || token == "" {
		return model.ErrInvalidSeatToken
	}
	if err := bcrypt.CompareHashAndPassword([]byte(seat.TokenHash), []byte(token)); err != nil {
		return model.ErrInvalidSeatToken
	}
	return nil
}

// VerifyAny succeeds if token belongs to either seat of the game
func (s *Service) VerifyAny(game *model.Game, token string) error {
	for _, seat := range []model.Seat{game.Black, game.White} {
		if seat.IsBot() {
			continue
		}
		if s.Verify(seat, token) == nil {
			return nil
		}
	}
	return model.ErrInvalidSeatToken
}

// generateToken generates a random token with the seat prefix
func (s *Service) generateToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return TokenPrefix + base64.RawURLEncoding.EncodeToString(b)
}
