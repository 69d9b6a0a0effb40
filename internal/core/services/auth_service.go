package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPIN      = errors.New("invalid pin")
	ErrPairingDisabled = errors.New("pairing is disabled (no pin configured)")
)

// AuthService pairs a client device by checking the PIN against the bcrypt
// hash from the configuration.
type AuthService struct {
	pinHash []byte
	tokens  *TokenService
}

func NewAuthService(pinHash string, tokens *TokenService) *AuthService {
	return &AuthService{
		pinHash: []byte(strings.TrimSpace(pinHash)),
		tokens:  tokens,
	}
}

type PairResult struct {
	DeviceID string `json:"device_id"`
	Token    string `json:"token"`
}

func (s *AuthService) Pair(pin string) (*PairResult, error) {
	if len(s.pinHash) == 0 {
		return nil, ErrPairingDisabled
	}

	if err := bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)); err != nil {
		return nil, ErrInvalidPIN
	}

	deviceID := uuid.NewString()
	token, err := s.tokens.GenerateToken(deviceID)
	if err != nil {
		return nil, fmt.Errorf("auth service: failed to issue token: %w", err)
	}

	return &PairResult{DeviceID: deviceID, Token: token}, nil
}
