package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// issuer identifica os tokens emitidos por este serviço.
const issuer = "GoMarket-API"

// TokenService define o contrato para manipulação de tokens de sessão.
type TokenService interface {
	GenerateToken(sessionID string) (string, time.Time, error)
	ValidateToken(tokenString string) (*CustomClaims, error)
}

// CustomClaims são as informações da sessão anônima armazenadas no JWT.
type CustomClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Service implementa TokenService com HS256.
type Service struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

// NewService cria uma nova instância do serviço de tokens.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
		now:       time.Now,
	}
}

// GenerateToken cria um JWT assinado para a sessão e retorna também a expiração.
func (s *Service) GenerateToken(sessionID string) (string, time.Time, error) {
	if sessionID == "" {
		return "", time.Time{}, errors.New("ID de sessão vazio")
	}

	now := s.now()
	expiresAt := now.Add(s.expiry)
	claims := CustomClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   sessionID,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := tok.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("falha ao assinar o token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken valida o token e retorna as claims se for válido.
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("token inválido: %w", err)
	}

	if !tok.Valid {
		return nil, errors.New("token não é válido")
	}

	return claims, nil
}
