package sessionservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
	"gomarket/internal/pkg/logger"
	"gomarket/internal/pkg/token"
)

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(sessionID string) (string, time.Time, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// SessionService emite e renova as sessões anônimas.
// A sessão não tem estado no servidor além do carrinho e dos favoritos guardados pelo ID.
type SessionService struct {
	TokenSvc TokenService
	Logger   logger.Logger
}

// NewService cria uma nova instância do SessionService.
func NewService(tokenSvc TokenService, log logger.Logger) *SessionService {
	return &SessionService{TokenSvc: tokenSvc, Logger: log}
}

// CreateSession emite uma sessão nova com ID aleatório.
func (s *SessionService) CreateSession(ctx context.Context) (domain.Session, error) {
	return s.issue(uuid.NewString())
}

// RefreshSession emite um novo token para a mesma sessão, preservando carrinho e favoritos.
// O token atual precisa ser válido.
func (s *SessionService) RefreshSession(ctx context.Context, tokenString string) (domain.Session, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return domain.Session{}, apperror.NewUnauthorizedError("Token ausente.")
	}
	claims, err := s.TokenSvc.ValidateToken(tokenString)
	if err != nil {
		return domain.Session{}, apperror.NewUnauthorizedError("Token inválido ou expirado.")
	}
	return s.issue(claims.SessionID)
}

func (s *SessionService) issue(sessionID string) (domain.Session, error) {
	tok, expiresAt, err := s.TokenSvc.GenerateToken(sessionID)
	if err != nil {
		return domain.Session{}, apperror.NewInternalError("Falha ao gerar o token da sessão.", err)
	}

	s.Logger.Debug("Sessão emitida.", map[string]interface{}{"session_id": sessionID})
	return domain.Session{ID: sessionID, Token: tok, ExpiresAt: expiresAt}, nil
}
