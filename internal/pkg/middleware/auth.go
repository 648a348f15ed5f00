package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
	"gomarket/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
type ContextKey int

const (
	SessionIDKey ContextKey = iota
)

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware valida o token de sessão (Authorization: Bearer <token>)
// e anexa o ID da sessão ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				writeAppError(w, apperror.NewUnauthorizedError("Token de sessão ausente ou malformado."))
				return
			}

			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil || claims.SessionID == "" {
				writeAppError(w, apperror.NewUnauthorizedError("Token de sessão inválido ou expirado."))
				return
			}

			ctx := context.WithValue(r.Context(), SessionIDKey, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionIDFromContext extrai o ID da sessão anexado pelo middleware.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionIDKey).(string)
	return id, ok && id != ""
}

// WithSessionID anexa um ID de sessão ao contexto (usado em testes de handlers).
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

func writeAppError(w http.ResponseWriter, err apperror.AppError) {
	writeError(w, err.HTTPStatus(), err.Category(), err.Error())
}

func writeError(w http.ResponseWriter, status int, category, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}
