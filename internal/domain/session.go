package domain

import "time"

// Session representa um visitante anônimo. Cada sessão possui um carrinho e um conjunto de favoritos,
// o equivalente ao perfil do navegador.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
