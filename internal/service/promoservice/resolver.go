package promoservice

import (
	"fmt"
	"strings"

	"gomarket/internal/domain"
)

// DefaultCode e DefaultDiscount são a promoção global vigente.
const (
	DefaultCode     = "MARKET"
	DefaultDiscount = 0.5
)

// Resolver valida promocódigos contra um único código aceito, sem diferenciar maiúsculas.
// Não há expiração, limite por usuário nem acúmulo.
type Resolver struct {
	code     string
	discount float64
}

// NewResolver cria o resolvedor. Código vazio ou desconto fora de (0, 1] usam os padrões.
func NewResolver(code string, discount float64) *Resolver {
	code = strings.TrimSpace(code)
	if code == "" {
		code = DefaultCode
	}
	if discount <= 0 || discount > 1 {
		discount = DefaultDiscount
	}
	return &Resolver{code: strings.ToUpper(code), discount: discount}
}

// ApplyPromoCode resolve o código informado.
func (r *Resolver) ApplyPromoCode(code string) domain.PromoResult {
	if strings.EqualFold(strings.TrimSpace(code), r.code) {
		return domain.PromoResult{
			Accepted:         true,
			Code:             r.code,
			DiscountFraction: r.discount,
			Message:          fmt.Sprintf("Promocódigo aplicado: %.0f%% de desconto.", r.discount*100),
		}
	}
	return domain.PromoResult{
		Accepted:         false,
		DiscountFraction: 0,
		Message:          "Promocódigo inválido.",
	}
}
