package domain

// PromoResult é o resultado da aplicação de um promocódigo. Não é persistido.
type PromoResult struct {
	Accepted         bool    `json:"accepted"`
	Code             string  `json:"code,omitempty"`
	DiscountFraction float64 `json:"discountFraction"`
	Message          string  `json:"message"`
}

// PromoRequest é o payload de aplicação de promocódigo.
type PromoRequest struct {
	Code string `json:"code"`
}
