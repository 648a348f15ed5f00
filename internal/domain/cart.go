package domain

import "time"

// CartLine é uma linha do carrinho. A identidade é calculada por Key(), não armazenada.
type CartLine struct {
	Product          Product   `json:"product"` // Cópia do produto no momento da inclusão
	Quantity         int       `json:"quantity"`
	SelectedVariants Selection `json:"selectedVariants"`
	Price            float64   `json:"price"` // Preço unitário capturado na inclusão
}

// Key retorna a chave composta da linha (produto + variantes).
func (l CartLine) Key() string {
	return CartKey(l.Product.ID, l.SelectedVariants)
}

// CartSummary são os totais do carrinho exibidos no checkout.
type CartSummary struct {
	ItemCount        int     `json:"itemCount"`
	Subtotal         float64 `json:"subtotal"`
	Discount         float64 `json:"discount"`
	DiscountFraction float64 `json:"discountFraction"`
	PromoCode        string  `json:"promoCode,omitempty"`
	Shipping         float64 `json:"shipping"`
	Total            float64 `json:"total"`
}

// Order é o registro gerado pelo checkout (stub): as linhas e os totais no momento do pedido.
type Order struct {
	ID        string      `json:"id"`
	SessionID string      `json:"sessionId"`
	Lines     []CartLine  `json:"lines"`
	Summary   CartSummary `json:"summary"`
	PlacedAt  time.Time   `json:"placedAt"`
}

// AddItemRequest é o payload de inclusão no carrinho.
type AddItemRequest struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Variants  Selection `json:"variants"`
}

// UpdateItemRequest é o payload de alteração de quantidade.
type UpdateItemRequest struct {
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	VariantKey string `json:"variantKey,omitempty"`
}

// CheckoutRequest é o payload do checkout.
type CheckoutRequest struct {
	PromoCode string `json:"promoCode,omitempty"`
}
