// Package pricingservice resolve preços e estoque por variante e calcula os totais do carrinho.
// Todas as funções são puras.
package pricingservice

import (
	"math"

	"github.com/shopspring/decimal"

	"gomarket/internal/domain"
)

// CalculatePrice retorna o preço unitário efetivo para a seleção.
// O primeiro atributo selecionado (memória > cor > tamanho) com preço em VariantPricing vence;
// sem correspondência, vale o preço base.
func CalculatePrice(p domain.Product, sel *domain.Selection) float64 {
	if p.VariantPricing == nil || sel == nil {
		return p.Price
	}
	if override, ok := lookup(p.VariantPricing, *sel); ok {
		return override
	}
	return p.Price
}

// AvailableStock retorna o estoque disponível para a seleção, nunca negativo.
// Usa VariantStock com a mesma prioridade de CalculatePrice; sem correspondência, vale Quantity.
func AvailableStock(p domain.Product, sel domain.Selection) int {
	stock := p.Quantity
	if v, ok := lookup(p.VariantStock, sel); ok {
		stock = v
	}
	if stock < 0 {
		return 0
	}
	return stock
}

func lookup[T any](byValue map[string]T, sel domain.Selection) (T, bool) {
	var zero T
	if len(byValue) == 0 {
		return zero, false
	}
	for _, attr := range domain.Attributes {
		value, ok := sel.Get(attr)
		if !ok {
			continue
		}
		if v, found := byValue[value]; found {
			return v, true
		}
	}
	return zero, false
}

// DiscountedPrice aplica o desconto percentual ao preço unitário (exibição).
func DiscountedPrice(unit, discountPercent float64) float64 {
	return unit * (1 - discountPercent/100)
}

// OriginalPrice estima o preço "de" a partir do preço atual já descontado.
func OriginalPrice(current, discountPercent float64) (float64, bool) {
	if discountPercent <= 0 || discountPercent >= 100 || current <= 0 {
		return 0, false
	}
	return math.Round(current / (1 - discountPercent/100)), true
}

// Summarize calcula os totais do carrinho. O desconto do produto é aplicado aqui,
// sobre o preço capturado na linha; o promocódigo incide sobre o subtotal. Frete grátis.
func Summarize(lines []domain.CartLine, promo domain.PromoResult) domain.CartSummary {
	hundred := decimal.NewFromInt(100)
	subtotal := decimal.Zero
	items := 0

	for _, l := range lines {
		discount := decimal.NewFromFloat(l.Product.DiscountPercent())
		factor := decimal.NewFromInt(1).Sub(discount.Div(hundred))
		lineTotal := decimal.NewFromFloat(l.Price).Mul(factor).Mul(decimal.NewFromInt(int64(l.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items += l.Quantity
	}
	subtotal = subtotal.Round(2)

	summary := domain.CartSummary{
		ItemCount: items,
		Subtotal:  subtotal.InexactFloat64(),
	}

	promoDiscount := decimal.Zero
	if promo.Accepted && promo.DiscountFraction > 0 {
		promoDiscount = subtotal.Mul(decimal.NewFromFloat(promo.DiscountFraction)).Round(2)
		summary.PromoCode = promo.Code
		summary.DiscountFraction = promo.DiscountFraction
	}

	summary.Discount = promoDiscount.InexactFloat64()
	summary.Total = subtotal.Sub(promoDiscount).InexactFloat64()
	return summary
}
