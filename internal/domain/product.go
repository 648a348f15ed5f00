package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// DefaultLocale é o idioma usado quando a descrição não possui o idioma pedido.
const DefaultLocale = "uz"

// Product representa o item do catálogo (a Entidade).
// É criado pela fonte de dados do catálogo e nunca é alterado em tempo de execução.
type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description LocalizedText `json:"description"`
	Price       float64       `json:"price"`
	Discount    *float64      `json:"discount"` // Percentual sobre o preço base; nil = sem desconto
	Quantity    int           `json:"quantity"` // Estoque total

	// Dimensões de variante
	Memory OptionList `json:"memory,omitempty"`
	Color  OptionList `json:"color,omitempty"`
	Size   OptionList `json:"size,omitempty"`

	VariantPricing map[string]float64 `json:"variantPricing,omitempty"` // valor da variante -> preço unitário
	VariantStock   map[string]int     `json:"variantStock,omitempty"`   // valor da variante -> estoque

	Photos   []string  `json:"photos,omitempty"`
	Model    string    `json:"model,omitempty"`
	Rating   float64   `json:"rating"`
	Comments []Comment `json:"comments,omitempty"`
}

// Comment é uma avaliação deixada por um cliente.
type Comment struct {
	User   string  `json:"user"`
	Text   string  `json:"text"`
	Date   string  `json:"date"`
	Rating float64 `json:"rating"`
}

// DiscountPercent retorna o desconto do produto, 0 quando ausente.
func (p Product) DiscountPercent() float64 {
	if p.Discount == nil {
		return 0
	}
	return *p.Discount
}

// Options retorna os valores selecionáveis de um atributo.
func (p Product) Options(attr Attribute) []string {
	switch attr {
	case AttrMemory:
		return p.Memory
	case AttrColor:
		return p.Color
	case AttrSize:
		return p.Size
	}
	return nil
}

// HasOption informa se o valor pertence às opções do atributo.
func (p Product) HasOption(attr Attribute, value string) bool {
	for _, o := range p.Options(attr) {
		if o == value {
			return true
		}
	}
	return false
}

// DefaultSelection escolhe a primeira opção de cada atributo oferecido pelo produto.
func (p Product) DefaultSelection() Selection {
	var sel Selection
	for _, attr := range Attributes {
		if opts := p.Options(attr); len(opts) > 0 {
			sel = sel.With(attr, opts[0])
		}
	}
	return sel
}

// AverageRating é a média das notas dos comentários, ou Rating quando não há comentários.
func (p Product) AverageRating() float64 {
	if len(p.Comments) == 0 {
		return p.Rating
	}
	var sum float64
	for _, c := range p.Comments {
		sum += c.Rating
	}
	return sum / float64(len(p.Comments))
}

// OptionList aceita tanto uma string quanto uma lista de strings no JSON.
type OptionList []string

func (o *OptionList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		if single == "" {
			*o = nil
			return nil
		}
		*o = OptionList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("lista de opções inválida: %w", err)
	}
	*o = list
	return nil
}

// LocalizedText é um texto simples ou um mapa idioma -> texto.
type LocalizedText struct {
	Plain    string
	ByLocale map[string]string
}

// Text resolve o texto para o idioma, com fallback para DefaultLocale e depois para qualquer idioma.
func (t LocalizedText) Text(locale string) string {
	if len(t.ByLocale) == 0 {
		return t.Plain
	}
	if v, ok := t.ByLocale[locale]; ok && v != "" {
		return v
	}
	if v, ok := t.ByLocale[DefaultLocale]; ok && v != "" {
		return v
	}
	keys := make([]string, 0, len(t.ByLocale))
	for k := range t.ByLocale {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t.ByLocale[k] != "" {
			return t.ByLocale[k]
		}
	}
	return t.Plain
}

func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if len(t.ByLocale) > 0 {
		return json.Marshal(t.ByLocale)
	}
	return json.Marshal(t.Plain)
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = LocalizedText{}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		return json.Unmarshal(data, &t.ByLocale)
	}
	return json.Unmarshal(data, &t.Plain)
}

// ProductView é a projeção de um produto para um idioma e uma seleção de variantes.
type ProductView struct {
	Product
	Description   string    `json:"description"`
	AverageRating float64   `json:"averageRating"`
	Selection     Selection `json:"defaultSelection"`
}

// PriceQuote é o preço e o estoque de um produto para uma seleção de variantes.
type PriceQuote struct {
	ProductID       string    `json:"productId"`
	Selection       Selection `json:"selection"`
	Price           float64   `json:"price"`                    // Preço unitário da variante
	DiscountPercent float64   `json:"discountPercent"`          // Desconto do produto
	FinalPrice      float64   `json:"finalPrice"`               // Preço com o desconto do produto
	CompareAtPrice  float64   `json:"compareAtPrice,omitempty"` // Preço "de", exibido riscado
	Available       int       `json:"available"`
}
