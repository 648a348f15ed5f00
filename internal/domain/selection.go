package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Attribute identifica uma dimensão de variante de um produto.
type Attribute int

const (
	AttrMemory Attribute = iota
	AttrColor
	AttrSize

	attributeCount
)

// Attributes lista as dimensões na ordem de prioridade usada para
// resolver preço e estoque por variante (memória > cor > tamanho).
var Attributes = [...]Attribute{AttrMemory, AttrColor, AttrSize}

func (a Attribute) String() string {
	switch a {
	case AttrMemory:
		return "memory"
	case AttrColor:
		return "color"
	case AttrSize:
		return "size"
	default:
		return "unknown"
	}
}

// Selection é a escolha de variantes de uma linha do carrinho.
// Cada atributo carrega um flag explícito de presença; valor vazio conta como ausente.
type Selection struct {
	values  [attributeCount]string
	present [attributeCount]bool
}

// NewSelection monta uma seleção a partir dos três valores; strings vazias ficam ausentes.
func NewSelection(memory, color, size string) Selection {
	return Selection{}.
		With(AttrMemory, memory).
		With(AttrColor, color).
		With(AttrSize, size)
}

// With retorna uma cópia com o atributo definido. Um valor vazio remove o atributo.
func (s Selection) With(attr Attribute, value string) Selection {
	if attr < 0 || attr >= attributeCount {
		return s
	}
	value = strings.TrimSpace(value)
	if value == "" {
		s.values[attr] = ""
		s.present[attr] = false
		return s
	}
	s.values[attr] = value
	s.present[attr] = true
	return s
}

// Get retorna o valor escolhido e se o atributo está presente.
func (s Selection) Get(attr Attribute) (string, bool) {
	if attr < 0 || attr >= attributeCount {
		return "", false
	}
	return s.values[attr], s.present[attr]
}

// IsEmpty indica que nenhuma variante foi escolhida.
func (s Selection) IsEmpty() bool {
	for _, p := range s.present {
		if p {
			return false
		}
	}
	return true
}

type selectionJSON struct {
	Memory string `json:"memory,omitempty"`
	Color  string `json:"color,omitempty"`
	Size   string `json:"size,omitempty"`
}

func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(selectionJSON{
		Memory: s.values[AttrMemory],
		Color:  s.values[AttrColor],
		Size:   s.values[AttrSize],
	})
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Selection{}
		return nil
	}
	var raw selectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewSelection(raw.Memory, raw.Color, raw.Size)
	return nil
}

// canonical serializa a seleção sem escape de HTML, sempre na ordem memory, color, size.
func (s Selection) canonical() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(selectionJSON{
		Memory: s.values[AttrMemory],
		Color:  s.values[AttrColor],
		Size:   s.values[AttrSize],
	})
	return strings.TrimRight(buf.String(), "\n")
}

// cartKeySeparator separa o ID do produto da seleção serializada.
const cartKeySeparator = "__"

// CartKey calcula a identidade de uma linha do carrinho.
// Sem variantes, a chave é o próprio ID do produto.
func CartKey(productID string, sel Selection) string {
	if sel.IsEmpty() {
		return productID
	}
	return productID + cartKeySeparator + sel.canonical()
}
