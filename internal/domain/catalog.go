package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Category é uma subcategoria de um catálogo com seus produtos.
type Category struct {
	Category string    `json:"category"`
	Products []Product `json:"products"`
}

// CategorySummary resume uma categoria para filtros.
type CategorySummary struct {
	Category     string `json:"category"`
	ProductCount int    `json:"productCount"`
}

// CatalogDocument é o documento JSON do catálogo: { [catalogKey]: [{category, products}] }.
// Keys preserva a ordem de declaração dos catálogos no documento.
type CatalogDocument struct {
	Keys     []string
	Catalogs map[string][]Category
}

// Products achata todos os produtos na ordem do documento.
func (d CatalogDocument) Products() []Product {
	var out []Product
	for _, key := range d.Keys {
		for _, cat := range d.Catalogs[key] {
			out = append(out, cat.Products...)
		}
	}
	return out
}

func (d CatalogDocument) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(d.Catalogs[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *CatalogDocument) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("documento de catálogo deve ser um objeto JSON")
	}

	doc := CatalogDocument{Catalogs: make(map[string][]Category)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("chave de catálogo inválida: %v", tok)
		}
		var cats []Category
		if err := dec.Decode(&cats); err != nil {
			return fmt.Errorf("catálogo %q inválido: %w", key, err)
		}
		if _, seen := doc.Catalogs[key]; !seen {
			doc.Keys = append(doc.Keys, key)
		}
		doc.Catalogs[key] = cats
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = doc
	return nil
}
