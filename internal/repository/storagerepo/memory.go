package storagerepo

import (
	"context"
	"sync"

	"gomarket/internal/domain"
)

// MemoryStorage guarda os valores em memória. Usado em desenvolvimento e testes.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStorage cria um armazenamento vazio.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

// Get retorna uma cópia do valor ou domain.ErrKeyNotFound.
func (m *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set substitui o valor da chave.
func (m *MemoryStorage) Set(ctx context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	m.mu.Lock()
	m.values[key] = v
	m.mu.Unlock()
	return nil
}
