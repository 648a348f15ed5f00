package domain

import (
	"context"
	"errors"
)

// ErrKeyNotFound é retornado por Storage.Get quando a chave não existe.
var ErrKeyNotFound = errors.New("chave não encontrada no armazenamento")

// Storage é a porta de persistência chave-valor usada pelo carrinho e pelos favoritos.
// Implementações: memória, Redis e PostgreSQL (internal/repository/storagerepo).
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
