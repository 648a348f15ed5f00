package storagerepo

import (
	"context"
	"fmt"
	"time"

	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
	"gomarket/internal/pkg/cache"
)

// storageKeyPrefix isola as chaves do carrinho/favoritos das chaves de cache.
const storageKeyPrefix = "store:%s"

// RedisStorage persiste os valores no Redis através do cache.Client.
type RedisStorage struct {
	Cache cache.Client
	TTL   time.Duration // 0 = sem expiração
}

// NewRedisStorage cria o armazenamento sobre o cliente de cache.
func NewRedisStorage(client cache.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{Cache: client, TTL: ttl}
}

func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.Cache.Get(ctx, fmt.Sprintf(storageKeyPrefix, key))
	if err == cache.ErrCacheMiss {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, apperror.NewStorageError(fmt.Sprintf("falha ao ler a chave %s no Redis", key), err)
	}
	return []byte(val), nil
}

// Set grava o valor, renovando o TTL a cada escrita.
func (s *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := s.Cache.Set(ctx, fmt.Sprintf(storageKeyPrefix, key), value, s.TTL); err != nil {
		return apperror.NewStorageError(fmt.Sprintf("falha ao gravar a chave %s no Redis", key), err)
	}
	return nil
}
