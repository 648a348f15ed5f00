package storagerepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gomarket/internal/domain"
	apperror "gomarket/internal/errors"
)

// PostgresStorage persiste os valores na tabela kv_store (ver sql/00001_create_kv_store.sql).
type PostgresStorage struct {
	DB        *sql.DB
	DBTimeout time.Duration
}

// NewPostgresStorage cria o armazenamento sobre o pool de conexões.
func NewPostgresStorage(db *sql.DB, dbTimeout time.Duration) *PostgresStorage {
	return &PostgresStorage{DB: db, DBTimeout: dbTimeout}
}

func (s *PostgresStorage) Get(ctx context.Context, key string) ([]byte, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	const query = `SELECT value FROM kv_store WHERE key = $1`

	var value string
	err := s.DB.QueryRowContext(ctxTimeout, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, apperror.NewDBError(fmt.Sprintf("falha ao ler a chave %s", key), err)
	}
	return []byte(value), nil
}

func (s *PostgresStorage) Set(ctx context.Context, key string, value []byte) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, s.DBTimeout)
	defer cancel()

	const upsert = `INSERT INTO kv_store (key, value, updated_at)
                    VALUES ($1, $2, NOW())
                    ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := s.DB.ExecContext(ctxTimeout, upsert, key, string(value)); err != nil {
		return apperror.NewDBError(fmt.Sprintf("falha ao gravar a chave %s", key), err)
	}
	return nil
}
