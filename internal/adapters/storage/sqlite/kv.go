package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-manager/internal/ports/storage"
)

var (
	ErrKeyRequired = errors.New("key required")
)

type KV struct {
	db *sql.DB
}

var _ storage.KV = (*KV)(nil)

func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

func (r *KV) GetItem(key string) (string, bool, error) {
	if strings.TrimSpace(key) == "" {
		return "", false, ErrKeyRequired
	}

	var v string
	err := r.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("sqlite kv: get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *KV) SetItem(key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}

	_, err := r.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("sqlite kv: set %s: %w", key, err)
	}
	return nil
}

func (r *KV) RemoveItem(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}

	if _, err := r.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite kv: remove %s: %w", key, err)
	}
	return nil
}
