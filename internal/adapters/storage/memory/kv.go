package memory

import (
	"errors"
	"strings"
	"sync"

	"pet-manager/internal/ports/storage"
)

var (
	ErrUnavailable = errors.New("storage unavailable")
	ErrKeyRequired = errors.New("key required")
)

// KV guarda los items en un map. Sirve para tests y para modo efímero.
type KV struct {
	mu    sync.RWMutex
	items map[string]string

	// Hooks para simular fallas del backend (quota, storage deshabilitado).
	FailGet    error
	FailSet    error
	FailRemove error
}

var _ storage.KV = (*KV)(nil)

func NewKV() *KV {
	return &KV{
		items: make(map[string]string),
	}
}

func (s *KV) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.FailGet != nil {
		return "", false, s.FailGet
	}
	if strings.TrimSpace(key) == "" {
		return "", false, ErrKeyRequired
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *KV) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSet != nil {
		return s.FailSet
	}
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}
	s.items[key] = value
	return nil
}

func (s *KV) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailRemove != nil {
		return s.FailRemove
	}
	if strings.TrimSpace(key) == "" {
		return ErrKeyRequired
	}
	delete(s.items, key)
	return nil
}

// Len devuelve cuántas claves hay guardadas.
func (s *KV) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
