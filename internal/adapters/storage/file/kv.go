package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pet-manager/internal/ports/storage"

	"github.com/spf13/afero"
)

var (
	ErrKeyRequired = errors.New("key required")
)

const fileExt = ".kv"

// KV guarda cada clave como un archivo dentro de dir.
// Cada SetItem reemplaza el archivo completo (temp + rename).
type KV struct {
	fs  afero.Fs
	dir string
}

var _ storage.KV = (*KV)(nil)

// New usa el filesystem del sistema operativo.
func New(dir string) (*KV, error) {
	return NewWithFs(afero.NewOsFs(), dir)
}

// NewWithFs permite inyectar un afero.Fs (p.ej. MemMapFs en tests).
func NewWithFs(fs afero.Fs, dir string) (*KV, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file kv: create dir %s: %w", dir, err)
	}
	return &KV{fs: fs, dir: dir}, nil
}

func (s *KV) GetItem(key string) (string, bool, error) {
	p, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}

	b, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("file kv: read %s: %w", key, err)
	}
	return string(b), true, nil
}

func (s *KV) SetItem(key, value string) error {
	p, err := s.pathFor(key)
	if err != nil {
		return err
	}

	tmp, err := afero.TempFile(s.fs, s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("file kv: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("file kv: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("file kv: close %s: %w", key, err)
	}
	if err := s.fs.Rename(tmpName, p); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("file kv: rename %s: %w", key, err)
	}
	return nil
}

func (s *KV) RemoveItem(key string) error {
	p, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("file kv: remove %s: %w", key, err)
	}
	return nil
}

func (s *KV) pathFor(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrKeyRequired
	}
	return filepath.Join(s.dir, escapeKey(key)+fileExt), nil
}

// escapeKey deja pasar [A-Za-z0-9_-] y codifica el resto como %XX,
// así ninguna clave puede salir del directorio ni colisionar con otra.
func escapeKey(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}
