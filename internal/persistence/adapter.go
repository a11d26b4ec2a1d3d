// Package persistence guarda la colección de mascotas como un único blob JSON
// bajo una clave fija. No hay escrituras parciales ni direccionamiento por registro.
//
// Los métodos Try* devuelven el error. Load, Save y Clear son la fachada
// fail-soft: loguean y degradan (colección vacía / no-op) sin propagar nada.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-manager/internal/domain/pets"
	"pet-manager/internal/platform/logger"
	"pet-manager/internal/ports/storage"
)

const DefaultKey = "pet-manager-pets"

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrQuotaExceeded      = errors.New("storage quota exceeded")
	ErrCorrupt            = errors.New("stored data is corrupt")
)

type Options struct {
	Key string
	Log logger.Logger

	// MaxBytes limita el tamaño del blob serializado (0 = sin límite).
	MaxBytes int
}

type Adapter struct {
	kv       storage.KV
	key      string
	maxBytes int
	log      logger.Logger
}

var _ pets.Store = (*Adapter)(nil)

func New(kv storage.KV, opts Options) *Adapter {
	key := strings.TrimSpace(opts.Key)
	if key == "" {
		key = DefaultKey
	}
	l := opts.Log
	if l == nil {
		l = logger.NewNop()
	}
	maxBytes := opts.MaxBytes
	if maxBytes < 0 {
		maxBytes = 0
	}

	return &Adapter{
		kv:       kv,
		key:      key,
		maxBytes: maxBytes,
		log:      l.With(map[string]any{"component": "persistence"}),
	}
}

func (a *Adapter) Key() string { return a.key }

// TryLoad lee y deserializa la colección. Clave ausente => vacío sin error.
// No valida la forma de los registros.
func (a *Adapter) TryLoad() ([]pets.Pet, error) {
	if a.kv == nil {
		return []pets.Pet{}, ErrStorageUnavailable
	}

	raw, ok, err := a.kv.GetItem(a.key)
	if err != nil {
		return []pets.Pet{}, fmt.Errorf("read %s: %w", a.key, err)
	}
	if !ok || raw == "" {
		return []pets.Pet{}, nil
	}

	var out []pets.Pet
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []pets.Pet{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if out == nil {
		// "null" es JSON válido
		out = []pets.Pet{}
	}
	return out, nil
}

// TrySave serializa la colección entera y sobrescribe la clave.
func (a *Adapter) TrySave(items []pets.Pet) error {
	if a.kv == nil {
		return ErrStorageUnavailable
	}
	if items == nil {
		items = []pets.Pet{}
	}

	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode pets: %w", err)
	}
	if a.maxBytes > 0 && len(b) > a.maxBytes {
		return fmt.Errorf("%w: %d bytes > %d", ErrQuotaExceeded, len(b), a.maxBytes)
	}

	if err := a.kv.SetItem(a.key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", a.key, err)
	}
	return nil
}

func (a *Adapter) TryClear() error {
	if a.kv == nil {
		return ErrStorageUnavailable
	}
	if err := a.kv.RemoveItem(a.key); err != nil {
		return fmt.Errorf("remove %s: %w", a.key, err)
	}
	return nil
}

// Load nunca falla: ante cualquier error loguea y devuelve colección vacía.
func (a *Adapter) Load() []pets.Pet {
	items, err := a.TryLoad()
	if err != nil {
		a.log.Error("error reading pets from storage", map[string]any{"key": a.key, "err": err})
		return []pets.Pet{}
	}
	return items
}

// Save nunca falla: si la escritura no se pudo hacer, loguea y sigue.
// El caller no puede distinguir un save fallido por el valor de retorno.
func (a *Adapter) Save(items []pets.Pet) {
	if err := a.TrySave(items); err != nil {
		a.log.Error("error saving pets to storage", map[string]any{"key": a.key, "err": err})
	}
}

func (a *Adapter) Clear() {
	if err := a.TryClear(); err != nil {
		a.log.Error("error clearing pets storage", map[string]any{"key": a.key, "err": err})
	}
}
