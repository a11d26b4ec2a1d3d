package pets

import (
	"errors"
	"strings"

	"pet-manager/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

// Service es el dueño de la lista autoritativa en memoria.
// Carga una vez al arrancar y persiste la colección completa después de cada mutación.
type Service struct {
	store Store
	newID func() string
	log   logger.Logger

	items   []Pet
	editing *Pet
}

type Option func(*Service)

func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		newID: uuid.NewString,
		log:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded := store.Load()
	s.items = make([]Pet, len(loaded))
	copy(s.items, loaded)
	s.log.Debug("pets loaded", map[string]any{"count": len(s.items)})
	return s
}

// List devuelve una copia en el orden de inserción.
func (s *Service) List() []Pet {
	out := make([]Pet, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Service) GetByID(id string) (Pet, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Pet{}, ErrNotFound
	}
	return s.items[i], nil
}

// Create asigna un id nuevo, agrega al final y persiste.
func (s *Service) Create(in NewPet) Pet {
	p := in.WithID(s.newID())
	s.items = append(s.items, p)
	s.persist()
	s.log.Info("pet created", map[string]any{"id": p.ID})
	return p
}

// Replace sustituye el registro con el mismo id manteniendo su posición.
func (s *Service) Replace(p Pet) error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrInvalidInput
	}
	i := s.indexOf(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	s.items[i] = p
	s.persist()
	s.log.Info("pet updated", map[string]any{"id": p.ID})
	return nil
}

func (s *Service) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	if s.editing != nil && s.editing.ID == id {
		s.editing = nil
	}
	s.persist()
	s.log.Info("pet deleted", map[string]any{"id": id})
	return nil
}

// ReplaceAll reemplaza la colección entera (import).
func (s *Service) ReplaceAll(items []Pet) {
	s.items = make([]Pet, len(items))
	copy(s.items, items)
	s.editing = nil
	s.persist()
	s.log.Info("pets replaced", map[string]any{"count": len(items)})
}

// StartEdit fija el registro en edición. Devuelve un puntero nuevo en cada
// llamada: para el editor eso es un registro distinto y dispara el reseed.
func (s *Service) StartEdit(id string) (*Pet, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.editing = &p
	return s.editing, nil
}

// Editing es la referencia que recibe el editor (nil = modo alta).
func (s *Service) Editing() *Pet {
	return s.editing
}

// AddPet, UpdatePet y CancelEdit son los callbacks del editor.

func (s *Service) AddPet(in NewPet) {
	s.Create(in)
}

func (s *Service) UpdatePet(p Pet) {
	if err := s.Replace(p); err != nil {
		s.log.Warn("update ignored", map[string]any{"id": p.ID, "err": err})
		return
	}
	s.editing = nil
}

func (s *Service) CancelEdit() {
	s.editing = nil
}

func (s *Service) persist() {
	s.store.Save(s.List())
}

func (s *Service) indexOf(id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i, p := range s.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
