// Package editor implementa el formulario de una mascota: un borrador de
// strings sembrado en blanco (alta) o desde un registro (edición), que se
// valida y normaliza recién al enviar.
package editor

import (
	"pet-manager/internal/domain/pets"
	"pet-manager/internal/platform/logger"
)

// Callbacks es lo que expone el caller (página/controlador).
type Callbacks interface {
	// AddPet recibe un registro sin id; el caller asigna id, inserta y persiste.
	AddPet(p pets.NewPet)
	// UpdatePet recibe el registro con el id original; el caller reemplaza y persiste.
	UpdatePet(p pets.Pet)
	// CancelEdit avisa que terminó la edición.
	CancelEdit()
}

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

type Editor struct {
	cb     Callbacks
	notify Notifier
	log    logger.Logger

	draft Draft

	// editing es la última referencia recibida; se compara por identidad
	// para resembrar una sola vez por registro distinto.
	editing *pets.Pet
}

type Option func(*Editor)

func WithNotifier(n Notifier) Option {
	return func(e *Editor) {
		if n != nil {
			e.notify = n
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

func New(cb Callbacks, opts ...Option) *Editor {
	e := &Editor{
		cb:    cb,
		log:   logger.NewNop(),
		draft: EmptyDraft(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.notify == nil {
		e.notify = LogNotifier{Log: e.log}
	}
	return e
}

// SetEditing recibe la referencia del caller (nil = alta). Solo resiembra
// cuando la referencia cambia a un registro no-nil; pasar el mismo puntero
// otra vez no pisa lo que se está editando.
func (e *Editor) SetEditing(p *pets.Pet) {
	if p == e.editing {
		return
	}
	e.editing = p
	if p == nil {
		return
	}
	e.draft = DraftFromPet(*p)
	e.log.Debug("draft reseeded", map[string]any{"id": p.ID})
}

func (e *Editor) Editing() *pets.Pet {
	return e.editing
}

func (e *Editor) Mode() Mode {
	if e.editing != nil {
		return ModeEdit
	}
	return ModeCreate
}

// Draft devuelve una copia del borrador.
func (e *Editor) Draft() Draft {
	return e.draft
}

// Set reemplaza un solo campo, sin validar.
func (e *Editor) Set(f Field, v string) error {
	d, err := e.draft.With(f, v)
	if err != nil {
		return err
	}
	e.draft = d
	return nil
}

// Input es Set pasando antes por el control del campo (rango, opciones, fecha).
// Si el control rechaza el valor, el borrador no cambia.
func (e *Editor) Input(f Field, v string) error {
	spec, ok := Spec(f)
	if !ok {
		return ErrUnknownField
	}
	if !spec.Accepts(v) {
		return ErrRejectedInput
	}
	return e.Set(f, v)
}

func (e *Editor) SetName(v string)            { e.draft.Name = v }
func (e *Editor) SetSpecies(v string)         { e.draft.Species = v }
func (e *Editor) SetBreed(v string)           { e.draft.Breed = v }
func (e *Editor) SetAge(v string)             { e.draft.Age = v }
func (e *Editor) SetWeight(v string)          { e.draft.Weight = v }
func (e *Editor) SetColor(v string)           { e.draft.Color = v }
func (e *Editor) SetNextVaccination(v string) { e.draft.NextVaccination = v }
func (e *Editor) SetNotes(v string)           { e.draft.Notes = v }
func (e *Editor) SetImageURL(v string)        { e.draft.ImageURL = v }

// Submit valida obligatorios y entrega el registro normalizado al caller.
// Si faltan campos avisa al usuario, no llama al caller y deja el borrador igual.
func (e *Editor) Submit() error {
	if missing := e.draft.Missing(); len(missing) > 0 {
		verr := &ValidationError{Missing: missing}
		e.notify.Alert(verr.Message())
		return verr
	}

	rec, ageOK := Normalize(e.draft)
	if !ageOK {
		// La validación solo mira que no esté vacío; se deja pasar y se marca.
		e.log.Warn("age is not numeric; emitted as 0", map[string]any{"age": e.draft.Age})
	}

	if e.editing != nil {
		e.cb.UpdatePet(rec.WithID(e.editing.ID))
	} else {
		e.cb.AddPet(rec)
	}

	e.draft = EmptyDraft()
	return nil
}

// Cancel solo aplica en edición: limpia el borrador y avisa al caller.
func (e *Editor) Cancel() {
	if e.editing == nil {
		return
	}
	e.draft = EmptyDraft()
	e.cb.CancelEdit()
}
