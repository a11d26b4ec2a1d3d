package editor

import (
	"strconv"

	"pet-manager/internal/domain/pets"
)

// Field identifica un campo del borrador.
type Field string

const (
	FieldName            Field = "name"
	FieldSpecies         Field = "species"
	FieldBreed           Field = "breed"
	FieldAge             Field = "age"
	FieldWeight          Field = "weight"
	FieldColor           Field = "color"
	FieldNextVaccination Field = "nextVaccination"
	FieldNotes           Field = "notes"
	FieldImageURL        Field = "imageUrl"
)

// Draft es el estado editable: todo string, incluso edad, peso y fecha.
// La conversión a tipos recién ocurre al enviar.
type Draft struct {
	Name            string
	Species         string
	Breed           string
	Age             string
	Weight          string
	Color           string
	NextVaccination string
	Notes           string
	ImageURL        string
}

func EmptyDraft() Draft {
	return Draft{}
}

// DraftFromPet siembra el borrador desde un registro existente.
// Los opcionales nil quedan como "".
func DraftFromPet(p pets.Pet) Draft {
	return Draft{
		Name:            p.Name,
		Species:         p.Species,
		Breed:           p.Breed,
		Age:             strconv.Itoa(p.Age),
		Weight:          strconv.FormatFloat(p.Weight, 'f', -1, 64),
		Color:           p.Color,
		NextVaccination: deref(p.NextVaccination),
		Notes:           deref(p.Notes),
		ImageURL:        deref(p.ImageURL),
	}
}

// Get devuelve el valor de un campo ("" si el campo no existe).
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldSpecies:
		return d.Species
	case FieldBreed:
		return d.Breed
	case FieldAge:
		return d.Age
	case FieldWeight:
		return d.Weight
	case FieldColor:
		return d.Color
	case FieldNextVaccination:
		return d.NextVaccination
	case FieldNotes:
		return d.Notes
	case FieldImageURL:
		return d.ImageURL
	default:
		return ""
	}
}

// With devuelve una copia con solo ese campo reemplazado.
func (d Draft) With(f Field, v string) (Draft, error) {
	switch f {
	case FieldName:
		d.Name = v
	case FieldSpecies:
		d.Species = v
	case FieldBreed:
		d.Breed = v
	case FieldAge:
		d.Age = v
	case FieldWeight:
		d.Weight = v
	case FieldColor:
		d.Color = v
	case FieldNextVaccination:
		d.NextVaccination = v
	case FieldNotes:
		d.Notes = v
	case FieldImageURL:
		d.ImageURL = v
	default:
		return d, ErrUnknownField
	}
	return d, nil
}

// Missing lista los obligatorios vacíos (chequeo "truthy", no numérico).
func (d Draft) Missing() []Field {
	var out []Field
	if d.Name == "" {
		out = append(out, FieldName)
	}
	if d.Species == "" {
		out = append(out, FieldSpecies)
	}
	if d.Age == "" {
		out = append(out, FieldAge)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
