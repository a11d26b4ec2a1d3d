package editor

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pet-manager/internal/domain/pets"
)

// Kind es el tipo de control con que se presenta un campo.
type Kind string

const (
	KindText     Kind = "text"
	KindSelect   Kind = "select"
	KindNumber   Kind = "number"
	KindDate     Kind = "date"
	KindTextarea Kind = "textarea"
	KindURL      Kind = "url"
)

const dateLayout = "2006-01-02"

// Sintaxis de número decimal de un input numérico: sin hex, sin '_', sin '+' inicial.
var (
	decimalRe = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)
	integerRe = regexp.MustCompile(`^-?[0-9]+$`)
)

// FieldSpec describe el control de un campo: qué se marca como obligatorio
// y qué restricciones aplica el propio control al ingresar valores.
// Las restricciones de control no se revalidan al enviar.
type FieldSpec struct {
	Field       Field    `json:"field" yaml:"field"`
	Label       string   `json:"label" yaml:"label"`
	Kind        Kind     `json:"kind" yaml:"kind"`
	Required    bool     `json:"required" yaml:"required"`
	Options     []string `json:"options,omitempty" yaml:"options,omitempty"`
	Min         *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step        float64  `json:"step,omitempty" yaml:"step,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

func num(v float64) *float64 { return &v }

// Fields devuelve los controles en el orden del formulario.
func Fields() []FieldSpec {
	species := make([]string, 0, len(pets.AllSpecies()))
	for _, s := range pets.AllSpecies() {
		species = append(species, string(s))
	}

	return []FieldSpec{
		{Field: FieldName, Label: "Name", Kind: KindText, Required: true, Placeholder: "Pet name"},
		{Field: FieldSpecies, Label: "Species", Kind: KindSelect, Required: true, Options: species},
		{Field: FieldBreed, Label: "Breed", Kind: KindText, Placeholder: "Pet breed"},
		{Field: FieldAge, Label: "Age (years)", Kind: KindNumber, Required: true, Min: num(0), Max: num(30), Step: 1, Placeholder: "Age"},
		{Field: FieldWeight, Label: "Weight (kg)", Kind: KindNumber, Min: num(0), Step: 0.1, Placeholder: "Weight in kg"},
		{Field: FieldColor, Label: "Color", Kind: KindText, Placeholder: "Main color"},
		{Field: FieldNextVaccination, Label: "Next vaccination", Kind: KindDate},
		{Field: FieldImageURL, Label: "Image URL", Kind: KindURL, Placeholder: "https://example.com/image.jpg"},
		{Field: FieldNotes, Label: "Notes", Kind: KindTextarea, Placeholder: "Additional information about the pet"},
	}
}

// Spec busca el control de un campo.
func Spec(f Field) (FieldSpec, bool) {
	for _, s := range Fields() {
		if s.Field == f {
			return s, true
		}
	}
	return FieldSpec{}, false
}

// Accepts aplica las restricciones del control. Vacío siempre se acepta:
// la obligatoriedad se chequea recién al enviar.
func (s FieldSpec) Accepts(v string) bool {
	if v == "" {
		return true
	}

	switch s.Kind {
	case KindSelect:
		if s.Field == FieldSpecies {
			return pets.IsValidSpecies(v)
		}
		for _, o := range s.Options {
			if o == v {
				return true
			}
		}
		return false

	case KindNumber:
		if !decimalRe.MatchString(v) {
			return false
		}
		// con paso entero solo se admiten enteros literales: al enviar se
		// toma el prefijo entero y "1e1" o "3.0" saldrían con otro valor
		if isWhole(s.Step) && !integerRe.MatchString(v) {
			return false
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
		if s.Min != nil && f < *s.Min {
			return false
		}
		if s.Max != nil && f > *s.Max {
			return false
		}
		return onStep(f, s.Step, s.Min)

	case KindDate:
		_, err := time.Parse(dateLayout, v)
		return err == nil

	case KindURL:
		// cualquier URL absoluta: esquema más host (https://, ftp://) o parte opaca (data:, mailto:)
		u, err := url.Parse(v)
		if err != nil || u.Scheme == "" {
			return false
		}
		return u.Host != "" || u.Opaque != ""

	default:
		// text / textarea: texto libre; solo textarea admite saltos de línea
		if s.Kind == KindText && strings.ContainsAny(v, "\r\n") {
			return false
		}
		return true
	}
}

func isWhole(step float64) bool {
	return step >= 1 && step == math.Trunc(step)
}

// onStep verifica que f caiga en la grilla base + k*step (tolerancia de float).
func onStep(f, step float64, base *float64) bool {
	if step <= 0 {
		return true
	}
	b := 0.0
	if base != nil {
		b = *base
	}
	k := (f - b) / step
	return math.Abs(k-math.Round(k)) < 1e-9
}
