package editor

import (
	"errors"
	"strings"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrRejectedInput = errors.New("input rejected by field control")
)

// ValidationError indica obligatorios faltantes al enviar.
// Es una rama de control: el borrador queda intacto para corregirlo.
type ValidationError struct {
	Missing []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, f := range e.Missing {
		names = append(names, string(f))
	}
	return "missing required fields: " + strings.Join(names, ", ")
}

// Message es el texto que ve el usuario.
func (e *ValidationError) Message() string {
	return "Please complete the required fields (name, species and age). Missing: " + strings.Join(e.labels(), ", ")
}

func (e *ValidationError) labels() []string {
	out := make([]string, 0, len(e.Missing))
	for _, f := range e.Missing {
		if s, ok := Spec(f); ok {
			out = append(out, s.Label)
			continue
		}
		out = append(out, string(f))
	}
	return out
}
