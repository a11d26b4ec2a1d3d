// Package transfer exporta e importa la colección completa en JSON o YAML.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"pet-manager/internal/domain/pets"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown format")

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatForPath elige el formato por extensión (.yaml/.yml => YAML, resto JSON).
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func Encode(w io.Writer, f Format, items []pets.Pet) error {
	if items == nil {
		items = []pets.Pet{}
	}

	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Decode lee una colección completa. Vacío => colección vacía.
func Decode(r io.Reader, f Format) ([]pets.Pet, error) {
	var out []pets.Pet

	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	if out == nil {
		out = []pets.Pet{}
	}
	return out, nil
}

// CheckIDs verifica que todos tengan id y que no se repitan.
// La unicidad es responsabilidad de la colección, así que se chequea al importar.
func CheckIDs(items []pets.Pet) error {
	seen := make(map[string]struct{}, len(items))
	for i, p := range items {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return fmt.Errorf("item %d: %w", i, pets.ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("item %d: duplicate id %q: %w", i, id, pets.ErrInvalidInput)
		}
		seen[id] = struct{}{}
	}
	return nil
}
