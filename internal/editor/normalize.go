package editor

import (
	"math"
	"strconv"
	"strings"

	"pet-manager/internal/domain/pets"
)

// Normalize convierte el borrador al registro canónico (sin id).
// ageOK=false indica que la edad no era numérica y quedó en 0.
func Normalize(d Draft) (rec pets.NewPet, ageOK bool) {
	age, ageOK := parseLeadingInt(d.Age)

	return pets.NewPet{
		Name:            d.Name,
		Species:         d.Species,
		Breed:           d.Breed,
		Age:             age,
		Weight:          parseWeight(d.Weight),
		Color:           d.Color,
		NextVaccination: optional(d.NextVaccination),
		Notes:           optional(d.Notes),
		ImageURL:        optional(d.ImageURL),
	}, ageOK
}

// parseLeadingInt toma el prefijo entero ("3", " 3años", "-2", "3.9" => 3).
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// overflow
		return 0, false
	}
	return n, true
}

// parseWeight toma el prefijo decimal; vacío, basura, NaN o Inf => 0.
func parseWeight(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	sawDigit := false
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		sawDigit = true
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			sawDigit = true
		}
	}
	if !sawDigit {
		return 0
	}
	// exponente opcional, solo si trae dígitos
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		start := exp
		for exp < len(s) && s[exp] >= '0' && s[exp] <= '9' {
			exp++
		}
		if exp > start {
			end = exp
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
