package pets

// Species define las especies que ofrece el formulario.
// @Enum Dog, Cat, Bird, Fish, Rabbit, Other
type Species string

const (
	SpeciesDog    Species = "Dog"
	SpeciesCat    Species = "Cat"
	SpeciesBird   Species = "Bird"
	SpeciesFish   Species = "Fish"
	SpeciesRabbit Species = "Rabbit"
	SpeciesOther  Species = "Other"
)

// AllSpecies devuelve el set cerrado en el orden en que se presenta.
func AllSpecies() []Species {
	return []Species{
		SpeciesDog,
		SpeciesCat,
		SpeciesBird,
		SpeciesFish,
		SpeciesRabbit,
		SpeciesOther,
	}
}

func IsValidSpecies(s string) bool {
	for _, sp := range AllSpecies() {
		if string(sp) == s {
			return true
		}
	}
	return false
}

// Pet es el registro persistido. Los opcionales nil se omiten del JSON;
// al cargar, null y ausente quedan ambos en nil.
type Pet struct {
	ID string `json:"id" yaml:"id"`

	Name    string  `json:"name" yaml:"name"`
	Species string  `json:"species" yaml:"species"`
	Breed   string  `json:"breed" yaml:"breed"`
	Age     int     `json:"age" yaml:"age"`
	Weight  float64 `json:"weight" yaml:"weight"`
	Color   string  `json:"color" yaml:"color"`

	NextVaccination *string `json:"nextVaccination,omitempty" yaml:"nextVaccination,omitempty"` // YYYY-MM-DD
	Notes           *string `json:"notes,omitempty" yaml:"notes,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// NewPet es un Pet sin id: lo que emite el editor en modo alta.
// El id lo asigna quien inserta en la colección.
type NewPet struct {
	Name    string
	Species string
	Breed   string
	Age     int
	Weight  float64
	Color   string

	NextVaccination *string
	Notes           *string
	ImageURL        *string
}

// WithID combina el registro normalizado con un id existente o nuevo.
func (n NewPet) WithID(id string) Pet {
	return Pet{
		ID:              id,
		Name:            n.Name,
		Species:         n.Species,
		Breed:           n.Breed,
		Age:             n.Age,
		Weight:          n.Weight,
		Color:           n.Color,
		NextVaccination: n.NextVaccination,
		Notes:           n.Notes,
		ImageURL:        n.ImageURL,
	}
}
