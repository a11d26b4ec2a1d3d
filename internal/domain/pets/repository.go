package pets

// Store guarda y recupera la colección completa.
// No hay escrituras parciales: cada Save reemplaza todo.
type Store interface {
	Load() []Pet
	Save(items []Pet)
}
