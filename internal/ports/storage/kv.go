package storage

// KV es el almacenamiento clave-valor local (equivalente a localStorage).
// ok=false indica que la clave no existe; no es un error.
type KV interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}
