package editor

import (
	"fmt"
	"io"

	"pet-manager/internal/platform/logger"
)

// Notifier muestra un aviso bloqueante al usuario.
type Notifier interface {
	Alert(msg string)
}

// WriterNotifier escribe el aviso en un io.Writer (stderr en la CLI).
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Alert(msg string) {
	if n.W == nil {
		return
	}
	_, _ = fmt.Fprintln(n.W, msg)
}

// LogNotifier manda el aviso al logger.
type LogNotifier struct {
	Log logger.Logger
}

func (n LogNotifier) Alert(msg string) {
	if n.Log == nil {
		return
	}
	n.Log.Warn(msg, nil)
}
