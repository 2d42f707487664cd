package filestore

import "context"

// Store guarda y recupera contenido binario por path relativo.
// El core solo conoce paths; dónde viven los bytes es cosa del adapter.
type Store interface {
	Save(ctx context.Context, path string, content []byte) error
	Open(ctx context.Context, path string) ([]byte, error)
}
