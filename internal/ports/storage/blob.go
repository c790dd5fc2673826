package storage

import (
	"context"
	"errors"
)

// ErrNotFound: no hay valor guardado para la key.
var ErrNotFound = errors.New("blob not found")

// BlobStore guarda blobs opacos por key fija (sesión, token).
// Put sobreescribe completo; no hay merge ni versionado.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
