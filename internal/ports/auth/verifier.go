package auth

import "context"

// Verifier valida un token de staff y devuelve claims o error.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
