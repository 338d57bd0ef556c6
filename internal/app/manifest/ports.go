package manifest

import (
	"context"

	"github.com/codecompany/recipeboot/internal/domain"
)

// Source loads the raw manifest bytes, local overlays already applied.
type Source interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// Validator checks a manifest document against the v2 structural schema.
type Validator interface {
	Validate(ctx context.Context, doc []byte) error
}

// Decoder turns manifest bytes into the typed document.
type Decoder interface {
	Decode(data []byte) (domain.ManifestDoc, error)
}
