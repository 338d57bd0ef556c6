package codec

import (
	"fmt"

	"github.com/go-json-experiment/json"

	"github.com/codecompany/recipeboot/internal/domain"
)

// Decoder decodes recipes.cfg bytes into the typed manifest document.
type Decoder struct{}

func (Decoder) Decode(data []byte) (domain.ManifestDoc, error) {
	var doc domain.ManifestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.ManifestDoc{}, fmt.Errorf("decode recipes.cfg: %w", err)
	}
	return doc, nil
}
