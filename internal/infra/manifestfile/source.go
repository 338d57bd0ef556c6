package manifestfile

import (
	"context"
	"errors"
	"fmt"
	"os"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// OverlaySuffix names the optional developer override next to recipes.cfg.
// Its contents are applied as an RFC 7396 merge patch, so pinning a different
// engine revision locally is a two-line file instead of an edit to the
// tracked manifest.
const OverlaySuffix = ".local"

// Source reads manifest bytes from disk with the local overlay applied.
type Source struct{}

func (Source) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipes.cfg: %w", err)
	}

	overlayPath := path + OverlaySuffix
	overlay, err := os.ReadFile(overlayPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return data, nil
		}
		return nil, fmt.Errorf("read overlay %s: %w", overlayPath, err)
	}

	merged, err := jsonpatch.MergePatch(data, overlay)
	if err != nil {
		return nil, fmt.Errorf("apply overlay %s: %w", overlayPath, err)
	}
	return merged, nil
}
