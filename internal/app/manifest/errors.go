package manifest

import "fmt"

// MalformedManifestError reports a recipes.cfg that fails structural or
// schema validation. Always fatal; never recovered.
type MalformedManifestError struct {
	Reason string
	Path   string
}

func (e *MalformedManifestError) Error() string {
	return fmt.Sprintf("malformed recipes.cfg: %s: %q", e.Reason, e.Path)
}
