package paths

import "errors"

var ErrManifestPathRequired = errors.New("manifest path is required")
