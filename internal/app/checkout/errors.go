package checkout

import "errors"

var ErrRepoRootRequired = errors.New("repo root is required")
var ErrInvalidFileURL = errors.New("invalid file:// url for engine dependency")
