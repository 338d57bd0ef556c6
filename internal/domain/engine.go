package domain

import "strings"

// DefaultBranch is assumed when a dependency entry omits its branch.
const DefaultBranch = "refs/heads/main"

const refPrefix = "refs/"

// EngineDep pins the engine checkout for a dependent repository: where to
// fetch it from, which revision to check out, and which branch carries that
// revision. Values are immutable once constructed.
type EngineDep struct {
	URL      string
	Revision string
	Branch   string
}

// Normalized returns a copy with defaults applied: an absent branch becomes
// DefaultBranch and a short branch name is expanded to a fully qualified ref.
// Normalizing an already normalized dependency is a no-op.
func (d EngineDep) Normalized() EngineDep {
	if d.Branch == "" {
		d.Branch = DefaultBranch
	}
	if !strings.HasPrefix(d.Branch, refPrefix) {
		d.Branch = "refs/heads/" + d.Branch
	}
	return d
}
