package checkout

import (
	"context"
	"time"

	"github.com/codecompany/recipeboot/internal/app/manifest"
)

// Git is the narrow slice of version control the reconciler needs. Each
// operation maps to one git invocation; implementations report a command that
// ran and exited non-zero through the boolean results where the reconciler
// branches on it, and through an error where it is fatal.
type Git interface {
	// Init makes dir a git working area. No-op when already initialized.
	Init(ctx context.Context, dir string) error
	// RevisionPresent reports whether revision resolves to a commit using
	// only local objects. It never touches the network.
	RevisionPresent(ctx context.Context, dir, revision string) (bool, error)
	// FetchBranch fetches a single branch from url. Quiet and minimal; no
	// full-history clone.
	FetchBranch(ctx context.Context, dir, url, branch string) error
	// MatchesRevision reports whether the working tree is exactly at
	// revision.
	MatchesRevision(ctx context.Context, dir, revision string) (bool, error)
	// HardReset forces the working tree to revision, discarding local
	// modifications.
	HardReset(ctx context.Context, dir, revision string) error
	// Clean removes untracked and ignored files from the working tree.
	Clean(ctx context.Context, dir string) error
}

// Locks removes stale lock artifacts left by an interrupted git process.
type Locks interface {
	// RemoveIndexLock deletes dir's index lock file. Returns an error
	// wrapping fs.ErrNotExist when there was none.
	RemoveIndexLock(dir string) error
}

// Parser resolves the manifest into an engine dependency.
type Parser interface {
	Parse(ctx context.Context, repoRoot, manifestPath string) (manifest.Result, error)
}

// Journal records what a managed reconcile did. Best effort only; the
// reconciler logs and ignores its failures.
type Journal interface {
	Record(ctx context.Context, dir string, rec ReconcileRecord) error
}

// ReconcileRecord is one journal row.
type ReconcileRecord struct {
	RunID    string
	URL      string
	Revision string
	Action   Action
	At       time.Time
}

// Action names what a managed reconcile had to do.
type Action string

const (
	// ActionFastPath means the checkout was already at the pinned revision.
	ActionFastPath Action = "fast-path"
	// ActionReset means the revision was present locally but the tree had
	// to be reset.
	ActionReset Action = "reset"
	// ActionFetchReset means the revision had to be fetched first.
	ActionFetchReset Action = "fetch-reset"
)

// Clock supplies journal timestamps.
type Clock interface {
	Now() time.Time
}
