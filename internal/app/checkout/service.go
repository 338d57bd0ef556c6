package checkout

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/codecompany/recipeboot/internal/domain"
)

// DepsDirName is the directory under the recipes path holding managed
// checkouts.
const DepsDirName = ".recipe_deps"

const fileScheme = "file"

// Service reconciles the local engine checkout against the revision pinned
// in the manifest, using the fewest git operations that get there.
type Service struct {
	parser  Parser
	git     Git
	locks   Locks
	journal Journal
	clock   Clock
	logger  *slog.Logger
	runID   string
}

func NewService(parser Parser, git Git, locks Locks, journal Journal, clock Clock, logger *slog.Logger, runID string) *Service {
	return &Service{
		parser:  parser,
		git:     git,
		locks:   locks,
		journal: journal,
		clock:   clock,
		logger:  logger,
		runID:   runID,
	}
}

// Reconcile resolves the engine location for the repository at repoRoot and,
// for a managed checkout, brings it to the pinned revision. It returns the
// engine path and the py3_only flag. An overridePath wins unconditionally
// and skips all git work, as does a file:// dependency URL.
func (s *Service) Reconcile(ctx context.Context, overridePath, repoRoot, manifestPath string) (string, bool, error) {
	if strings.TrimSpace(repoRoot) == "" {
		return "", false, ErrRepoRootRequired
	}

	res, err := s.parser.Parse(ctx, repoRoot, manifestPath)
	if err != nil {
		return "", false, err
	}

	if res.Engine == nil {
		// This repository is the engine; its recipes live in-tree.
		return filepath.Join(repoRoot, filepath.FromSlash(res.RecipesPath)), res.Py3Only, nil
	}
	dep := *res.Engine

	enginePath := strings.TrimSpace(overridePath)
	if enginePath == "" && strings.HasPrefix(dep.URL, fileScheme+"://") {
		parsed, err := url.Parse(dep.URL)
		if err != nil {
			return "", false, fmt.Errorf("%w: %v", ErrInvalidFileURL, err)
		}
		enginePath = filepath.FromSlash(parsed.Path)
	}
	if enginePath != "" {
		return enginePath, res.Py3Only, nil
	}

	enginePath = filepath.Join(res.RecipesPath, DepsDirName, domain.EngineDepName)
	action, err := s.reconcileManaged(ctx, enginePath, dep)
	if err != nil {
		return "", false, err
	}

	rec := ReconcileRecord{
		RunID:    s.runID,
		URL:      dep.URL,
		Revision: dep.Revision,
		Action:   action,
		At:       s.clock.Now(),
	}
	if err := s.journal.Record(ctx, filepath.Join(res.RecipesPath, DepsDirName), rec); err != nil {
		s.logger.Warn("failed to journal reconcile", "path", enginePath, "error", err)
	}

	return enginePath, res.Py3Only, nil
}

// reconcileManaged is the idempotent state machine over the cached clone.
// Every step is a no-op when already satisfied; any git failure past the
// defensive lock removal is fatal.
func (s *Service) reconcileManaged(ctx context.Context, enginePath string, dep domain.EngineDep) (Action, error) {
	if err := s.git.Init(ctx, enginePath); err != nil {
		return "", fmt.Errorf("init engine checkout: %w", err)
	}

	fetched := false
	present, err := s.git.RevisionPresent(ctx, enginePath, dep.Revision)
	if err != nil {
		return "", fmt.Errorf("verify engine revision: %w", err)
	}
	if !present {
		if err := s.git.FetchBranch(ctx, enginePath, dep.URL, dep.Branch); err != nil {
			return "", fmt.Errorf("fetch engine branch: %w", err)
		}
		fetched = true
	}

	matches, err := s.git.MatchesRevision(ctx, enginePath, dep.Revision)
	if err != nil {
		return "", fmt.Errorf("compare engine checkout: %w", err)
	}
	if matches {
		return ActionFastPath, nil
	}

	// A previous interrupted run may have left the index locked. The reset
	// below is the authority on whether removal mattered.
	if err := s.locks.RemoveIndexLock(enginePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("failed to remove stale index lock, reset may fail", "path", enginePath, "error", err)
	}

	if err := s.git.HardReset(ctx, enginePath, dep.Revision); err != nil {
		return "", fmt.Errorf("reset engine checkout: %w", err)
	}

	// A layout change between revisions can leave stale bytecode or orphaned
	// generated files that would shadow the new layout.
	if err := s.git.Clean(ctx, enginePath); err != nil {
		return "", fmt.Errorf("clean engine checkout: %w", err)
	}

	if fetched {
		return ActionFetchReset, nil
	}
	return ActionReset, nil
}
