package manifest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/codecompany/recipeboot/internal/domain"
)

// Result is the outcome of parsing a recipes.cfg. A nil Engine means the
// repository is the engine itself and nothing needs to be checked out; in
// that case RecipesPath is the subpath straight from the manifest. When
// Engine is set, RecipesPath has already been resolved under the repo root.
type Result struct {
	Engine      *domain.EngineDep
	RecipesPath string
	Py3Only     bool
}

// Service is a lightweight recipes.cfg parser.
type Service struct {
	source    Source
	validator Validator
	decoder   Decoder
}

func NewService(source Source, validator Validator, decoder Decoder) *Service {
	return &Service{
		source:    source,
		validator: validator,
		decoder:   decoder,
	}
}

// Parse reads and validates the manifest at manifestPath, returning the
// engine dependency (or the self hosting signal), the recipes location, and
// the python flag. Pure read; no side effects.
func (s *Service) Parse(ctx context.Context, repoRoot, manifestPath string) (Result, error) {
	data, err := s.source.Load(ctx, manifestPath)
	if err != nil {
		return Result{}, fmt.Errorf("load recipes.cfg: %w", err)
	}

	if err := s.validator.Validate(ctx, data); err != nil {
		return Result{}, &MalformedManifestError{Reason: err.Error(), Path: manifestPath}
	}

	doc, err := s.decoder.Decode(data)
	if err != nil {
		return Result{}, &MalformedManifestError{Reason: err.Error(), Path: manifestPath}
	}

	if doc.APIVersion != domain.ManifestVersion {
		return Result{}, &MalformedManifestError{
			Reason: fmt.Sprintf("unknown version %d", doc.APIVersion),
			Path:   manifestPath,
		}
	}

	if doc.Name() == "" {
		return Result{}, &MalformedManifestError{
			Reason: "repo_name or project_id not found",
			Path:   manifestPath,
		}
	}

	if doc.SelfHosted() {
		return Result{RecipesPath: doc.RecipesPath, Py3Only: doc.Py3Only}, nil
	}

	entry, ok := doc.Deps[domain.EngineDepName]
	if !ok {
		return Result{}, &MalformedManifestError{
			Reason: fmt.Sprintf("dependency %q not found", domain.EngineDepName),
			Path:   manifestPath,
		}
	}
	if entry.URL == "" {
		return Result{}, &MalformedManifestError{
			Reason: fmt.Sprintf("required field \"url\" in dependency %q not found", domain.EngineDepName),
			Path:   manifestPath,
		}
	}

	dep := domain.EngineDep{
		URL:      entry.URL,
		Revision: entry.Revision,
		Branch:   entry.Branch,
	}.Normalized()

	recipesPath := filepath.Join(repoRoot, filepath.FromSlash(doc.RecipesPath))
	return Result{Engine: &dep, RecipesPath: recipesPath, Py3Only: doc.Py3Only}, nil
}
