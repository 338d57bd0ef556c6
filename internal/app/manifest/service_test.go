package manifest

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codecompany/recipeboot/internal/domain"
)

type fakeSource struct {
	data []byte
	err  error
	path string
}

func (f *fakeSource) Load(_ context.Context, path string) ([]byte, error) {
	f.path = path
	return f.data, f.err
}

type fakeValidator struct {
	err error
}

func (f fakeValidator) Validate(_ context.Context, _ []byte) error {
	return f.err
}

type fakeDecoder struct {
	doc domain.ManifestDoc
	err error
}

func (f fakeDecoder) Decode(_ []byte) (domain.ManifestDoc, error) {
	return f.doc, f.err
}

func newService(doc domain.ManifestDoc) *Service {
	return NewService(&fakeSource{data: []byte("{}")}, fakeValidator{}, fakeDecoder{doc: doc})
}

func dependentDoc() domain.ManifestDoc {
	return domain.ManifestDoc{
		APIVersion: domain.ManifestVersion,
		RepoName:   "build",
		Deps: map[string]domain.DepEntry{
			domain.EngineDepName: {URL: "https://example.com/engine"},
		},
	}
}

func TestParseRejectsUnknownVersion(t *testing.T) {
	doc := dependentDoc()
	doc.APIVersion = 1
	svc := newService(doc)

	_, err := svc.Parse(context.Background(), "/repo", "/repo/infra/config/recipes.cfg")
	var malformed *MalformedManifestError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedManifestError, got %v", err)
	}
	if !strings.Contains(malformed.Reason, "unknown version 1") {
		t.Fatalf("unexpected reason %q", malformed.Reason)
	}
	if malformed.Path != "/repo/infra/config/recipes.cfg" {
		t.Fatalf("unexpected path %q", malformed.Path)
	}
}

func TestParseRejectsMissingIdentifier(t *testing.T) {
	doc := dependentDoc()
	doc.RepoName = ""
	doc.ProjectID = ""
	svc := newService(doc)

	_, err := svc.Parse(context.Background(), "/repo", "/repo/infra/config/recipes.cfg")
	var malformed *MalformedManifestError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedManifestError, got %v", err)
	}
}

func TestParseSelfHostedIgnoresDeps(t *testing.T) {
	doc := domain.ManifestDoc{
		APIVersion:  domain.ManifestVersion,
		RepoName:    domain.EngineDepName,
		RecipesPath: "recipes",
		Py3Only:     true,
		// deps may be present; the sentinel wins regardless.
		Deps: map[string]domain.DepEntry{
			domain.EngineDepName: {URL: "https://example.com/engine"},
		},
	}
	svc := newService(doc)

	res, err := svc.Parse(context.Background(), "/repo", "/repo/infra/config/recipes.cfg")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if res.Engine != nil {
		t.Fatalf("expected nil engine for self hosted repo, got %+v", res.Engine)
	}
	if res.RecipesPath != "recipes" {
		t.Fatalf("expected raw recipes subpath, got %q", res.RecipesPath)
	}
	if !res.Py3Only {
		t.Fatalf("expected py3_only to carry through")
	}
}

func TestParseLegacyProjectIDSentinel(t *testing.T) {
	doc := domain.ManifestDoc{
		APIVersion: domain.ManifestVersion,
		ProjectID:  domain.EngineDepName,
	}
	svc := newService(doc)

	res, err := svc.Parse(context.Background(), "/repo", "/repo/infra/config/recipes.cfg")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if res.Engine != nil {
		t.Fatalf("expected nil engine, got %+v", res.Engine)
	}
}

func TestParseRejectsMissingEngineDep(t *testing.T) {
	doc := dependentDoc()
	doc.Deps = map[string]domain.DepEntry{"other": {URL: "https://example.com/other"}}
	svc := newService(doc)

	_, err := svc.Parse(context.Background(), "/repo", "/repo/infra/config/recipes.cfg")
	var malformed *MalformedManifestError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedManifestError, got %v", err)
	}
	if !strings.Contains(malformed.Reason, domain.EngineDepName) {
		t.Fatalf("unexpected reason %q", malformed.Reason)
	}
}

func TestParseRejectsMissingURL(t *testing.T) {
	doc := dependentDoc()
	doc.Deps[domain.EngineDepName] = domain.DepEntry{Revision: "abc"}
	svc := newService(doc)

	_, err := svc.Parse(context.Background(), "/repo", "/repo/infra/config/recipes.cfg")
	var malformed *MalformedManifestError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedManifestError, got %v", err)
	}
	if !strings.Contains(malformed.Reason, `"url"`) {
		t.Fatalf("unexpected reason %q", malformed.Reason)
	}
}

func TestParseAppliesDefaultsAndResolvesPath(t *testing.T) {
	doc := dependentDoc()
	doc.RecipesPath = "infra/recipes"
	svc := newService(doc)

	res, err := svc.Parse(context.Background(), "/repo", "/repo/infra/config/recipes.cfg")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if res.Engine == nil {
		t.Fatalf("expected engine dependency")
	}
	if res.Engine.Revision != "" {
		t.Fatalf("expected empty default revision, got %q", res.Engine.Revision)
	}
	if res.Engine.Branch != domain.DefaultBranch {
		t.Fatalf("expected default branch, got %q", res.Engine.Branch)
	}
	want := filepath.Join("/repo", "infra", "recipes")
	if res.RecipesPath != want {
		t.Fatalf("expected recipes path %q, got %q", want, res.RecipesPath)
	}
}

func TestParseNormalizesShortBranch(t *testing.T) {
	doc := dependentDoc()
	doc.Deps[domain.EngineDepName] = domain.DepEntry{
		URL:      "https://example.com/engine",
		Revision: "deadbeef",
		Branch:   "stable",
	}
	svc := newService(doc)

	res, err := svc.Parse(context.Background(), "/repo", "/repo/infra/config/recipes.cfg")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if res.Engine.Branch != "refs/heads/stable" {
		t.Fatalf("expected refs/heads/stable, got %q", res.Engine.Branch)
	}
}

func TestParseWrapsValidatorFailure(t *testing.T) {
	svc := NewService(
		&fakeSource{data: []byte("{}")},
		fakeValidator{err: errors.New("deps: expected object, got array")},
		fakeDecoder{},
	)

	_, err := svc.Parse(context.Background(), "/repo", "/repo/infra/config/recipes.cfg")
	var malformed *MalformedManifestError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedManifestError, got %v", err)
	}
	if !strings.Contains(malformed.Reason, "expected object") {
		t.Fatalf("unexpected reason %q", malformed.Reason)
	}
}

func TestParsePropagatesSourceFailure(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&fakeSource{err: boom}, fakeValidator{}, fakeDecoder{})

	if _, err := svc.Parse(context.Background(), "/repo", "/repo/infra/config/recipes.cfg"); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}
