package domain

// ManifestVersion is the only recipes.cfg api_version this bootstrap
// understands.
const ManifestVersion = 2

// EngineDepName is the key under "deps" that pins the recipe engine. It is
// also the repo_name value that marks a repository as the engine itself.
const EngineDepName = "recipe_engine"

// ManifestDoc mirrors the recipes.cfg wire format. Unknown keys are ignored;
// the engine consumes the same file and recognizes more of it.
type ManifestDoc struct {
	APIVersion  int                 `json:"api_version"`
	RepoName    string              `json:"repo_name"`
	ProjectID   string              `json:"project_id"`
	RecipesPath string              `json:"recipes_path"`
	Py3Only     bool                `json:"py3_only"`
	Deps        map[string]DepEntry `json:"deps"`
}

// DepEntry is a single pinned dependency inside a manifest.
type DepEntry struct {
	URL      string `json:"url"`
	Revision string `json:"revision"`
	Branch   string `json:"branch"`
}

// Name returns the repository's own identifier, preferring the current
// repo_name key over the legacy project_id.
func (d ManifestDoc) Name() string {
	if d.RepoName != "" {
		return d.RepoName
	}
	return d.ProjectID
}

// SelfHosted reports whether this manifest belongs to the engine repository
// itself, in which case there is nothing to check out.
func (d ManifestDoc) SelfHosted() bool {
	return d.Name() == EngineDepName
}
