package cli

import (
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/codecompany/recipeboot/internal/app/paths"
	"github.com/codecompany/recipeboot/internal/domain"
)

const overridePrefix = domain.EngineDepName + "="

// intercepted is the subset of the argument vector the bootstrap reads for
// itself. Everything, including these flags, is still forwarded downstream;
// the engine understands them too.
type intercepted struct {
	EngineOverride string
	ManifestPath   string
	Verbose        bool
}

func parseIntercepted(argv []string) (intercepted, error) {
	fs := pflag.NewFlagSet("recipeboot", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)

	overrides := fs.StringArrayP("project-override", "O", nil, "override a project dependency as <name>=<path>")
	manifest := fs.String("package", "", "path to recipes.cfg of the repo to operate on")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	// Parsed so --help does not abort extraction; the engine renders the
	// actual help text after handoff.
	fs.BoolP("help", "h", false, "")

	if err := fs.Parse(argv); err != nil {
		return intercepted{}, err
	}

	out := intercepted{Verbose: *verbose}
	for _, override := range *overrides {
		if strings.HasPrefix(override, overridePrefix) {
			out.EngineOverride = strings.TrimPrefix(override, overridePrefix)
		}
	}

	if *manifest != "" {
		abs, err := paths.NormalizeManifestPath(*manifest)
		if err != nil {
			return intercepted{}, err
		}
		out.ManifestPath = abs
	}

	return out, nil
}
