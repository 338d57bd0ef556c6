package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	checkoutapp "github.com/codecompany/recipeboot/internal/app/checkout"
	launchapp "github.com/codecompany/recipeboot/internal/app/launch"
	manifestapp "github.com/codecompany/recipeboot/internal/app/manifest"
	"github.com/codecompany/recipeboot/internal/app/paths"
	"github.com/codecompany/recipeboot/internal/infra/codec"
	"github.com/codecompany/recipeboot/internal/infra/gitcli"
	"github.com/codecompany/recipeboot/internal/infra/gitrepo"
	"github.com/codecompany/recipeboot/internal/infra/ident"
	"github.com/codecompany/recipeboot/internal/infra/journal"
	"github.com/codecompany/recipeboot/internal/infra/manifestfile"
	"github.com/codecompany/recipeboot/internal/infra/procexec"
	"github.com/codecompany/recipeboot/internal/infra/schema"
	"github.com/codecompany/recipeboot/internal/platform"
)

type RootOptions struct {
	LogLevel  string
	LogFormat string
}

// newRootCmd builds the single bootstrap command. Flag parsing is disabled:
// apart from the few intercepted flags the argument vector belongs to the
// engine and must reach it byte for byte.
func newRootCmd(exitCode *int) *cobra.Command {
	opts := &RootOptions{
		LogLevel:  envDefault("RECIPEBOOT_LOG_LEVEL", ""),
		LogFormat: envDefault("RECIPEBOOT_LOG_FORMAT", "text"),
	}
	cmd := &cobra.Command{
		Use:                "recipeboot [engine arguments]",
		Short:              "Check out the pinned recipe engine and hand off to it",
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootstrap(cmd, args, opts, exitCode)
		},
	}
	return cmd
}

func runBootstrap(cmd *cobra.Command, argv []string, opts *RootOptions, exitCode *int) error {
	it, err := parseIntercepted(argv)
	if err != nil {
		return err
	}

	logger, err := platform.ConfigureLogger(opts.LogLevel, opts.LogFormat, it.Verbose, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	runID, err := ident.NewRunIDGenerator().NewRunID()
	if err != nil {
		return err
	}
	logger = logger.With("run", runID)

	planner := launchapp.NewService(procexec.PathLookup{})
	if err := planner.CheckRequired(); err != nil {
		return err
	}

	forwarded := argv
	manifestPath := it.ManifestPath
	var repoRoot string
	if manifestPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		repoRoot, err = gitrepo.DetectRoot(cwd)
		if err != nil {
			return err
		}
		manifestPath = paths.DefaultManifestPath(repoRoot)
		// The engine needs to know which repo it operates on even when the
		// caller relied on probing.
		forwarded = append([]string{"--package", manifestPath}, argv...)
	} else {
		repoRoot = paths.RepoRootForManifest(manifestPath)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return err
	}
	parser := manifestapp.NewService(manifestfile.Source{}, validator, codec.Decoder{})
	reconciler := checkoutapp.NewService(
		parser,
		gitcli.New(logger),
		gitcli.Workdir{},
		journal.Store{},
		platform.RealClock{},
		logger,
		runID,
	)

	enginePath, py3Only, err := reconciler.Reconcile(cmd.Context(), it.EngineOverride, repoRoot, manifestPath)
	if err != nil {
		return err
	}

	if logger.Enabled(cmd.Context(), slog.LevelDebug) {
		if head, err := gitrepo.HeadRevision(enginePath); err == nil && head != "" {
			logger.Debug("engine checkout ready", "path", enginePath, "head", head)
		}
	}

	usePy3 := py3Only || os.Getenv(launchapp.EnvUsePy3) == "true"
	downstream, err := planner.Plan(enginePath, usePy3, forwarded)
	if err != nil {
		return err
	}

	code, err := procexec.NewLauncher().Launch(downstream)
	if err != nil {
		return err
	}
	*exitCode = code
	return nil
}

func envDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
