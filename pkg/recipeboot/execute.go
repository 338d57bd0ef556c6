package recipeboot

import "github.com/codecompany/recipeboot/internal/cli"

// Execute runs the recipeboot entrypoint.
func Execute() int {
	return cli.Execute()
}
