package main

import (
	"os"

	"github.com/codecompany/recipeboot/pkg/recipeboot"
)

func main() {
	os.Exit(recipeboot.Execute())
}
