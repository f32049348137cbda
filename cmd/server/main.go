package main

import (
	"os"
)

// @title Repo Lister API
// @version 1.0
// @description Lists a GitHub user's non-fork repositories with their branches and tip commits

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
