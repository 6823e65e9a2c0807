package main

import (
	"fmt"
	"os"

	"evalgo.org/hostreg/internal/commands"
	"evalgo.org/hostreg/internal/version"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// @title hostreg API
// @version 1.0
// @description Registry of measurement hosts, their services and the records referencing them.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	version.Version = Version
	version.BuildTime = BuildTime
	version.GitCommit = GitCommit

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
