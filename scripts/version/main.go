// Package main prints the version of this repository, resolved the same way gitstamp does.
package main

import (
	"context"
	"fmt"

	"github.com/andyballingall/gitstamp/internal/config"
	"github.com/andyballingall/gitstamp/internal/repo"
	"github.com/andyballingall/gitstamp/internal/runner"
	"github.com/andyballingall/gitstamp/internal/version"
)

func main() {
	cfg := config.Default()
	cfg.TagSort = config.TagSortVersion

	r := runner.NewExecRunner(nil, cfg.Timeout)
	resolver := version.NewResolver(repo.NewCLIGitter(cfg, r, "."), nil, false)

	v, err := resolver.Version(context.Background())
	if err != nil {
		fmt.Print("dev")
		return
	}
	fmt.Print(v)
}
