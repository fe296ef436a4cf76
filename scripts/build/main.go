// Package main builds the gitstamp binary with its own version stamped in.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/andyballingall/gitstamp/internal/config"
	"github.com/andyballingall/gitstamp/internal/repo"
	"github.com/andyballingall/gitstamp/internal/runner"
	"github.com/andyballingall/gitstamp/internal/version"
)

const appPkg = "github.com/andyballingall/gitstamp/internal/app"

func main() {
	binaryName := "gitstamp"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}

	ctx := context.Background()
	cfg := config.Default()
	cfg.TagSort = config.TagSortVersion
	r := runner.NewExecRunner(nil, cfg.Timeout)

	info, err := version.NewResolver(repo.NewCLIGitter(cfg, r, "."), nil, false).Resolve(ctx)
	if err != nil {
		info = version.Info{Version: "dev", Commit: "unknown"}
	}

	ldflags := version.LDFlagsString(info, version.LDFlags{VersionVar: appPkg + ".Version", CommitVar: appPkg + ".Commit"})

	// Ensure bin directory exists
	if err = os.MkdirAll("bin", 0o755); err != nil {
		fmt.Printf("❌ Failed to create bin directory: %v\n", err)
		os.Exit(1)
	}

	outputPath := filepath.Join("bin", binaryName)
	fmt.Printf("Building %s...\n", info.Version)

	cmd := exec.CommandContext(ctx, "go", "build", "-ldflags", ldflags, "-o", outputPath, "./cmd/gitstamp")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err = cmd.Run(); err != nil {
		fmt.Printf("❌ Build failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Build complete: %s\n", outputPath)
}
