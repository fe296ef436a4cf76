// Package main removes what gitstamp's build and tests leave behind.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	remove("bin")
	remove("gitstamp.log")
	remove("version.json")

	profiles, _ := filepath.Glob("*.out")
	for _, p := range profiles {
		remove(p)
	}
}

func remove(path string) {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return
	}
	if err := os.RemoveAll(path); err != nil {
		fmt.Printf("❌ Failed to remove %s: %v\n", path, err)
		return
	}
	fmt.Printf("✅ Removed %s\n", path)
}
