//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Search runs an author search through the built binary and saves the
// records to results/search.yaml.
func Search(author string) error {
	mg.Deps(Build)
	return runCLI("search", "--author", author, "--output", filepath.Join("results", "search.yaml"))
}

// Download downloads every record in results/search.yaml.
func Download() error {
	mg.Deps(Build)
	return runCLI("download", "--from", filepath.Join("results", "search.yaml"))
}

func runCLI(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
