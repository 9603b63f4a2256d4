//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Jobs builds the CLI and searches job postings for position, saving the
// run under runs/.
func Jobs(position string) error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath, "jobs", position, "--save-run", "runs/jobs.yaml")
}

// Careers builds the CLI and finds career pages for the built-in companies.
func Careers() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath, "careers", "--save-run", "runs/careers.yaml")
}

// Serve builds the CLI and starts the HTTP API on ADDR (default :8080).
func Serve() error {
	mg.Deps(Build)
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	fmt.Printf("Serving on %s\n", addr)
	return sh.RunV(binPath, "serve", "--addr", addr)
}
