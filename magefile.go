//go:build mage

package main

import (
	"github.com/magefile/mage/sh"
)

// Build compiles the pagescan binary into ./bin.
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/pagescan", "./cmd/pagescan")
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet across the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}
