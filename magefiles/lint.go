//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binLint = "golangci-lint"

// lintPaths are the satchel source trees.
var lintPaths = []string{"./cmd/...", "./internal/...", "./pkg/...", "./tests/...", "./magefiles/..."}

// Vet runs go vet over the satchel packages.
func Vet() error {
	return sh.RunV(binGo, append([]string{"vet"}, lintPaths...)...)
}

// Lint runs go vet, then golangci-lint over the satchel packages.
func Lint() error {
	mg.Deps(Vet)
	return sh.RunV(binLint, append([]string{"run"}, lintPaths...)...)
}
