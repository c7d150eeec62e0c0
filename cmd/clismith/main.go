package main

import (
	"github.com/tacogips/clismith/internal/cli"
)

// Version information is set via ldflags on the internal/build package:
//
//	-X github.com/tacogips/clismith/internal/build.version=x.y.z
//	-X github.com/tacogips/clismith/internal/build.gitCommit=abc123
//	-X github.com/tacogips/clismith/internal/build.buildDate=2026-01-01
func main() {
	cli.Execute()
}
