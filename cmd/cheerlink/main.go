// Package main is the single-binary entrypoint for CheerLink.
package main

import "github.com/cheerlink/cheerlink/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
