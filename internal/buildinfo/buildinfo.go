// Package buildinfo exposes build metadata stamped in via ldflags:
//
//	go build -ldflags "-X github.com/equiply/equiply-cli/internal/buildinfo.Version=v1.0.0 \
//	  -X github.com/equiply/equiply-cli/internal/buildinfo.Date=2026-08-28 \
//	  -X github.com/equiply/equiply-cli/internal/buildinfo.Commit=abc1234"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

// PrintBuildData writes the stamped build metadata to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
