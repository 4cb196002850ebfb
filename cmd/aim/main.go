// Command aim is the CLI entry point for the core: a thin cobra
// dispatcher into the internal/aim facade. It carries no business
// logic of its own — every operation it exposes is a direct call into
// Aim.
package main

import (
	"os"

	"github.com/aimcal/aim/cmd/aim/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
