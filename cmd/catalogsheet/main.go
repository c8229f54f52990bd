// Command catalogsheet generates the printable catalog outside the HTTP
// server, classifies variant labels and seeds the catalog database.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	root := newRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
