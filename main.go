package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"github.com/tphakala/cocatalog/cmd"
	"github.com/tphakala/cocatalog/internal/app"
	"github.com/tphakala/cocatalog/internal/buildinfo"
	"github.com/tphakala/cocatalog/internal/catalog"
	"github.com/tphakala/cocatalog/internal/errors"
)

// Set with -ldflags "-X main.version=... -X main.buildDate=..."
var (
	version   = "dev"
	buildDate = ""
)

// Exit codes.
const (
	exitOK                 = 0
	exitError              = 1
	exitUnsupportedVersion = 2
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	ctx := app.NewContext(buildinfo.NewContext(version, buildDate), viper.GetViper())
	rootCmd := cmd.RootCommand(ctx)

	err := rootCmd.Execute()
	if shutdownErr := ctx.Shutdown(); shutdownErr != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %v\n", shutdownErr)
	}
	return reportError(os.Stderr, err)
}

// reportError prints err for the user and returns the exit code.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return exitOK
	}

	var unsupported *catalog.UnsupportedVersionError
	if errors.As(err, &unsupported) {
		fmt.Fprintf(w, "Unsupported catalog version %d\n", unsupported.Raw)
		return exitUnsupportedVersion
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return exitError
}
