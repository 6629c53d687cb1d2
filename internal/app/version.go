package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/agbru/divcalc/internal/division"
)

// Version is the application version, overridable at build time with
// -ldflags "-X github.com/agbru/divcalc/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether the arguments request version output.
// It only inspects the leading argument so that a literal "--version"
// appearing after other flags is still handled by the regular parser.
func HasVersionFlag(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "--version", "-version", "-V":
		return true
	}
	return false
}

// PrintVersion writes version and build information to out.
func PrintVersion(out io.Writer) {
	version := Version
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	fmt.Fprintf(out, "divcalc %s\n", version)
	fmt.Fprintf(out, "  reference backend: %s\n", division.ReferenceBackend)
	fmt.Fprintf(out, "  built with: %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
