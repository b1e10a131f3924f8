package xlate

import "fmt"

// version is populated via -ldflags through SetVersion; "dev" for local builds.
var version = "dev"

// SetVersion initializes the version string if non-empty.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Version returns the current CLI version string.
func Version() string { return version }

// VersionCmd prints the version.
type VersionCmd struct{}

func (v *VersionCmd) Execute(_ []string) error {
	fmt.Fprintln(stdout, Version())
	return nil
}
