package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/MrSnakeDoc/bankfinder/internal/version.Version=v1.0.0".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

// String renders the build banner printed by `bankfinder --version` and at boot.
func String() string {
	return fmt.Sprintf("%s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
