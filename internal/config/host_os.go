package config

import (
	"runtime"

	"github.com/wrenfield/pickaxe/internal/rules"
)

// hostOsSelectorFromRuntime maps the running process's GOOS/GOARCH to the
// nearest recognised OsSelector bit.
func hostOsSelectorFromRuntime() rules.OsSelector {
	is32 := runtime.GOARCH == "386" || runtime.GOARCH == "arm"
	switch runtime.GOOS {
	case "linux":
		if is32 {
			return rules.Linux32
		}
		return rules.Linux64
	case "windows":
		if is32 {
			return rules.Windows10_32
		}
		return rules.Windows10_64
	case "darwin":
		if is32 {
			return rules.MacOS32
		}
		return rules.MacOS64
	default:
		return rules.Linux64
	}
}
