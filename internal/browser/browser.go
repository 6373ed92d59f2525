// Package browser opens event source links on the host system. Source URLs
// come from model output and are untrusted: anything that is not plain
// http(s) is refused, the same rule the UI uses to label a link invalid.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ValidSource reports whether a source URL is safe to display as a link
// and to open. Only absolute http:// and https:// URLs qualify.
func ValidSource(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}

// Open launches the system browser for an event source link.
func Open(rawURL string) error {
	if !ValidSource(rawURL) {
		return fmt.Errorf("refusing to open %q: only http/https source links are opened", rawURL)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL).Start()
	case "linux":
		return exec.Command("xdg-open", rawURL).Start()
	case "windows":
		// Use rundll32 instead of cmd /c start to avoid shell interpretation
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
	default:
		return exec.Command("xdg-open", rawURL).Start()
	}
}
