package releases

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/CA-CODE-Works/cawebenv/internal/versions"
)

const (
	// ToolOwner and ToolRepo locate cawebenv's own releases.
	ToolOwner = "CA-CODE-Works"
	ToolRepo  = "cawebenv"
)

// semverRegex matches semantic version format (optionally prefixed with v).
var semverRegex = regexp.MustCompile(`^v?(\d+\.\d+\.\d+.*)$`)

// Update describes a newer cawebenv release.
type Update struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateURL       string
	UpdateAvailable bool
}

// CheckUpdate compares current with the latest cawebenv release. It returns
// nil for local and compiled builds, and when the lookup fails.
func (c *Client) CheckUpdate(ctx context.Context, current string) *Update {
	if !semverRegex.MatchString(current) {
		return nil
	}

	release, err := c.Latest(ctx, ToolOwner, ToolRepo)
	if err != nil {
		return nil
	}

	currentNorm := strings.TrimPrefix(current, "v")
	latestNorm := strings.TrimPrefix(release.TagName, "v")

	available := false
	if versions.IsValidVersion(latestNorm) && versions.IsValidVersion(currentNorm) {
		available = versions.Compare(latestNorm, currentNorm) > 0
	}

	return &Update{
		CurrentVersion:  current,
		LatestVersion:   release.TagName,
		UpdateURL:       release.HTMLURL,
		UpdateAvailable: available,
	}
}

// PrintUpdateBanner prints an update notification when one is available.
// Call it after the command finished so it never interrupts the main flow.
func PrintUpdateBanner(w io.Writer, u *Update) {
	if u == nil || !u.UpdateAvailable {
		return
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  A new version of cawebenv is available: %s -> %s\n", u.CurrentVersion, u.LatestVersion)
	fmt.Fprintf(w, "  Download: %s\n", u.UpdateURL)
	fmt.Fprintf(w, "\n")
}
