package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the charj CLI.
// These variables can be overridden at build time via -ldflags:
//
//	go build -ldflags "-X charj/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Info is a trimmed snapshot of the build metadata.
type Info struct {
	Version    string
	GitCommit  string
	GitMessage string
	BuildDate  string
}

func Current() Info {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	return Info{
		Version:    v,
		GitCommit:  strings.TrimSpace(GitCommit),
		GitMessage: strings.TrimSpace(GitMessage),
		BuildDate:  strings.TrimSpace(BuildDate),
	}
}

// Colored раскрашивает major.minor.patch; суффикс (-dev, +build) остаётся как есть.
// Строки не в формате semver возвращаются без изменений.
func (i Info) Colored(enabled bool) string {
	if !enabled {
		return i.Version
	}
	core, suffix := i.Version, ""
	if idx := strings.IndexAny(core, "-+"); idx >= 0 {
		core, suffix = core[:idx], core[idx:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return i.Version
	}
	paint := func(c *color.Color, s string) string {
		c.EnableColor()
		return c.Sprint(s)
	}
	return paint(majorColor, parts[0]) + "." + paint(minorColor, parts[1]) + "." + paint(patchColor, parts[2]) + suffix
}
