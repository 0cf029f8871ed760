// Package version хранит сведения о сборке rscanon; переопределяются через -ldflags.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Info - сведения о сборке для `rscanon version --format json`.
type Info struct {
	Version       string `json:"version"`
	SchemaVersion int    `json:"schema_version"`
	GitCommit     string `json:"git_commit,omitempty"`
	BuildDate     string `json:"build_date,omitempty"`
	GoVersion     string `json:"go_version"`
}

// Current собирает Info; schema передаётся вызывающим, чтобы не тянуть canon сюда.
func Current(schema int) Info {
	return Info{
		Version:       Version,
		SchemaVersion: schema,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
	}
}

// Colored раскрашивает major.minor.patch; суффикс (-dev) остаётся как есть.
func Colored(v string) string {
	core, suffix, _ := strings.Cut(v, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return v
	}
	out := versionMajorColor.Sprint(parts[0]) + "." + versionMinorColor.Sprint(parts[1]) + "." + versionPatchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Pretty - многострочный вывод для терминала.
func (i Info) Pretty() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rscanon %s\n", Colored(i.Version))
	fmt.Fprintf(&sb, "schema  %d\n", i.SchemaVersion)
	if i.GitCommit != "" {
		fmt.Fprintf(&sb, "commit  %s\n", i.GitCommit)
	}
	if i.BuildDate != "" {
		fmt.Fprintf(&sb, "built   %s\n", i.BuildDate)
	}
	fmt.Fprintf(&sb, "go      %s\n", i.GoVersion)
	return sb.String()
}
