package main

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
)

// version is set with -ldflags "-X main.version=..." on release builds.
var version = "dev"

var readBuildInfo = debug.ReadBuildInfo

func currentVersion() string {
	if v := strings.TrimSpace(version); v != "" && v != "dev" {
		return v
	}
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return "dev"
	}
	if mv := strings.TrimSpace(info.Main.Version); mv != "" && mv != "(devel)" {
		return mv
	}
	return "dev"
}

// buildRevision is the short VCS revision stamped by the go tool, with a
// "-dirty" suffix for builds from a modified tree.
func buildRevision() string {
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return ""
	}
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if rev != "" && dirty {
		rev += "-dirty"
	}
	return rev
}

func versionLine() string {
	line := "gtui " + currentVersion()
	if rev := buildRevision(); rev != "" {
		line += " (" + rev + ")"
	}
	return line
}

func runVersionCommand(out io.Writer) error {
	_, err := fmt.Fprintln(out, versionLine())
	return err
}
