// Package version reports the build version and how the binary was installed.
package version

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

const modulePath = "github.com/marcus/notecards"

// InstallMethod represents how notecards was installed.
type InstallMethod string

const (
	InstallMethodHomebrew InstallMethod = "homebrew"
	InstallMethodGo       InstallMethod = "go"
	InstallMethodBinary   InstallMethod = "binary"
)

// Effective returns v, falling back to module or VCS build info.
func Effective(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) string {
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}
	ver := "devel+" + shortRevision(revision)
	if dirty {
		ver += "+dirty"
	}
	return ver
}

// shortRevision returns the first 12 chars of a revision.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// UpgradeHint returns how to upgrade an installation made with method.
func UpgradeHint(method InstallMethod) string {
	switch method {
	case InstallMethodHomebrew:
		return "brew upgrade notecards"
	case InstallMethodGo:
		return fmt.Sprintf("go install %s/cmd/notecards@latest", modulePath)
	default:
		return fmt.Sprintf("download a release from https://%s/releases", modulePath)
	}
}

var (
	detectedMethod     InstallMethod
	detectedMethodOnce sync.Once
)

// DetectInstallMethod determines how notecards was installed. The result is
// cached for the lifetime of the process.
func DetectInstallMethod() InstallMethod {
	detectedMethodOnce.Do(func() {
		switch {
		case isHomebrewInstall():
			detectedMethod = InstallMethodHomebrew
		case isGoInstall():
			detectedMethod = InstallMethodGo
		default:
			detectedMethod = InstallMethodBinary
		}
	})
	return detectedMethod
}

func isHomebrewInstall() bool {
	if runtime.GOOS != "darwin" && runtime.GOOS != "linux" {
		return false
	}
	if _, err := exec.LookPath("brew"); err != nil {
		return false
	}
	out, err := exec.Command("brew", "list", "--formula", "notecards").CombinedOutput()
	return err == nil && len(strings.TrimSpace(string(out))) > 0
}

func isGoInstall() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	if exe, err = filepath.EvalSymlinks(exe); err != nil {
		return false
	}
	home, _ := os.UserHomeDir()
	return inGoBin(exe, os.Getenv, home)
}

// inGoBin reports whether exe sits in GOBIN, GOPATH/bin or ~/go/bin.
func inGoBin(exe string, getenv func(string) string, home string) bool {
	dir := filepath.Dir(exe)
	candidates := []string{getenv("GOBIN")}
	if gopath := getenv("GOPATH"); gopath != "" {
		candidates = append(candidates, filepath.Join(gopath, "bin"))
	}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, "go", "bin"))
	}
	for _, c := range candidates {
		if c != "" && dir == filepath.Clean(c) {
			return true
		}
	}
	sep := string(filepath.Separator)
	return strings.Contains(exe, sep+"go"+sep+"bin"+sep)
}
